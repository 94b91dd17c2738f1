// Package schedule validates a plan tree and resolves work package
// start dates from their dependencies.
//
// Scheduling runs as a sequence of hard gates, each of which must pass
// before the next is attempted:
//
//  1. Identifier uniqueness across the whole tree
//  2. Dependency references exist and target work packages
//  3. Cycle detection over the dependency graph
//  4. Topological ordering (Kahn, document-order ties)
//  5. Date resolution in topological order
//  6. Group/category span aggregation
//
// Failures surface as structured errors: ErrCodeValidation for
// structural faults, ErrCodeScheduling for temporal ones. The plan is
// mutated in place (start dates only) and never partially committed
// past the first detected structural fault.
//
// A deliberate convention: a dependent work package starts on the same
// calendar day its latest predecessor finishes (inclusive dates,
// zero-gap back-to-back scheduling), not the day after. Downstream
// rendering assumes this.
package schedule

import (
	"strings"
	"time"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/plan"
)

// Schedule validates the plan and resolves missing work package start
// dates in place. It fails fast on the first structural or temporal
// fault and returns the plan unchanged in shape either way.
func Schedule(p *plan.Plan) error {
	lookup, err := validateUniqueIDs(p)
	if err != nil {
		return err
	}
	if err := validateDependencies(p, lookup); err != nil {
		return err
	}

	wps := p.WorkPackages()
	graph := buildGraph(wps)

	if cycle := graph.findCycle(); cycle != nil {
		return errors.New(errors.ErrCodeValidation,
			"dependency cycle detected: %s", strings.Join(cycle, " -> "))
	}

	order := graph.toposort()
	if len(order) != len(wps) {
		// Unreachable after cycle detection; if it trips, the graph
		// builder and the cycle detector disagree about the input.
		return errors.New(errors.ErrCodeInternal,
			"topological order covers %d of %d work packages", len(order), len(wps))
	}

	byID := make(map[string]*plan.WorkPackage, len(wps))
	for _, wp := range wps {
		byID[wp.WBS] = wp
	}
	if err := resolveDates(order, byID); err != nil {
		return err
	}

	// Touch group spans so callers can fetch them without re-walking.
	GroupSpans(p)
	return nil
}

func validateUniqueIDs(p *plan.Plan) (map[string]any, error) {
	lookup := make(map[string]any)

	register := func(id string, node any) error {
		if existing, ok := lookup[id]; ok {
			return errors.New(errors.ErrCodeValidation,
				"duplicate id %q found (first seen as %s, again as %s)",
				id, kindName(existing), kindName(node))
		}
		lookup[id] = node
		return nil
	}

	for _, cat := range p.Categories {
		if err := register(cat.WBS, cat); err != nil {
			return nil, err
		}
	}
	var firstErr error
	p.Walk(func(item plan.Item) {
		if firstErr == nil {
			firstErr = register(item.ID(), item)
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return lookup, nil
}

func validateDependencies(p *plan.Plan, lookup map[string]any) error {
	for _, wp := range p.WorkPackages() {
		for _, depID := range wp.DependsOn {
			dep, ok := lookup[depID]
			if !ok {
				return errors.New(errors.ErrCodeValidation,
					"work package %q depends on unknown id %q", wp.WBS, depID)
			}
			if _, isWP := dep.(*plan.WorkPackage); !isWP {
				return errors.New(errors.ErrCodeValidation,
					"work package %q depends on %s %q, dependencies must target work packages",
					wp.WBS, kindName(dep), depID)
			}
		}
	}
	return nil
}

// resolveDates walks work packages in topological order, inferring
// missing start dates from predecessor finishes and rejecting explicit
// starts that precede them.
func resolveDates(order []string, byID map[string]*plan.WorkPackage) error {
	for _, id := range order {
		wp := byID[id]

		if wp.DurationDays <= 0 {
			return errors.New(errors.ErrCodeScheduling,
				"work package %q has non-positive duration_days=%d", wp.WBS, wp.DurationDays)
		}

		if len(wp.DependsOn) == 0 {
			// Explicit date or legitimately unscheduled; either way
			// there is nothing to infer.
			continue
		}

		// Stable max: equal finishes keep the first-listed dependency
		// as the blocking predecessor.
		var latestID string
		var latestFinish time.Time
		for i, depID := range wp.DependsOn {
			pred := byID[depID]
			finish, ok := pred.Finish()
			if !ok {
				return errors.New(errors.ErrCodeScheduling,
					"cannot schedule %q because predecessor %q has no start date", wp.WBS, depID)
			}
			if i == 0 || finish.After(latestFinish) {
				latestID, latestFinish = depID, finish
			}
		}

		if wp.Start == nil {
			// Zero-gap convention: work begins the day the last
			// predecessor's inclusive finish date falls.
			start := latestFinish
			wp.Start = &start
		} else if wp.Start.Before(latestFinish) {
			return errors.New(errors.ErrCodeScheduling,
				"work package %q start %s precedes dependency %q finish %s",
				wp.WBS, plan.FormatDate(*wp.Start), latestID, plan.FormatDate(latestFinish))
		}
	}
	return nil
}

// Span is a resolved inclusive date range.
type Span struct {
	Start  time.Time
	Finish time.Time
}

// GroupSpans computes the span of every group in the plan, keyed by WBS
// id. Groups whose children are all unscheduled have no entry: an
// undefined span propagates as absence, not as a zero value.
func GroupSpans(p *plan.Plan) map[string]Span {
	spans := make(map[string]Span)
	p.Walk(func(item plan.Item) {
		g, ok := item.(*plan.Group)
		if !ok {
			return
		}
		if start, finish, ok := g.Span(); ok {
			spans[g.WBS] = Span{Start: start, Finish: finish}
		}
	})
	return spans
}

func kindName(node any) string {
	switch node.(type) {
	case *plan.WorkPackage:
		return "work package"
	case *plan.Milestone:
		return "milestone"
	case *plan.Group:
		return "group"
	case *plan.Category:
		return "category"
	default:
		return "node"
	}
}

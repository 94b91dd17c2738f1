// Package plan defines the project plan tree and its YAML loader.
//
// A Plan owns an ordered list of Categories (lifecycle phases). Each
// category owns an ordered list of items, where an item is one of
// exactly three kinds:
//
//   - [WorkPackage]: a schedulable unit with a positive duration
//   - [Milestone]: an instantaneous checkpoint with a deadline
//   - [Group]: an aggregate node whose span derives from its children
//
// The item set is closed: [Item] has an unexported marker method so new
// kinds cannot be added outside this package, and every consumer that
// switches over item kinds is forced to handle all three.
//
// Nodes are constructed once during loading and their shape never
// changes afterwards. The scheduler (package schedule) mutates only the
// start dates of work packages that lack an explicit one; all spans are
// derived on demand from the children.
package plan

import (
	"time"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// DateFormat is the wire format for all plan dates.
const DateFormat = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.New(errors.ErrCodeParse, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a date in the plan wire format.
func FormatDate(t time.Time) string { return t.Format(DateFormat) }

// DaysBetween returns the number of calendar days from a to b. All plan
// arithmetic is calendar-day based; there is no working-day calendar.
func DaysBetween(a, b time.Time) int { return int(b.Sub(a).Hours() / 24) }

// Metadata stores arbitrary key-value pairs attached to plan nodes.
// It is display-only: the scheduler never reads it. The renderer
// recognizes a "color" key on categories as a palette override.
type Metadata map[string]any

// Item is a node that can appear under a category or group.
// The set of implementations is closed: WorkPackage, Milestone, Group.
type Item interface {
	// ID returns the node's WBS identifier, unique across the plan.
	ID() string
	// DisplayName returns the human-readable node name.
	DisplayName() string
	// Span returns the node's temporal extent as an inclusive date
	// range. ok is false when the span is undefined (for example a
	// work package that was never scheduled, or a group with no
	// resolvable children).
	Span() (start, finish time.Time, ok bool)

	isItem()
}

// WorkPackage is the lowest-level schedulable element. It renders as a
// bar on the timeline.
type WorkPackage struct {
	WBS          string
	Name         string
	DurationDays int
	Start        *time.Time // nil until scheduled or explicitly set
	DependsOn    []string   // predecessor work package WBS ids, in document order
	Meta         Metadata
}

func (w *WorkPackage) ID() string          { return w.WBS }
func (w *WorkPackage) DisplayName() string { return w.Name }
func (w *WorkPackage) isItem()             {}

// Finish returns the inclusive finish date derived from Start and
// DurationDays. ok is false while the package is unscheduled.
func (w *WorkPackage) Finish() (time.Time, bool) {
	if w.Start == nil {
		return time.Time{}, false
	}
	return w.Start.AddDate(0, 0, w.DurationDays-1), true
}

// Span returns start..finish, undefined until the package has a start.
func (w *WorkPackage) Span() (time.Time, time.Time, bool) {
	if w.Start == nil {
		return time.Time{}, time.Time{}, false
	}
	finish, _ := w.Finish()
	return *w.Start, finish, true
}

// Milestone is a zero-duration checkpoint. It renders as a lozenge.
// The deadline is immutable once parsed.
type Milestone struct {
	WBS      string
	Name     string
	Deadline time.Time
	Meta     Metadata
}

func (m *Milestone) ID() string          { return m.WBS }
func (m *Milestone) DisplayName() string { return m.Name }
func (m *Milestone) isItem()             {}

// Span mirrors the deadline on both boundaries.
func (m *Milestone) Span() (time.Time, time.Time, bool) {
	return m.Deadline, m.Deadline, true
}

// Group is an aggregative node that owns ordered child items. Groups
// are never scheduled directly; their span derives from the children.
// They render as brackets.
type Group struct {
	WBS   string
	Name  string
	Items []Item
	Meta  Metadata
}

func (g *Group) ID() string          { return g.WBS }
func (g *Group) DisplayName() string { return g.Name }
func (g *Group) isItem()             {}

// Span returns (min child start, max child finish). Undefined when no
// child has a resolved span.
func (g *Group) Span() (time.Time, time.Time, bool) {
	return aggregateSpan(g.Items)
}

// Category is a top-level lifecycle phase grouping WBS items.
type Category struct {
	WBS   string
	Name  string
	Items []Item
	Meta  Metadata
}

// Span returns (min child start, max child finish), undefined when no
// child has a resolved span.
func (c *Category) Span() (time.Time, time.Time, bool) {
	return aggregateSpan(c.Items)
}

// Color returns the display color hint from metadata, if any.
func (c *Category) Color() (string, bool) {
	s, ok := c.Meta["color"].(string)
	return s, ok && s != ""
}

// Plan is the root of the tree: a named project with ordered categories.
type Plan struct {
	Name       string
	Categories []*Category
	Meta       Metadata
}

// WorkPackages returns every work package in the plan in document
// order, descending into groups depth-first.
func (p *Plan) WorkPackages() []*WorkPackage {
	var wps []*WorkPackage
	for _, c := range p.Categories {
		walkItems(c.Items, func(item Item) {
			if wp, ok := item.(*WorkPackage); ok {
				wps = append(wps, wp)
			}
		})
	}
	return wps
}

// Walk visits every item in the plan in document order, descending into
// groups depth-first. Categories themselves are not items and are not
// visited; use Categories directly for those.
func (p *Plan) Walk(visit func(Item)) {
	for _, c := range p.Categories {
		walkItems(c.Items, visit)
	}
}

func walkItems(items []Item, visit func(Item)) {
	for _, item := range items {
		visit(item)
		if g, ok := item.(*Group); ok {
			walkItems(g.Items, visit)
		}
	}
}

func aggregateSpan(items []Item) (time.Time, time.Time, bool) {
	var start, finish time.Time
	found := false
	for _, item := range items {
		s, f, ok := item.Span()
		if !ok {
			continue
		}
		if !found || s.Before(start) {
			start = s
		}
		if !found || f.After(finish) {
			finish = f
		}
		found = true
	}
	return start, finish, found
}

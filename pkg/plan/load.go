package plan

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// Allowed keys per node kind. The schema is closed: any other key is a
// hard validation error, never silently ignored.
var (
	projectKeys = map[string]bool{"name": true, "meta": true}
	phaseKeys   = map[string]bool{"wbs": true, "name": true, "items": true, "meta": true}
	itemKeys    = map[string]bool{
		"wbs": true, "name": true, "items": true, "duration_days": true,
		"start_date": true, "depends_on": true, "deadline_date": true, "meta": true,
	}
)

// Load reads a Plan from a YAML file. No scheduling is performed; use
// schedule.Schedule afterwards. The schema is closed and every error is
// path-qualified, e.g. "phases[0].items[2].duration_days: expected integer".
func Load(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read %s", path)
	}
	return Parse(raw)
}

// Parse decodes a Plan from YAML bytes.
func Parse(data []byte) (*Plan, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid YAML")
	}
	l := &loader{seen: make(map[string]bool)}
	return l.parsePlan(doc, "root")
}

// loader carries the set of WBS ids seen so far, so duplicate ids are
// rejected at parse time with the exact YAML path. The scheduler
// re-checks uniqueness over the built tree as its own first gate.
type loader struct {
	seen map[string]bool
}

func (l *loader) parsePlan(doc any, path string) (*Plan, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, badNode(path, "expected mapping at top level")
	}

	projRaw, ok := m["project"].(map[string]any)
	if !ok {
		return nil, badNode(path, "missing required mapping 'project'")
	}
	if err := assertAllowedKeys(projRaw, projectKeys, path+".project"); err != nil {
		return nil, err
	}
	name, err := requireString(projRaw, "name", path+".project")
	if err != nil {
		return nil, err
	}
	meta, err := parseMeta(projRaw["meta"], path+".project.meta")
	if err != nil {
		return nil, err
	}

	phasesRaw, ok := m["phases"]
	if !ok || phasesRaw == nil {
		return nil, badNode(path, "missing required field 'phases'")
	}
	phasesList, ok := phasesRaw.([]any)
	if !ok {
		return nil, badNode(path+".phases", "expected list")
	}

	p := &Plan{Name: name, Meta: meta}
	for i, phaseRaw := range phasesList {
		cat, err := l.parseCategory(phaseRaw, fmt.Sprintf("%s.phases[%d]", path, i))
		if err != nil {
			return nil, err
		}
		p.Categories = append(p.Categories, cat)
	}
	return p, nil
}

func (l *loader) parseCategory(doc any, path string) (*Category, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, badNode(path, "expected mapping for phase")
	}
	if err := assertAllowedKeys(m, phaseKeys, path); err != nil {
		return nil, err
	}
	wbs, err := l.requireWBS(m, path, "")
	if err != nil {
		return nil, err
	}
	name, err := requireString(m, "name", path)
	if err != nil {
		return nil, err
	}
	meta, err := parseMeta(m["meta"], path+".meta")
	if err != nil {
		return nil, err
	}

	itemsRaw, ok := m["items"]
	if !ok || itemsRaw == nil {
		return nil, badNode(path, "missing required field 'items'")
	}
	itemsList, ok := itemsRaw.([]any)
	if !ok {
		return nil, badNode(path+".items", "expected list")
	}

	cat := &Category{WBS: wbs, Name: name, Meta: meta}
	for i, itemRaw := range itemsList {
		item, err := l.parseItem(itemRaw, fmt.Sprintf("%s.items[%d]", path, i), wbs)
		if err != nil {
			return nil, err
		}
		cat.Items = append(cat.Items, item)
	}
	return cat, nil
}

func (l *loader) parseItem(doc any, path, parentWBS string) (Item, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, badNode(path, "expected mapping for WBS item")
	}
	if err := assertAllowedKeys(m, itemKeys, path); err != nil {
		return nil, err
	}
	wbs, err := l.requireWBS(m, path, parentWBS)
	if err != nil {
		return nil, err
	}
	name, err := requireString(m, "name", path)
	if err != nil {
		return nil, err
	}
	meta, err := parseMeta(m["meta"], path+".meta")
	if err != nil {
		return nil, err
	}

	_, hasItems := m["items"]
	_, hasDuration := m["duration_days"]
	_, hasDeadline := m["deadline_date"]
	_, hasDepends := m["depends_on"]
	_, hasStart := m["start_date"]

	switch {
	case hasItems:
		if hasDuration || hasDeadline || hasDepends || hasStart {
			return nil, badNode(path, "groups must not define scheduling fields")
		}
		itemsList, ok := m["items"].([]any)
		if !ok {
			return nil, badNode(path+".items", "expected list")
		}
		g := &Group{WBS: wbs, Name: name, Meta: meta}
		for i, childRaw := range itemsList {
			child, err := l.parseItem(childRaw, fmt.Sprintf("%s.items[%d]", path, i), wbs)
			if err != nil {
				return nil, err
			}
			g.Items = append(g.Items, child)
		}
		return g, nil

	case hasDuration && hasDeadline:
		return nil, badNode(path, "choose either duration_days or deadline_date, not both")

	case hasDeadline:
		if hasDepends || hasStart {
			return nil, badNode(path, "milestones do not accept depends_on or start_date")
		}
		deadline, err := parseDateValue(m["deadline_date"], path+".deadline_date")
		if err != nil {
			return nil, err
		}
		return &Milestone{WBS: wbs, Name: name, Deadline: deadline, Meta: meta}, nil

	case hasDuration:
		duration, ok := m["duration_days"].(int)
		if !ok {
			return nil, badNode(path+".duration_days", "expected integer")
		}
		wp := &WorkPackage{WBS: wbs, Name: name, DurationDays: duration, Meta: meta}
		if hasStart {
			start, err := parseDateValue(m["start_date"], path+".start_date")
			if err != nil {
				return nil, err
			}
			wp.Start = &start
		}
		if hasDepends && m["depends_on"] != nil {
			depsList, ok := m["depends_on"].([]any)
			if !ok {
				return nil, badNode(path+".depends_on", "expected list of wbs ids")
			}
			for i, dep := range depsList {
				s, ok := dep.(string)
				if !ok {
					return nil, badNode(fmt.Sprintf("%s.depends_on[%d]", path, i), "expected string wbs id")
				}
				wp.DependsOn = append(wp.DependsOn, s)
			}
		}
		return wp, nil
	}

	return nil, badNode(path, "leaf items must define duration_days or deadline_date")
}

func (l *loader) requireWBS(m map[string]any, path, parentWBS string) (string, error) {
	wbs, err := requireString(m, "wbs", path)
	if err != nil {
		return "", err
	}
	if parentWBS != "" && !strings.HasPrefix(wbs, parentWBS+".") {
		return "", badNode(path+".wbs", fmt.Sprintf("expected WBS to start with %q", parentWBS+"."))
	}
	if l.seen[wbs] {
		return "", badNode(path+".wbs", fmt.Sprintf("duplicate wbs %q", wbs))
	}
	l.seen[wbs] = true
	return wbs, nil
}

func assertAllowedKeys(m map[string]any, allowed map[string]bool, path string) error {
	var extras []string
	for k := range m {
		if !allowed[k] {
			extras = append(extras, k)
		}
	}
	if len(extras) > 0 {
		sort.Strings(extras)
		return badNode(path, fmt.Sprintf("unexpected fields %v", extras))
	}
	return nil
}

func requireString(m map[string]any, key, path string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", badNode(path, fmt.Sprintf("missing required field %q", key))
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", badNode(path+"."+key, "expected non-empty string")
	}
	return s, nil
}

// parseDateValue accepts either a quoted YYYY-MM-DD string or a scalar
// the YAML decoder already resolved to a timestamp.
func parseDateValue(v any, path string) (time.Time, error) {
	switch d := v.(type) {
	case string:
		t, err := ParseDate(d)
		if err != nil {
			return time.Time{}, badNode(path, "expected YYYY-MM-DD string")
		}
		return t, nil
	case time.Time:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, badNode(path, "expected YYYY-MM-DD string")
	}
}

func parseMeta(v any, path string) (Metadata, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, badNode(path, "expected mapping for meta")
	}
	return Metadata(m), nil
}

func badNode(path, msg string) error {
	return errors.New(errors.ErrCodeValidation, "%s: %s", path, msg)
}

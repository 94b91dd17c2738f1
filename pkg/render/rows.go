// Package render flattens a scheduled plan into drawable rows.
//
// The flattener is the adapter between the plan tree and the chart
// composer in the gantt subpackage: it walks the tree in document order
// and emits one [Row] per node, carrying only the fields renderers
// need. Routing lives in the route subpackage; chart composition and
// the SVG/PNG canvases live in gantt.
package render

import (
	"time"

	"github.com/matzehuels/ganttline/pkg/plan"
)

// Kind tags how a row is drawn.
type Kind string

const (
	// KindHeading is a category heading: label only, no shape.
	KindHeading Kind = "heading"
	// KindBar is a work package bar.
	KindBar Kind = "bar"
	// KindLozenge is a milestone diamond.
	KindLozenge Kind = "lozenge"
	// KindBracket is a group span bracket.
	KindBracket Kind = "bracket"
)

// Row is the flattened, render-ready view of one plan node.
type Row struct {
	Order    int
	Indent   int
	Kind     Kind
	ID       string
	Name     string
	Category string // owning category WBS ("" only for malformed input)

	DependsOn []string

	Start    *time.Time // bars and brackets
	Finish   *time.Time // bars and brackets
	Deadline *time.Time // lozenges
}

// Rows converts a scheduled plan into an ordered, indented row list.
// Category headings come first, followed by their items in document
// order; group rows precede their children, which are indented one
// level deeper.
func Rows(p *plan.Plan) []Row {
	var rows []Row
	order := 0

	for _, cat := range p.Categories {
		rows = append(rows, Row{
			Order:    order,
			Indent:   0,
			Kind:     KindHeading,
			ID:       cat.WBS,
			Name:     cat.Name,
			Category: cat.WBS,
		})
		order++
		for _, item := range cat.Items {
			rows, order = appendItem(rows, item, order, 1, cat.WBS)
		}
	}
	return rows
}

func appendItem(rows []Row, item plan.Item, order, indent int, category string) ([]Row, int) {
	switch node := item.(type) {
	case *plan.WorkPackage:
		row := Row{
			Order:     order,
			Indent:    indent,
			Kind:      KindBar,
			ID:        node.WBS,
			Name:      node.Name,
			Category:  category,
			DependsOn: append([]string(nil), node.DependsOn...),
		}
		if node.Start != nil {
			start := *node.Start
			finish, _ := node.Finish()
			row.Start, row.Finish = &start, &finish
		}
		return append(rows, row), order + 1

	case *plan.Milestone:
		deadline := node.Deadline
		return append(rows, Row{
			Order:    order,
			Indent:   indent,
			Kind:     KindLozenge,
			ID:       node.WBS,
			Name:     node.Name,
			Category: category,
			Deadline: &deadline,
		}), order + 1

	case *plan.Group:
		row := Row{
			Order:    order,
			Indent:   indent,
			Kind:     KindBracket,
			ID:       node.WBS,
			Name:     node.Name,
			Category: category,
		}
		if start, finish, ok := node.Span(); ok {
			row.Start, row.Finish = &start, &finish
		}
		rows = append(rows, row)
		order++
		for _, child := range node.Items {
			rows, order = appendItem(rows, child, order, indent+1, category)
		}
		return rows, order

	default:
		// Unreachable: the plan.Item set is closed.
		return rows, order
	}
}

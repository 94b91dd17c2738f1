package gantt

import (
	"sort"

	"github.com/matzehuels/ganttline/pkg/render"
)

// palette is the fixed category color cycle, a 20-slot qualitative
// scheme (paired strong/soft hues). Assignment is by sorted category
// id, so colors are stable across runs and row reordering.
var palette = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78",
	"#2ca02c", "#98df8a", "#d62728", "#ff9896",
	"#9467bd", "#c5b0d5", "#8c564b", "#c49c94",
	"#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7",
	"#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// Fallback colors for rows without a category and for shapes with no
// palette slot.
const (
	defaultBarColor     = "#999999"
	defaultBracketColor = "#555555"
	milestoneColor      = "#666666"
	arrowColor          = "#3a3a3a"
	gridColor           = "#888888"
	textColor           = "#1a1a1a"
)

// categoryColors assigns palette slots to category ids. Categories are
// sorted by id and assigned slots in that order, independent of
// insertion or row order. Overrides (from category color hints or the
// style config) win over the palette.
func categoryColors(rows []render.Row, overrides map[string]string) map[string]string {
	set := make(map[string]bool)
	for _, row := range rows {
		if row.Category != "" {
			set[row.Category] = true
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	colors := make(map[string]string, len(ids))
	for i, id := range ids {
		colors[id] = palette[i%len(palette)]
	}
	for id, color := range overrides {
		if color != "" {
			colors[id] = color
		}
	}
	return colors
}

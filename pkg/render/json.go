package render

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/plan"
)

// jsonRow is the machine-readable projection of a Row. Dates are plain
// YYYY-MM-DD strings, omitted when unset.
type jsonRow struct {
	Order     int      `json:"order"`
	Indent    int      `json:"indent"`
	Kind      Kind     `json:"kind"`
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`
	Start     string   `json:"start,omitempty"`
	Finish    string   `json:"finish,omitempty"`
	Deadline  string   `json:"deadline,omitempty"`
}

// MarshalRows serializes scheduled rows as an indented JSON array, for
// piping into other tools instead of drawing a chart.
func MarshalRows(rows []Row) ([]byte, error) {
	out := make([]jsonRow, len(rows))
	for i, row := range rows {
		out[i] = jsonRow{
			Order:     row.Order,
			Indent:    row.Indent,
			Kind:      row.Kind,
			ID:        row.ID,
			Name:      row.Name,
			Category:  row.Category,
			DependsOn: row.DependsOn,
			Start:     formatDate(row.Start),
			Finish:    formatDate(row.Finish),
			Deadline:  formatDate(row.Deadline),
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding rows as json")
	}
	return append(data, '\n'), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return plan.FormatDate(*t)
}

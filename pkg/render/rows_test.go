package render

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/plan"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testPlan() *plan.Plan {
	s1 := date(2024, 1, 1)
	s2 := date(2024, 1, 3)
	return &plan.Plan{
		Name: "demo",
		Categories: []*plan.Category{
			{WBS: "1", Name: "Discovery", Items: []plan.Item{
				&plan.WorkPackage{WBS: "1.1", Name: "Interviews", DurationDays: 3, Start: &s1},
				&plan.Group{WBS: "1.2", Name: "Analysis", Items: []plan.Item{
					&plan.WorkPackage{WBS: "1.2.1", Name: "Synthesis", DurationDays: 2, Start: &s2, DependsOn: []string{"1.1"}},
				}},
				&plan.Milestone{WBS: "1.M", Name: "Kickoff done", Deadline: date(2024, 1, 10)},
			}},
		},
	}
}

func TestRows_OrderAndKinds(t *testing.T) {
	rows := Rows(testPlan())

	wantKinds := []Kind{KindHeading, KindBar, KindBracket, KindBar, KindLozenge}
	wantIDs := []string{"1", "1.1", "1.2", "1.2.1", "1.M"}

	if len(rows) != len(wantKinds) {
		t.Fatalf("Rows() returned %d rows, want %d", len(rows), len(wantKinds))
	}
	for i, row := range rows {
		if row.Kind != wantKinds[i] {
			t.Errorf("rows[%d].Kind = %s, want %s", i, row.Kind, wantKinds[i])
		}
		if row.ID != wantIDs[i] {
			t.Errorf("rows[%d].ID = %s, want %s", i, row.ID, wantIDs[i])
		}
		if row.Order != i {
			t.Errorf("rows[%d].Order = %d, want %d", i, row.Order, i)
		}
	}
}

func TestRows_Indentation(t *testing.T) {
	rows := Rows(testPlan())

	wantIndent := []int{0, 1, 1, 2, 1}
	for i, row := range rows {
		if row.Indent != wantIndent[i] {
			t.Errorf("rows[%d] (%s) Indent = %d, want %d", i, row.ID, row.Indent, wantIndent[i])
		}
	}
}

func TestRows_CategoryAttribution(t *testing.T) {
	for _, row := range Rows(testPlan()) {
		if row.Category != "1" {
			t.Errorf("row %s Category = %q, want %q", row.ID, row.Category, "1")
		}
	}
}

func TestRows_GroupSpanCarried(t *testing.T) {
	rows := Rows(testPlan())
	bracket := rows[2]
	if bracket.Kind != KindBracket {
		t.Fatalf("rows[2].Kind = %s, want bracket", bracket.Kind)
	}
	if bracket.Start == nil || bracket.Finish == nil {
		t.Fatal("bracket row missing span")
	}
	if !bracket.Start.Equal(date(2024, 1, 3)) || !bracket.Finish.Equal(date(2024, 1, 4)) {
		t.Errorf("bracket span = %v..%v, want 2024-01-03..2024-01-04", bracket.Start, bracket.Finish)
	}
}

func TestRows_UnscheduledBarHasNoDates(t *testing.T) {
	p := &plan.Plan{
		Categories: []*plan.Category{
			{WBS: "1", Name: "a", Items: []plan.Item{
				&plan.WorkPackage{WBS: "1.1", Name: "floating", DurationDays: 2},
			}},
		},
	}
	rows := Rows(p)
	if rows[1].Start != nil || rows[1].Finish != nil {
		t.Errorf("unscheduled bar carries dates: %+v", rows[1])
	}
}

func TestMarshalRows(t *testing.T) {
	data, err := MarshalRows(Rows(testPlan()))
	if err != nil {
		t.Fatalf("MarshalRows() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`"kind": "heading"`,
		`"kind": "bar"`,
		`"kind": "lozenge"`,
		`"id": "1.2.1"`,
		`"start": "2024-01-03"`,
		`"deadline": "2024-01-10"`,
		`"depends_on"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"deadline": ""`) {
		t.Error("empty dates must be omitted, not empty strings")
	}
}

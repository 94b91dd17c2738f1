package plan

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_Valid(t *testing.T) {
	got, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if want := date(2024, 3, 15); !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"15.03.2024", "2024-3-15", "2024-03-15T00:00:00Z", "march 15"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) expected error, got nil", input)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{date(2024, 1, 1), date(2024, 1, 1), 0},
		{date(2024, 1, 1), date(2024, 1, 8), 7},
		{date(2024, 2, 28), date(2024, 3, 1), 2}, // leap year
		{date(2024, 1, 8), date(2024, 1, 1), -7},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d",
				FormatDate(tt.a), FormatDate(tt.b), got, tt.want)
		}
	}
}

func TestWorkPackage_Finish(t *testing.T) {
	start := date(2024, 1, 1)
	wp := &WorkPackage{WBS: "1.1", DurationDays: 3, Start: &start}

	finish, ok := wp.Finish()
	if !ok {
		t.Fatal("Finish() ok = false, want true")
	}
	// Inclusive range: a 3-day package starting Jan 1 finishes Jan 3.
	if want := date(2024, 1, 3); !finish.Equal(want) {
		t.Errorf("Finish() = %v, want %v", finish, want)
	}
}

func TestWorkPackage_Finish_Unscheduled(t *testing.T) {
	wp := &WorkPackage{WBS: "1.1", DurationDays: 3}
	if _, ok := wp.Finish(); ok {
		t.Error("Finish() ok = true for unscheduled package, want false")
	}
}

func TestWorkPackage_OneDayDuration(t *testing.T) {
	start := date(2024, 5, 10)
	wp := &WorkPackage{WBS: "1.1", DurationDays: 1, Start: &start}

	finish, _ := wp.Finish()
	if !finish.Equal(start) {
		t.Errorf("Finish() = %v, want same day %v for 1-day package", finish, start)
	}
}

func TestMilestone_Span(t *testing.T) {
	m := &Milestone{WBS: "1.M", Deadline: date(2024, 6, 1)}
	start, finish, ok := m.Span()
	if !ok {
		t.Fatal("Span() ok = false, want true")
	}
	if !start.Equal(finish) || !start.Equal(m.Deadline) {
		t.Errorf("Span() = (%v, %v), want deadline on both ends", start, finish)
	}
}

func TestGroup_Span(t *testing.T) {
	s1 := date(2024, 1, 5)
	s2 := date(2024, 1, 1)
	g := &Group{
		WBS: "1.G",
		Items: []Item{
			&WorkPackage{WBS: "1.G.1", DurationDays: 2, Start: &s1},
			&WorkPackage{WBS: "1.G.2", DurationDays: 10, Start: &s2},
			&WorkPackage{WBS: "1.G.3", DurationDays: 4}, // unscheduled, ignored
		},
	}

	start, finish, ok := g.Span()
	if !ok {
		t.Fatal("Span() ok = false, want true")
	}
	if want := date(2024, 1, 1); !start.Equal(want) {
		t.Errorf("Span() start = %v, want %v", start, want)
	}
	if want := date(2024, 1, 10); !finish.Equal(want) {
		t.Errorf("Span() finish = %v, want %v", finish, want)
	}
}

func TestGroup_Span_AllUnscheduled(t *testing.T) {
	g := &Group{
		WBS: "1.G",
		Items: []Item{
			&WorkPackage{WBS: "1.G.1", DurationDays: 2},
		},
	}
	if _, _, ok := g.Span(); ok {
		t.Error("Span() ok = true for fully unscheduled group, want false")
	}
}

func TestPlan_Walk_DocumentOrder(t *testing.T) {
	p := &Plan{
		Name: "demo",
		Categories: []*Category{
			{WBS: "1", Items: []Item{
				&WorkPackage{WBS: "1.1", DurationDays: 1},
				&Group{WBS: "1.2", Items: []Item{
					&WorkPackage{WBS: "1.2.1", DurationDays: 1},
					&Milestone{WBS: "1.2.M", Deadline: date(2024, 1, 1)},
				}},
			}},
			{WBS: "2", Items: []Item{
				&WorkPackage{WBS: "2.1", DurationDays: 1},
			}},
		},
	}

	var ids []string
	p.Walk(func(item Item) { ids = append(ids, item.ID()) })

	want := []string{"1.1", "1.2", "1.2.1", "1.2.M", "2.1"}
	if len(ids) != len(want) {
		t.Fatalf("Walk() visited %d items, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Walk() order[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestPlan_WorkPackages_SkipsOtherKinds(t *testing.T) {
	p := &Plan{
		Categories: []*Category{
			{WBS: "1", Items: []Item{
				&WorkPackage{WBS: "1.1", DurationDays: 1},
				&Milestone{WBS: "1.M", Deadline: date(2024, 1, 1)},
				&Group{WBS: "1.G", Items: []Item{
					&WorkPackage{WBS: "1.G.1", DurationDays: 1},
				}},
			}},
		},
	}

	wps := p.WorkPackages()
	if len(wps) != 2 {
		t.Fatalf("WorkPackages() returned %d, want 2", len(wps))
	}
	if wps[0].WBS != "1.1" || wps[1].WBS != "1.G.1" {
		t.Errorf("WorkPackages() = [%s %s], want [1.1 1.G.1]", wps[0].WBS, wps[1].WBS)
	}
}

func TestCategory_Color(t *testing.T) {
	c := &Category{WBS: "1", Meta: Metadata{"color": "#ff0000"}}
	color, ok := c.Color()
	if !ok || color != "#ff0000" {
		t.Errorf("Color() = (%q, %v), want (#ff0000, true)", color, ok)
	}

	c2 := &Category{WBS: "2"}
	if _, ok := c2.Color(); ok {
		t.Error("Color() ok = true without a color hint, want false")
	}
}

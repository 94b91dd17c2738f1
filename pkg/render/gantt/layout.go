package gantt

import (
	"time"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/plan"
	"github.com/matzehuels/ganttline/pkg/render"
)

// windowPadDays widens the resolved date window on each side so bars
// never touch the chart edge.
const windowPadDays = 7

// timeline maps calendar dates to horizontal pixel positions. Day zero
// is the (padded) window start; fractional days are allowed so bar ends
// and anchors can sit between grid dates.
type timeline struct {
	start, end time.Time
	left       float64 // pixel x of day zero
	dayWidth   float64 // pixels per day
}

// resolveWindow derives the visible date range from the rows, widened
// by the pad. Explicit overrides win over the derived bound on their
// side; a nil override keeps the derived one. With no dated rows and no
// overrides there is nothing to draw.
func resolveWindow(rows []render.Row, minOverride, maxOverride *time.Time) (time.Time, time.Time, error) {
	var lo, hi *time.Time
	observe := func(t *time.Time) {
		if t == nil {
			return
		}
		if lo == nil || t.Before(*lo) {
			lo = t
		}
		if hi == nil || t.After(*hi) {
			hi = t
		}
	}
	for i := range rows {
		observe(rows[i].Start)
		observe(rows[i].Finish)
		observe(rows[i].Deadline)
	}

	if lo != nil {
		padded := lo.AddDate(0, 0, -windowPadDays)
		lo = &padded
	}
	if hi != nil {
		padded := hi.AddDate(0, 0, windowPadDays)
		hi = &padded
	}
	if minOverride != nil {
		lo = minOverride
	}
	if maxOverride != nil {
		hi = maxOverride
	}

	if lo == nil || hi == nil {
		return time.Time{}, time.Time{}, errors.New(errors.ErrCodeRender,
			"cannot determine date range: no dated rows and no explicit bounds")
	}
	if hi.Before(*lo) {
		return time.Time{}, time.Time{}, errors.New(errors.ErrCodeRender,
			"invalid date range: max date %s precedes min date %s", plan.FormatDate(*hi), plan.FormatDate(*lo))
	}
	return *lo, *hi, nil
}

func newTimeline(start, end time.Time, left, dayWidth float64) *timeline {
	return &timeline{start: start, end: end, left: left, dayWidth: dayWidth}
}

// days returns t's offset from the window start in days.
func (tl *timeline) days(t time.Time) float64 {
	return float64(plan.DaysBetween(tl.start, t))
}

// x maps a day offset to a pixel position.
func (tl *timeline) x(day float64) float64 {
	return tl.left + day*tl.dayWidth
}

// xDate maps a date directly to a pixel position.
func (tl *timeline) xDate(t time.Time) float64 {
	return tl.x(tl.days(t))
}

// spanDays is the window width in days.
func (tl *timeline) spanDays() int {
	return plan.DaysBetween(tl.start, tl.end)
}

// tick is one labelled vertical gridline.
type tick struct {
	date  time.Time
	label string
}

// ticks picks gridline dates by window span: month boundaries beyond
// half a year, Mondays (biweekly, then weekly) for quarter-scale
// windows, and every other day below that.
func (tl *timeline) ticks() []tick {
	span := tl.spanDays()
	switch {
	case span > 180:
		return tl.monthTicks()
	case span > 90:
		return tl.weekdayTicks(14)
	case span > 45:
		return tl.weekdayTicks(7)
	default:
		return tl.dayTicks(2)
	}
}

func (tl *timeline) monthTicks() []tick {
	var out []tick
	t := time.Date(tl.start.Year(), tl.start.Month(), 1, 0, 0, 0, 0, time.UTC)
	if t.Before(tl.start) {
		t = t.AddDate(0, 1, 0)
	}
	for !t.After(tl.end) {
		out = append(out, tick{date: t, label: t.Format("Jan 2006")})
		t = t.AddDate(0, 1, 0)
	}
	return out
}

// weekdayTicks emits a tick every stepDays days, aligned to the first
// Monday at or after the window start.
func (tl *timeline) weekdayTicks(stepDays int) []tick {
	t := tl.start
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, 1)
	}
	var out []tick
	for !t.After(tl.end) {
		out = append(out, tick{date: t, label: t.Format("Jan 02")})
		t = t.AddDate(0, 0, stepDays)
	}
	return out
}

func (tl *timeline) dayTicks(stepDays int) []tick {
	var out []tick
	for t := tl.start; !t.After(tl.end); t = t.AddDate(0, 0, stepDays) {
		out = append(out, tick{date: t, label: t.Format("Jan 02")})
	}
	return out
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/plan"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func wp(wbs string, duration int, deps ...string) *plan.WorkPackage {
	return &plan.WorkPackage{WBS: wbs, Name: wbs, DurationDays: duration, DependsOn: deps}
}

func wpAt(wbs string, duration int, start time.Time, deps ...string) *plan.WorkPackage {
	w := wp(wbs, duration, deps...)
	w.Start = &start
	return w
}

func singlePhase(items ...plan.Item) *plan.Plan {
	return &plan.Plan{
		Name: "test",
		Categories: []*plan.Category{
			{WBS: "1", Name: "Phase", Items: items},
		},
	}
}

func TestSchedule_BackToBack(t *testing.T) {
	// A 2-day package starting Jan 1 finishes Jan 2; its dependent
	// starts that same day, not the day after.
	a := wpAt("1.1", 2, date(2024, 1, 1))
	b := wp("1.2", 3, "1.1")
	p := singlePhase(a, b)

	require.NoError(t, Schedule(p))

	require.NotNil(t, b.Start)
	assert.Equal(t, date(2024, 1, 2), *b.Start)
	finish, ok := b.Finish()
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 4), finish)
}

func TestSchedule_ChainPropagation(t *testing.T) {
	a := wpAt("1.1", 5, date(2024, 3, 1))
	b := wp("1.2", 4, "1.1")
	c := wp("1.3", 2, "1.2")
	p := singlePhase(a, b, c)

	require.NoError(t, Schedule(p))

	assert.Equal(t, date(2024, 3, 5), *b.Start) // a finishes Mar 5
	assert.Equal(t, date(2024, 3, 8), *c.Start) // b finishes Mar 8
}

func TestSchedule_LatestPredecessorWins(t *testing.T) {
	early := wpAt("1.1", 2, date(2024, 1, 1)) // finishes Jan 2
	late := wpAt("1.2", 9, date(2024, 1, 1))  // finishes Jan 9
	dep := wp("1.3", 1, "1.1", "1.2")
	p := singlePhase(early, late, dep)

	require.NoError(t, Schedule(p))
	assert.Equal(t, date(2024, 1, 9), *dep.Start)
}

func TestSchedule_TieKeepsFirstListed(t *testing.T) {
	// Both predecessors finish Jan 3. On an explicit-start conflict the
	// error must name the first-listed one, proving the stable max.
	a := wpAt("1.1", 3, date(2024, 1, 1))
	b := wpAt("1.2", 3, date(2024, 1, 1))
	c := wpAt("1.3", 1, date(2024, 1, 2), "1.1", "1.2")
	p := singlePhase(a, b, c)

	err := Schedule(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeScheduling))
	assert.Contains(t, err.Error(), `"1.1"`)
	assert.NotContains(t, err.Error(), `dependency "1.2"`)
}

func TestSchedule_ExplicitStartPreserved(t *testing.T) {
	a := wpAt("1.1", 2, date(2024, 1, 1))
	b := wpAt("1.2", 3, date(2024, 2, 1), "1.1") // later than inferred
	p := singlePhase(a, b)

	require.NoError(t, Schedule(p))
	assert.Equal(t, date(2024, 2, 1), *b.Start, "explicit start must not be overwritten")
}

func TestSchedule_ExplicitStartBeforeDependencyFinish(t *testing.T) {
	a := wpAt("1.1", 10, date(2024, 1, 1)) // finishes Jan 10
	b := wpAt("1.2", 3, date(2024, 1, 5), "1.1")
	p := singlePhase(a, b)

	err := Schedule(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeScheduling))
	assert.Contains(t, err.Error(), "precedes dependency")
}

func TestSchedule_NoStartAnywhere(t *testing.T) {
	// A package with no explicit start and no dependencies stays
	// unscheduled; a dependent of it cannot be resolved.
	a := wp("1.1", 2)
	b := wp("1.2", 3, "1.1")
	p := singlePhase(a, b)

	err := Schedule(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeScheduling))
	assert.Contains(t, err.Error(), "has no start date")
}

func TestSchedule_FloatingPackageAllowed(t *testing.T) {
	// Unscheduled with no dependents: valid, stays dateless.
	a := wpAt("1.1", 2, date(2024, 1, 1))
	floating := wp("1.2", 4)
	p := singlePhase(a, floating)

	require.NoError(t, Schedule(p))
	assert.Nil(t, floating.Start)
}

func TestSchedule_NonPositiveDuration(t *testing.T) {
	for _, duration := range []int{0, -3} {
		p := singlePhase(wpAt("1.1", duration, date(2024, 1, 1)))
		err := Schedule(p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeScheduling),
			"duration %d should be a scheduling error", duration)
	}
}

func TestSchedule_CycleDetected(t *testing.T) {
	a := wp("1.1", 2, "1.3")
	b := wp("1.2", 2, "1.1")
	c := wp("1.3", 2, "1.2")
	p := singlePhase(a, b, c)

	err := Schedule(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	assert.Contains(t, err.Error(), "dependency cycle detected")
	assert.Contains(t, err.Error(), "->")
}

func TestSchedule_SelfCycle(t *testing.T) {
	p := singlePhase(wp("1.1", 2, "1.1"))
	err := Schedule(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency cycle detected: 1.1 -> 1.1")
}

func TestSchedule_UnknownDependency(t *testing.T) {
	p := singlePhase(wp("1.1", 2, "9.9"))
	err := Schedule(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	assert.Contains(t, err.Error(), `unknown id "9.9"`)
}

func TestSchedule_DependencyOnMilestone(t *testing.T) {
	m := &plan.Milestone{WBS: "1.M", Name: "launch", Deadline: date(2024, 6, 1)}
	p := singlePhase(m, wp("1.1", 2, "1.M"))

	err := Schedule(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	assert.Contains(t, err.Error(), "must target work packages")
}

func TestSchedule_DuplicateIDs(t *testing.T) {
	p := &plan.Plan{
		Name: "test",
		Categories: []*plan.Category{
			{WBS: "1", Name: "a", Items: []plan.Item{wpAt("1.1", 2, date(2024, 1, 1))}},
			{WBS: "2", Name: "b", Items: []plan.Item{
				&plan.Milestone{WBS: "1.1", Name: "dup", Deadline: date(2024, 2, 1)},
			}},
		},
	}

	err := Schedule(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	assert.Contains(t, err.Error(), `duplicate id "1.1"`)
	assert.Contains(t, err.Error(), "work package")
	assert.Contains(t, err.Error(), "milestone")
}

func TestSchedule_DiamondDependency(t *testing.T) {
	root := wpAt("1.1", 4, date(2024, 1, 1)) // finishes Jan 4
	left := wp("1.2", 2, "1.1")              // Jan 4 - Jan 5
	right := wp("1.3", 6, "1.1")             // Jan 4 - Jan 9
	join := wp("1.4", 1, "1.2", "1.3")
	p := singlePhase(root, left, right, join)

	require.NoError(t, Schedule(p))
	assert.Equal(t, date(2024, 1, 9), *join.Start)
}

func TestSchedule_DeterministicAcrossRuns(t *testing.T) {
	build := func() (*plan.Plan, *plan.WorkPackage) {
		a := wpAt("1.1", 3, date(2024, 1, 1))
		b := wp("1.2", 2, "1.1")
		c := wp("1.3", 2, "1.1")
		d := wp("1.4", 1, "1.2", "1.3")
		return singlePhase(a, b, c, d), d
	}

	first, firstD := build()
	require.NoError(t, Schedule(first))
	for i := 0; i < 20; i++ {
		p, d := build()
		require.NoError(t, Schedule(p))
		assert.Equal(t, *firstD.Start, *d.Start)
	}
}

func TestSchedule_Idempotent(t *testing.T) {
	a := wpAt("1.1", 2, date(2024, 1, 1))
	b := wp("1.2", 3, "1.1")
	p := singlePhase(a, b)

	require.NoError(t, Schedule(p))
	firstStart := *b.Start
	require.NoError(t, Schedule(p))
	assert.Equal(t, firstStart, *b.Start)
}

func TestGroupSpans(t *testing.T) {
	inner := wpAt("1.G.1", 5, date(2024, 1, 10))
	g := &plan.Group{WBS: "1.G", Name: "build", Items: []plan.Item{
		inner,
		wp("1.G.2", 3, "1.G.1"),
	}}
	empty := &plan.Group{WBS: "1.E", Name: "empty", Items: []plan.Item{wp("1.E.1", 4)}}
	p := singlePhase(g, empty)

	require.NoError(t, Schedule(p))

	spans := GroupSpans(p)
	span, ok := spans["1.G"]
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 10), span.Start)
	assert.Equal(t, date(2024, 1, 16), span.Finish) // 1.G.2: Jan 14 + 3 days inclusive

	_, ok = spans["1.E"]
	assert.False(t, ok, "group with only unscheduled children must have no span")
}

func TestToposort_DocumentOrderForIndependents(t *testing.T) {
	wps := []*plan.WorkPackage{wp("1.3", 1), wp("1.1", 1), wp("1.2", 1)}
	g := buildGraph(wps)
	assert.Equal(t, []string{"1.3", "1.1", "1.2"}, g.toposort())
}

func TestFindCycle_ReportsPath(t *testing.T) {
	wps := []*plan.WorkPackage{
		wp("a", 1),
		wp("b", 1, "c"),
		wp("c", 1, "d"),
		wp("d", 1, "b"),
	}
	g := buildGraph(wps)
	cycle := g.findCycle()
	require.NotNil(t, cycle)
	assert.Equal(t, cycle[0], cycle[len(cycle)-1], "cycle path must close on itself")
	assert.GreaterOrEqual(t, len(cycle), 4)
}

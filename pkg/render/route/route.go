package route

// Routing tuning knobs, in world coordinates (x in days, y in rows).
const (
	// XPad is the horizontal gap between a bar edge and the connector
	// endpoint anchored next to it.
	XPad = 0.35
	// Clearance inflates bar rectangles when validating candidate
	// polylines, so connectors never visually touch a bar.
	Clearance = 0.12
	// DefaultBevel is the corner cut applied before drawing.
	DefaultBevel = 0.6

	// detourStepX is how far the detour column shifts left per attempt
	// when the current column is blocked.
	detourStepX = 0.5
	// detourMaxSteps bounds the leftward search.
	detourMaxSteps = 8
	// detourMarginX is the minimum margin kept from the layout's
	// leftmost x when shifting.
	detourMarginX = 1.0
)

// Anchors returns the connector endpoints for a predecessor/successor
// pair: exit at the midpoint of the predecessor's right edge, enter at
// the midpoint of the successor's left edge, both offset outward by
// XPad.
func Anchors(pred, succ Rect) (start, goal Point) {
	start = Point{X: pred.XMax + XPad, Y: pred.MidY()}
	goal = Point{X: succ.XMin - XPad, Y: succ.MidY()}
	return start, goal
}

// Route computes a collision-free orthogonal polyline from the
// predecessor bar to the successor bar, avoiding every rectangle in
// all (which should include pred and succ themselves). It never fails:
// the final tiers guarantee some polyline. The result is deduped and
// simplified but not beveled; callers apply Bevel for drawing.
func Route(pred, succ Rect, all []Rect) []Point {
	start, goal := Anchors(pred, succ)

	var attempts [][]Point
	if succ.XMin >= pred.XMax+Clearance {
		attempts = append(attempts, patternSimple(pred, succ))
	}
	attempts = append(attempts, patternDetour(pred, succ))

	for _, candidate := range attempts {
		if len(candidate) == 0 {
			continue
		}
		if candidate[0] != start || candidate[len(candidate)-1] != goal {
			continue
		}
		if !polylineIntersectsAny(candidate, all, Clearance) {
			return Simplify(candidate)
		}
	}

	return routeGrid(pred, succ, all)
}

// patternSimple is the canonical 3-segment connector:
// exit right, vertical jog at the midpoint column, enter left.
func patternSimple(pred, succ Rect) []Point {
	start, goal := Anchors(pred, succ)
	lane := (start.X + goal.X) / 2
	return []Point{start, {X: lane, Y: start.Y}, {X: lane, Y: goal.Y}, goal}
}

// patternDetour is the 5-segment fallback: exit right, drop toward the
// vertical midpoint, jog left to a detour column, drop to the
// successor's row, enter left.
func patternDetour(pred, succ Rect) []Point {
	start, goal := Anchors(pred, succ)
	lane := pred.XMax + XPad*2
	detour := chooseDetourX(pred, succ)
	midY := (start.Y + goal.Y) / 2
	return []Point{
		start,
		{X: lane, Y: start.Y},
		{X: lane, Y: midY},
		{X: detour, Y: midY},
		{X: detour, Y: goal.Y},
		goal,
	}
}

// chooseDetourX deterministically picks the detour column: start at the
// successor's entry x and step left in fixed increments until a purely
// vertical probe between the two bars' midlines is clear of both, or
// the step budget or global left guard rail is exhausted.
func chooseDetourX(pred, succ Rect) float64 {
	candidate := succ.XMin - XPad
	guardRail := min(pred.XMin, succ.XMin) - detourMarginX

	probeTop := Point{Y: pred.MidY()}
	probeBottom := Point{Y: succ.MidY()}
	endpoints := []Rect{pred, succ}

	for step := 0; step <= detourMaxSteps; step++ {
		probeTop.X, probeBottom.X = candidate, candidate
		if !polylineIntersectsAny([]Point{probeTop, probeBottom}, endpoints, Clearance) {
			return candidate
		}
		candidate -= detourStepX
		if candidate < guardRail {
			candidate = guardRail
		}
	}
	return candidate
}

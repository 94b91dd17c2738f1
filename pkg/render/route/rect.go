// Package route computes collision-free orthogonal polylines between
// chart bars for dependency arrows.
//
// All geometry lives in chart world coordinates: x is a continuous
// date-derived coordinate (days since the chart origin) and y is the
// row index. Routing is a pure function of the rectangles it is given
// and is fully deterministic: identical inputs yield identical
// polylines, with no randomness and no reliance on map iteration order.
//
// The router degrades through tiers instead of failing:
//
//  1. a canonical 3-segment "exit right, vertical jog, enter left"
//     pattern, attempted only when the successor starts at or beyond
//     the predecessor's right edge
//  2. a 5-segment detour through a deterministically chosen column to
//     the left of the successor
//  3. an A*-searched path over a rasterized obstacle grid, with a bend
//     penalty that discourages zig-zags
//  4. a single lane swung around the rightmost extent of all bars
//
// Candidates from tiers 1 and 2 are validated against every bar
// rectangle inflated by a clearance margin; tier 3 pre-blocks cells and
// is accepted as-is; tier 4 always succeeds.
package route

// Point is a vertex of a routed polyline, in world coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bar rectangle in world coordinates:
// x from date scale, y from row indices.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Inflate grows the rectangle by cx horizontally and cy vertically on
// all sides.
func (r Rect) Inflate(cx, cy float64) Rect {
	return Rect{XMin: r.XMin - cx, XMax: r.XMax + cx, YMin: r.YMin - cy, YMax: r.YMax + cy}
}

// MidY returns the vertical midpoint of the rectangle.
func (r Rect) MidY() float64 { return (r.YMin + r.YMax) / 2 }

// contains reports whether the point lies inside or on the boundary.
func (r Rect) contains(x, y float64) bool {
	return r.XMin <= x && x <= r.XMax && r.YMin <= y && y <= r.YMax
}

// segmentIntersectsRect reports whether an orthogonal segment touches
// or crosses the rectangle. Non-orthogonal segments are treated as
// intersecting for safety; the router never produces them before
// beveling, which happens after validation.
func segmentIntersectsRect(a, b Point, r Rect) bool {
	if a.Y == b.Y { // horizontal
		if a.Y < r.YMin || a.Y > r.YMax {
			return false
		}
		lo, hi := minMax(a.X, b.X)
		return hi >= r.XMin && lo <= r.XMax
	}
	if a.X == b.X { // vertical
		if a.X < r.XMin || a.X > r.XMax {
			return false
		}
		lo, hi := minMax(a.Y, b.Y)
		return hi >= r.YMin && lo <= r.YMax
	}
	return true
}

// polylineIntersectsAny checks every segment of the polyline against
// every rectangle inflated by the clearance margin.
func polylineIntersectsAny(points []Point, rects []Rect, clearance float64) bool {
	if len(points) < 2 {
		return false
	}
	inflated := make([]Rect, len(rects))
	for i, r := range rects {
		inflated[i] = r.Inflate(clearance, clearance)
	}
	for i := 0; i < len(points)-1; i++ {
		for _, r := range inflated {
			if segmentIntersectsRect(points[i], points[i+1], r) {
				return true
			}
		}
	}
	return false
}

func minMax(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}

package route

import "math"

const collinearEps = 1e-9

// Dedupe removes consecutive duplicate points so no zero-length
// segments survive into drawing.
func Dedupe(points []Point) []Point {
	if len(points) == 0 {
		return points
	}
	cleaned := []Point{points[0]}
	for _, pt := range points[1:] {
		if pt != cleaned[len(cleaned)-1] {
			cleaned = append(cleaned, pt)
		}
	}
	return cleaned
}

// Simplify removes collinear interior points from an orthogonal
// polyline, keeping endpoints untouched.
func Simplify(points []Point) []Point {
	if len(points) <= 2 {
		return points
	}
	simplified := []Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		prev := simplified[len(simplified)-1]
		cur := points[i]
		next := points[i+1]
		dx1, dy1 := cur.X-prev.X, cur.Y-prev.Y
		dx2, dy2 := next.X-cur.X, next.Y-cur.Y
		// Collinear when the cross product vanishes.
		if math.Abs(dx1*dy2-dy1*dx2) < collinearEps {
			continue
		}
		simplified = append(simplified, cur)
	}
	return append(simplified, points[len(points)-1])
}

// Bevel inserts small diagonal segments at each elbow so dependency
// lines have cut corners instead of sharp 90-degree turns. The trim
// never exceeds half of either adjacent segment.
func Bevel(points []Point, bevel float64) []Point {
	if len(points) < 3 {
		return points
	}

	beveled := []Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		prev := points[i-1]
		corner := points[i]
		next := points[i+1]

		vx1, vy1 := corner.X-prev.X, corner.Y-prev.Y
		vx2, vy2 := next.X-corner.X, next.Y-corner.Y
		len1 := math.Hypot(vx1, vy1)
		len2 := math.Hypot(vx2, vy2)

		if len1 > 0 {
			trim := math.Min(bevel, len1/2)
			beveled = append(beveled, Point{X: corner.X - vx1/len1*trim, Y: corner.Y - vy1/len1*trim})
		} else {
			beveled = append(beveled, corner)
		}
		if len2 > 0 {
			trim := math.Min(bevel, len2/2)
			beveled = append(beveled, Point{X: corner.X + vx2/len2*trim, Y: corner.Y + vy2/len2*trim})
		} else {
			beveled = append(beveled, corner)
		}
	}
	return append(beveled, points[len(points)-1])
}

// Package gantt composes scheduled render rows into a static Gantt
// chart image.
//
// The composer draws through the [Canvas] interface, an opaque 2D
// surface offering filled rectangles, polygons, line segments, arrow
// paths, and text. Two canvases ship: an SVG writer building the vector
// document in memory, and a raster canvas backed by fogleman/gg for PNG
// output. The composer, the date scale, and the dependency router are
// identical for both, so the two formats always agree on geometry.
package gantt

import "github.com/matzehuels/ganttline/pkg/render/route"

// LineStyle selects the stroke pattern for grid and bracket lines.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
)

// TextAnchor positions text relative to its (x, y) point.
type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextOptions styles a single text draw.
type TextOptions struct {
	Size   float64
	Anchor TextAnchor
	Bold   bool
	Color  string
	// Rotate tilts the text counterclockwise around (x, y), in
	// degrees. Used by the date axis tick labels.
	Rotate float64
	// Alpha in [0,1]; 0 means fully opaque (unset).
	Alpha float64
}

// Canvas is the drawing surface consumed by the chart composer.
// Coordinates are in pixels with the origin at the top-left. A canvas
// accumulates draws and serializes on Bytes.
type Canvas interface {
	// FillRect draws a filled, stroked rectangle.
	FillRect(x, y, w, h float64, fill, stroke string, strokeWidth float64)
	// FillPolygon draws a closed filled polygon through the points.
	FillPolygon(pts []route.Point, fill, stroke string)
	// Line draws a single straight segment.
	Line(x1, y1, x2, y2 float64, stroke string, width float64, style LineStyle)
	// ArrowPath draws an open polyline ending in an arrowhead at the
	// last point, oriented along the final segment.
	ArrowPath(pts []route.Point, stroke string, width float64)
	// Text draws a string at the given anchor point.
	Text(x, y float64, s string, opts TextOptions)
	// Bytes serializes the accumulated drawing.
	Bytes() ([]byte, error)
}

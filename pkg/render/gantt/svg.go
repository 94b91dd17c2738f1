package gantt

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/ganttline/pkg/render/route"
)

// svgCanvas builds the vector document in memory, one element per
// draw call, and serializes on Bytes.
type svgCanvas struct {
	buf        bytes.Buffer
	w, h       float64
	fontFamily string
}

// newSVGCanvas opens an SVG document of the given pixel size with a
// white background.
func newSVGCanvas(w, h float64, fontFamily string) *svgCanvas {
	c := &svgCanvas{w: w, h: h, fontFamily: fontFamily}
	fmt.Fprintf(&c.buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&c.buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", w, h)
	return c
}

func (c *svgCanvas) FillRect(x, y, w, h float64, fill, stroke string, strokeWidth float64) {
	fmt.Fprintf(&c.buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, w, h, fill, stroke, strokeWidth)
}

func (c *svgCanvas) FillPolygon(pts []route.Point, fill, stroke string) {
	if len(pts) == 0 {
		return
	}
	var coords []string
	for _, p := range pts {
		coords = append(coords, fmt.Sprintf("%.2f,%.2f", p.X, p.Y))
	}
	fmt.Fprintf(&c.buf, `  <polygon points="%s" fill="%s" stroke="%s" stroke-width="0.8"/>`+"\n",
		strings.Join(coords, " "), fill, stroke)
}

func (c *svgCanvas) Line(x1, y1, x2, y2 float64, stroke string, width float64, style LineStyle) {
	dash := ""
	switch style {
	case LineDashed:
		dash = ` stroke-dasharray="6,4"`
	case LineDotted:
		dash = ` stroke-dasharray="2,3"`
	}
	fmt.Fprintf(&c.buf,
		`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		x1, y1, x2, y2, stroke, width, dash)
}

func (c *svgCanvas) ArrowPath(pts []route.Point, stroke string, width float64) {
	if len(pts) < 2 {
		return
	}
	var path strings.Builder
	fmt.Fprintf(&path, "M %.2f %.2f", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		fmt.Fprintf(&path, " L %.2f %.2f", p.X, p.Y)
	}
	fmt.Fprintf(&c.buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		path.String(), stroke, width)

	c.FillPolygon(arrowhead(pts), stroke, stroke)
}

func (c *svgCanvas) Text(x, y float64, s string, opts TextOptions) {
	if s == "" {
		return
	}
	anchor := "start"
	switch opts.Anchor {
	case AnchorMiddle:
		anchor = "middle"
	case AnchorEnd:
		anchor = "end"
	}
	color := opts.Color
	if color == "" {
		color = textColor
	}
	attrs := fmt.Sprintf(`x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="%s"`,
		x, y, c.fontFamily, opts.Size, color, anchor)
	if opts.Bold {
		attrs += ` font-weight="bold"`
	}
	if opts.Alpha > 0 && opts.Alpha < 1 {
		attrs += fmt.Sprintf(` fill-opacity="%.2f"`, opts.Alpha)
	}
	if opts.Rotate != 0 {
		attrs += fmt.Sprintf(` transform="rotate(%.1f %.2f %.2f)"`, -opts.Rotate, x, y)
	}
	fmt.Fprintf(&c.buf, "  <text %s>%s</text>\n", attrs, escapeXML(s))
}

func (c *svgCanvas) Bytes() ([]byte, error) {
	out := bytes.Clone(c.buf.Bytes())
	out = append(out, []byte("</svg>\n")...)
	return out, nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }

// arrowhead returns a small triangle oriented along the polyline's
// final segment, tip at the last point.
func arrowhead(pts []route.Point) []route.Point {
	const size = 6.0
	tip := pts[len(pts)-1]
	prev := pts[len(pts)-2]
	dx, dy := tip.X-prev.X, tip.Y-prev.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	ux, uy := dx/length, dy/length
	// Perpendicular unit vector.
	px, py := -uy, ux
	baseX, baseY := tip.X-ux*size, tip.Y-uy*size
	halfW := size * 0.45
	return []route.Point{
		tip,
		{X: baseX + px*halfW, Y: baseY + py*halfW},
		{X: baseX - px*halfW, Y: baseY - py*halfW},
	}
}

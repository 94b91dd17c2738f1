package gantt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/matzehuels/ganttline/pkg/fonts"
	"github.com/matzehuels/ganttline/pkg/render/route"
)

// ggCanvas rasterizes draw calls onto a fogleman/gg context and
// serializes to PNG. With no system font found, text draws are skipped
// and the chart still renders.
type ggCanvas struct {
	dc       *gg.Context
	fontPath string
	boldPath string
}

func newGGCanvas(w, h float64) *ggCanvas {
	dc := gg.NewContext(int(w), int(h))
	dc.SetHexColor("#ffffff")
	dc.Clear()

	return &ggCanvas{
		dc:       dc,
		fontPath: fonts.Regular(),
		boldPath: fonts.Bold(),
	}
}

func (c *ggCanvas) FillRect(x, y, w, h float64, fill, stroke string, strokeWidth float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetHexColor(fill)
	c.dc.FillPreserve()
	c.dc.SetHexColor(stroke)
	c.dc.SetLineWidth(strokeWidth)
	c.dc.Stroke()
}

func (c *ggCanvas) FillPolygon(pts []route.Point, fill, stroke string) {
	if len(pts) == 0 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.SetHexColor(fill)
	c.dc.FillPreserve()
	c.dc.SetHexColor(stroke)
	c.dc.SetLineWidth(0.8)
	c.dc.Stroke()
}

func (c *ggCanvas) Line(x1, y1, x2, y2 float64, stroke string, width float64, style LineStyle) {
	switch style {
	case LineDashed:
		c.dc.SetDash(6, 4)
	case LineDotted:
		c.dc.SetDash(2, 3)
	default:
		c.dc.SetDash()
	}
	c.dc.SetHexColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
	c.dc.SetDash()
}

func (c *ggCanvas) ArrowPath(pts []route.Point, stroke string, width float64) {
	if len(pts) < 2 {
		return
	}
	c.dc.SetDash()
	c.dc.SetHexColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.Stroke()

	c.FillPolygon(arrowhead(pts), stroke, stroke)
}

func (c *ggCanvas) Text(x, y float64, s string, opts TextOptions) {
	if s == "" {
		return
	}
	path := c.fontPath
	if opts.Bold {
		path = c.boldPath
	}
	if path == "" {
		return
	}
	if err := c.dc.LoadFontFace(path, opts.Size); err != nil {
		return
	}

	color := opts.Color
	if color == "" {
		color = textColor
	}
	r, g, b, ok := parseHexColor(color)
	if !ok {
		r, g, b = 0.1, 0.1, 0.1
	}
	alpha := opts.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	c.dc.SetRGBA(r, g, b, alpha)

	// gg anchors by fraction of the string width; SVG text-anchor maps
	// onto ax 0 / 0.5 / 1 with the baseline at y.
	ax := 0.0
	switch opts.Anchor {
	case AnchorMiddle:
		ax = 0.5
	case AnchorEnd:
		ax = 1.0
	}

	if opts.Rotate != 0 {
		c.dc.Push()
		c.dc.RotateAbout(gg.Radians(-opts.Rotate), x, y)
		c.dc.DrawStringAnchored(s, x, y, ax, 0)
		c.dc.Pop()
		return
	}
	c.dc.DrawStringAnchored(s, x, y, ax, 0)
}

func (c *ggCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// parseHexColor parses #rgb and #rrggbb into unit-range components.
func parseHexColor(s string) (r, g, b float64, ok bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0, false
	}
	hex := s[1:]
	var rr, gg8, bb uint64
	var err error
	switch len(hex) {
	case 3:
		rr, err = strconv.ParseUint(string([]byte{hex[0], hex[0]}), 16, 8)
		if err == nil {
			gg8, err = strconv.ParseUint(string([]byte{hex[1], hex[1]}), 16, 8)
		}
		if err == nil {
			bb, err = strconv.ParseUint(string([]byte{hex[2], hex[2]}), 16, 8)
		}
	case 6:
		rr, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err == nil {
			gg8, err = strconv.ParseUint(hex[2:4], 16, 8)
		}
		if err == nil {
			bb, err = strconv.ParseUint(hex[4:6], 16, 8)
		}
	default:
		return 0, 0, 0, false
	}
	if err != nil {
		return 0, 0, 0, false
	}
	return float64(rr) / 255, float64(gg8) / 255, float64(bb) / 255, true
}

package gantt

import (
	"time"

	"github.com/matzehuels/ganttline/pkg/buildinfo"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/fonts"
	"github.com/matzehuels/ganttline/pkg/plan"
	"github.com/matzehuels/ganttline/pkg/render"
	"github.com/matzehuels/ganttline/pkg/render/route"
)

// Format selects the output image encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Default pixel geometry. All of it can be overridden per render via
// Options; zero values fall back to these.
const (
	defaultRowHeight  = 28.0
	defaultChartWidth = 1000.0
	defaultGutter     = 240.0
	minDayWidth       = 2.0
	maxDayWidth       = 48.0

	titleHeight  = 44.0
	axisHeight   = 64.0
	rightMargin  = 24.0
	labelInset   = 10.0
	indentWidth  = 16.0
	labelSize    = 11.0
	tickSize     = 9.5
	titleSize    = 16.0
	footerSize   = 8.5
	barHeightFr  = 0.6  // bar height as a fraction of the row height
	lozengeHalfX = 0.45 // diamond half-width in days
	lozengeHalfY = 0.33 // diamond half-height in row heights
)

// Options configures a single chart render.
type Options struct {
	// Title drawn centered above the chart. Empty means no title.
	Title string

	// Format of the output image. Defaults to SVG.
	Format Format

	// MinDate and MaxDate clamp the visible window. Nil bounds are
	// derived from the rows and padded by a week.
	MinDate *time.Time
	MaxDate *time.Time

	// ColorOverrides maps category ids to explicit colors, winning over
	// the palette.
	ColorOverrides map[string]string

	// RowHeight, ChartWidth, and GutterWidth override the default pixel
	// geometry when positive.
	RowHeight   float64
	ChartWidth  float64
	GutterWidth float64

	// FontFamily is the SVG font stack. Defaults to a sans stack.
	FontFamily string
}

func (o *Options) fill() {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.RowHeight <= 0 {
		o.RowHeight = defaultRowHeight
	}
	if o.ChartWidth <= 0 {
		o.ChartWidth = defaultChartWidth
	}
	if o.GutterWidth <= 0 {
		o.GutterWidth = defaultGutter
	}
	if o.FontFamily == "" {
		o.FontFamily = fonts.DefaultFamily
	}
}

// Render composes the rows into a chart image. The row list must come
// from a scheduled plan; an empty list is a render error, not a blank
// image.
func Render(rows []render.Row, opts Options) ([]byte, error) {
	opts.fill()

	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeRender, "nothing to render: plan produced no rows")
	}

	windowStart, windowEnd, err := resolveWindow(rows, opts.MinDate, opts.MaxDate)
	if err != nil {
		return nil, err
	}

	spanDays := plan.DaysBetween(windowStart, windowEnd)
	if spanDays < 1 {
		spanDays = 1
	}
	dayWidth := opts.ChartWidth / float64(spanDays)
	if dayWidth < minDayWidth {
		dayWidth = minDayWidth
	}
	if dayWidth > maxDayWidth {
		dayWidth = maxDayWidth
	}

	tl := newTimeline(windowStart, windowEnd, opts.GutterWidth, dayWidth)

	gridTop := titleHeight
	gridBottom := gridTop + float64(len(rows))*opts.RowHeight
	width := opts.GutterWidth + float64(spanDays)*dayWidth + rightMargin
	height := gridBottom + axisHeight

	var canvas Canvas
	switch opts.Format {
	case FormatSVG:
		canvas = newSVGCanvas(width, height, opts.FontFamily)
	case FormatPNG:
		canvas = newGGCanvas(width, height)
	default:
		return nil, errors.New(errors.ErrCodeRender, "unsupported image format %q", opts.Format)
	}

	c := composer{
		canvas:  canvas,
		tl:      tl,
		rows:    rows,
		opts:    opts,
		gridTop: gridTop, gridBottom: gridBottom,
		width: width, height: height,
		colors: categoryColors(rows, opts.ColorOverrides),
	}
	c.draw()
	return canvas.Bytes()
}

// composer holds the resolved geometry for one render pass.
type composer struct {
	canvas              Canvas
	tl                  *timeline
	rows                []render.Row
	opts                Options
	gridTop, gridBottom float64
	width, height       float64
	colors              map[string]string
}

func (c *composer) draw() {
	c.drawGrid()
	c.drawLabels()
	c.drawShapes()
	c.drawArrows()
	c.drawChrome()
}

// rowCenterY is the vertical pixel center of row i; worldY maps the
// router's world y (row index units) onto the same scale.
func (c *composer) rowCenterY(i int) float64 {
	return c.worldY(float64(i))
}

func (c *composer) worldY(y float64) float64 {
	return c.gridTop + (y+0.5)*c.opts.RowHeight
}

func (c *composer) drawGrid() {
	for _, tk := range c.tl.ticks() {
		x := c.tl.xDate(tk.date)
		c.canvas.Line(x, c.gridTop, x, c.gridBottom, gridColor, 0.6, LineDotted)
		c.canvas.Text(x, c.gridBottom+14, tk.label, TextOptions{
			Size:   tickSize,
			Anchor: AnchorEnd,
			Rotate: 30,
		})
	}
	c.canvas.Line(c.opts.GutterWidth, c.gridBottom, c.width-rightMargin, c.gridBottom, gridColor, 1.0, LineSolid)
}

func (c *composer) drawLabels() {
	for i, row := range c.rows {
		x := labelInset + float64(row.Indent)*indentWidth
		y := c.rowCenterY(i) + labelSize*0.35
		c.canvas.Text(x, y, row.Name, TextOptions{
			Size: labelSize,
			Bold: row.Kind == render.KindHeading,
		})
	}
}

func (c *composer) barColor(row render.Row) string {
	if color, ok := c.colors[row.Category]; ok {
		return color
	}
	return defaultBarColor
}

func (c *composer) drawShapes() {
	barH := barHeightFr * c.opts.RowHeight

	for i, row := range c.rows {
		centerY := c.rowCenterY(i)

		switch row.Kind {
		case render.KindBar:
			if row.Start == nil || row.Finish == nil {
				continue
			}
			x0 := c.tl.xDate(*row.Start)
			x1 := c.tl.x(c.tl.days(*row.Finish) + 1)
			c.canvas.FillRect(x0, centerY-barH/2, x1-x0, barH, c.barColor(row), "#333333", 0.8)

		case render.KindLozenge:
			if row.Deadline == nil {
				continue
			}
			cx := c.tl.x(c.tl.days(*row.Deadline) + 0.5)
			hx := lozengeHalfX * c.tl.dayWidth
			hy := lozengeHalfY * c.opts.RowHeight
			c.canvas.FillPolygon([]route.Point{
				{X: cx, Y: centerY - hy},
				{X: cx + hx, Y: centerY},
				{X: cx, Y: centerY + hy},
				{X: cx - hx, Y: centerY},
			}, milestoneColor, "#333333")
			c.canvas.Text(cx, centerY-hy-4, plan.FormatDate(*row.Deadline), TextOptions{
				Size:   tickSize,
				Anchor: AnchorMiddle,
				Alpha:  0.75,
			})

		case render.KindBracket:
			if row.Start == nil || row.Finish == nil {
				continue
			}
			x0 := c.tl.xDate(*row.Start)
			x1 := c.tl.x(c.tl.days(*row.Finish) + 1)
			y := centerY - barH/2
			tick := 0.25 * c.opts.RowHeight
			c.canvas.Line(x0, y, x1, y, defaultBracketColor, 2.0, LineSolid)
			c.canvas.Line(x0, y, x0, y+tick, defaultBracketColor, 2.0, LineSolid)
			c.canvas.Line(x1, y, x1, y+tick, defaultBracketColor, 2.0, LineSolid)
		}
	}
}

// drawArrows routes each dependency in world coordinates (x in days,
// y in row index units), then scales the beveled polyline into pixels.
func (c *composer) drawArrows() {
	bars := make(map[string]route.Rect)
	var obstacles []route.Rect

	for i, row := range c.rows {
		if row.Kind != render.KindBar || row.Start == nil || row.Finish == nil {
			continue
		}
		r := route.Rect{
			XMin: c.tl.days(*row.Start),
			XMax: c.tl.days(*row.Finish) + 1,
			YMin: float64(i) - barHeightFr/2,
			YMax: float64(i) + barHeightFr/2,
		}
		bars[row.ID] = r
		obstacles = append(obstacles, r)
	}

	for _, row := range c.rows {
		succ, ok := bars[row.ID]
		if !ok {
			continue
		}
		for _, dep := range row.DependsOn {
			pred, ok := bars[dep]
			if !ok {
				continue
			}
			world := route.Bevel(route.Route(pred, succ, obstacles), route.DefaultBevel)
			pixels := make([]route.Point, len(world))
			for j, p := range world {
				pixels[j] = route.Point{X: c.tl.x(p.X), Y: c.worldY(p.Y)}
			}
			c.canvas.ArrowPath(pixels, arrowColor, 1.3)
		}
	}
}

func (c *composer) drawChrome() {
	if c.opts.Title != "" {
		c.canvas.Text(c.width/2, titleSize+10, c.opts.Title, TextOptions{
			Size:   titleSize,
			Anchor: AnchorMiddle,
			Bold:   true,
		})
	}
	c.canvas.Text(c.width-rightMargin, c.height-8, "ganttline "+buildinfo.Version, TextOptions{
		Size:   footerSize,
		Anchor: AnchorEnd,
		Alpha:  0.5,
	})
}

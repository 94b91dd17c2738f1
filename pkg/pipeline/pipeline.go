// Package pipeline provides the core chart generation pipeline.
//
// The pipeline implements the complete parse → schedule → render flow
// shared by every entry point, so the CLI and library callers get
// identical behavior.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: load the YAML plan into the plan tree
//  2. Schedule: validate the dependency graph and resolve all dates
//  3. Render: flatten to rows and compose the chart artifact
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "plan.yaml",
//	    Format: pipeline.FormatSVG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifact := result.Artifact
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ganttline/pkg/config"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/plan"
	"github.com/matzehuels/ganttline/pkg/render"
	"github.com/matzehuels/ganttline/pkg/render/gantt"
	"github.com/matzehuels/ganttline/pkg/schedule"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeValidation,
			"invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// Options contains all configuration for the chart pipeline.
type Options struct {
	// Input is the plan file path. Required unless Plan is set.
	Input string

	// Plan bypasses the parse stage when a caller already holds a tree.
	Plan *plan.Plan

	// Format selects the artifact encoding. Defaults to SVG.
	Format string

	// Title overrides the plan's own name in the chart header.
	Title string

	// MinDate and MaxDate clamp the visible window.
	MinDate *time.Time
	MaxDate *time.Time

	// Style carries presentation overrides, usually loaded from a TOML
	// style file.
	Style config.Style

	// Logger for stage progress. Defaults to a discard logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Plan == nil {
		return errors.New(errors.ErrCodeValidation, "input plan file is required")
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the scheduled plan tree.
	Plan *plan.Plan

	// Rows is the flattened render-ready row list.
	Rows []render.Row

	// Artifact is the encoded output in the requested format.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WorkPackages int
	Milestones   int
	Rows         int
	ParseTime    time.Duration
	ScheduleTime time.Duration
	RenderTime   time.Duration
}

// Runner executes the pipeline stages.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{logger: logger}
}

// Execute runs the complete pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1: parse.
	parseStart := time.Now()
	p := opts.Plan
	if p == nil {
		var err error
		p, err = r.Parse(ctx, opts.Input)
		if err != nil {
			return nil, err
		}
	}
	result.Plan = p
	result.Stats.ParseTime = time.Since(parseStart)
	logger.Debug("parsed plan", "name", p.Name, "categories", len(p.Categories), "duration", result.Stats.ParseTime)

	// Stage 2: schedule.
	scheduleStart := time.Now()
	if err := r.Schedule(ctx, p); err != nil {
		return nil, err
	}
	result.Stats.ScheduleTime = time.Since(scheduleStart)
	logger.Debug("scheduled plan", "duration", result.Stats.ScheduleTime)

	// Stage 3: render.
	renderStart := time.Now()
	rows := render.Rows(p)
	result.Rows = rows
	countRows(rows, &result.Stats)

	artifact, err := r.Render(ctx, p, rows, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Debug("rendered chart", "format", opts.Format, "bytes", len(artifact), "duration", result.Stats.RenderTime)

	return result, nil
}

// Parse loads the plan file.
func (r *Runner) Parse(ctx context.Context, path string) (*plan.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "pipeline cancelled")
	}
	return plan.Load(path)
}

// Schedule validates the plan and resolves every date in place.
func (r *Runner) Schedule(ctx context.Context, p *plan.Plan) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "pipeline cancelled")
	}
	return schedule.Schedule(p)
}

// Render encodes the rows in the requested format.
func (r *Runner) Render(ctx context.Context, p *plan.Plan, rows []render.Row, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "pipeline cancelled")
	}

	if opts.Format == FormatJSON {
		return render.MarshalRows(rows)
	}

	title := opts.Title
	if title == "" {
		title = p.Name
	}
	return gantt.Render(rows, gantt.Options{
		Title:          title,
		Format:         gantt.Format(opts.Format),
		MinDate:        opts.MinDate,
		MaxDate:        opts.MaxDate,
		ColorOverrides: opts.Style.Colors,
		RowHeight:      opts.Style.RowHeight,
		ChartWidth:     opts.Style.ChartWidth,
		GutterWidth:    opts.Style.GutterWidth,
		FontFamily:     opts.Style.FontFamily,
	})
}

func countRows(rows []render.Row, stats *Stats) {
	stats.Rows = len(rows)
	for _, row := range rows {
		switch row.Kind {
		case render.KindBar:
			stats.WorkPackages++
		case render.KindLozenge:
			stats.Milestones++
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/config"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/plan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path ("-" for stdout), or base path for multiple formats
	format  string // comma-separated output formats: "svg", "png", "json"
	title   string // chart title override
	minDate string // explicit window start (YYYY-MM-DD)
	maxDate string // explicit window end (YYYY-MM-DD)
	year    int    // shorthand for a full calendar-year window
	styleTo string // style config path (TOML)
	view    bool   // open the rendered chart when done
}

// newRenderCmd creates the render command for generating charts.
//
// Default settings:
//   - format: svg (or inferred from the --out extension)
//   - output: input file name with the format extension
//   - window: derived from the plan, padded by a week on each side
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Schedule a plan and render it as a Gantt chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default: input name with format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title (default: the plan's name)")
	cmd.Flags().StringVar(&opts.minDate, "min-date", "", "clamp the chart window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.maxDate, "max-date", "", "clamp the chart window end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "show a full calendar year (shorthand for min/max date)")
	cmd.Flags().StringVarP(&opts.styleTo, "config", "c", "", "style config file (TOML)")
	cmd.Flags().BoolVar(&opts.view, "view", false, "open the rendered chart when done")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

	pipeOpts, formats, err := buildPipelineOpts(input, opts)
	if err != nil {
		return err
	}
	pipeOpts.Logger = logger

	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	logger.Debugf("Scheduled %d work packages, %d milestones", result.Stats.WorkPackages, result.Stats.Milestones)

	if len(formats) == 1 {
		outputPath := opts.output
		if outputPath == "" {
			outputPath = basePath("", input) + "." + formats[0]
		}
		if err := writeArtifact(result.Artifact, outputPath); err != nil {
			return err
		}
		if outputPath == "-" {
			prog.done(fmt.Sprintf("Rendered %d rows", result.Stats.Rows))
			return nil
		}
		prog.done(fmt.Sprintf("Generated %s (%d rows)", outputPath, result.Stats.Rows))
		return viewOutput(logger, outputPath, formats[0], opts.view)
	}

	// Multiple formats: parse and schedule once, render per format.
	base := basePath(opts.output, input)
	var firstChart string
	for i, format := range formats {
		artifact := result.Artifact
		if i > 0 {
			pipeOpts.Format = format
			artifact, err = runner.Render(ctx, result.Plan, result.Rows, pipeOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
		}
		path := base + "." + format
		if err := writeArtifact(artifact, path); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
		if firstChart == "" && format != pipeline.FormatJSON {
			firstChart = path
		}
	}
	prog.done(fmt.Sprintf("Generated %d files (%d rows)", len(formats), result.Stats.Rows))
	return viewOutput(logger, firstChart, "", opts.view)
}

func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "opening output %s", path)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "writing output %s", path)
	}
	return nil
}

func viewOutput(logger *log.Logger, path, format string, view bool) error {
	if !view || path == "" || path == "-" || format == pipeline.FormatJSON {
		return nil
	}
	logger.Debugf("Opening %s", path)
	if err := browser.OpenFile(path); err != nil {
		logger.Warnf("Could not open %s: %v", path, err)
	}
	return nil
}

// buildPipelineOpts translates flags into pipeline options plus the
// resolved format list. The pipeline runs with the first format; the
// caller re-renders for any additional ones.
func buildPipelineOpts(input string, opts *renderOpts) (pipeline.Options, []string, error) {
	formats := parseFormats(opts.format, opts.output)
	for _, format := range formats {
		if err := pipeline.ValidateFormat(format); err != nil {
			return pipeline.Options{}, nil, err
		}
	}

	minDate, maxDate, err := resolveWindowFlags(opts)
	if err != nil {
		return pipeline.Options{}, nil, err
	}

	style := config.Default()
	if opts.styleTo != "" {
		style, err = config.Load(opts.styleTo)
		if err != nil {
			return pipeline.Options{}, nil, err
		}
	}

	return pipeline.Options{
		Input:   input,
		Format:  formats[0],
		Title:   opts.title,
		MinDate: minDate,
		MaxDate: maxDate,
		Style:   style,
	}, formats, nil
}

// parseFormats resolves the --format flag: explicit formats win, then
// the --out extension, then the SVG default.
func parseFormats(flag, output string) []string {
	if flag != "" {
		parts := strings.Split(flag, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	if inferred := formatFromPath(output); inferred != "" {
		return []string{inferred}
	}
	return []string{pipeline.FormatSVG}
}

// resolveWindowFlags merges --year with the explicit bounds. The
// explicit flags win over the year shorthand on their side.
func resolveWindowFlags(opts *renderOpts) (*time.Time, *time.Time, error) {
	var minDate, maxDate *time.Time

	if opts.year != 0 {
		lo := time.Date(opts.year, time.January, 1, 0, 0, 0, 0, time.UTC)
		hi := time.Date(opts.year, time.December, 31, 0, 0, 0, 0, time.UTC)
		minDate, maxDate = &lo, &hi
	}
	if opts.minDate != "" {
		t, err := plan.ParseDate(opts.minDate)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeValidation, err, "invalid --min-date")
		}
		minDate = &t
	}
	if opts.maxDate != "" {
		t, err := plan.ParseDate(opts.maxDate)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeValidation, err, "invalid --max-date")
		}
		maxDate = &t
	}
	return minDate, maxDate, nil
}

// formatFromPath infers the output format from a file extension.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return ""
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input; if it
// carries a known format extension, that is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method, making
// os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// "-" means os.Stdout; anything else is created, overwriting.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// Package config loads optional chart style configuration.
//
// Style lives in a TOML file and only affects presentation: pixel
// geometry, fonts, and category color overrides. Scheduling behavior is
// never configurable here; anything that changes dates belongs in the
// plan file itself.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// Style holds presentation overrides for the chart composer. Zero
// values mean "use the renderer default".
type Style struct {
	// Chart geometry, in pixels.
	RowHeight   float64 `toml:"row_height"`
	ChartWidth  float64 `toml:"chart_width"`
	GutterWidth float64 `toml:"gutter_width"`

	// FontFamily is the font stack used by the SVG output.
	FontFamily string `toml:"font_family"`

	// Colors maps category ids to explicit hex colors, overriding the
	// automatic palette assignment.
	Colors map[string]string `toml:"colors"`
}

// Default returns an empty style: every field defers to the renderer.
func Default() Style {
	return Style{}
}

// Load reads a style file. A missing path is an error; callers that
// treat the style file as optional should check existence first.
func Load(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Style{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "style config %s not found", path)
		}
		return Style{}, errors.Wrap(errors.ErrCodeParse, err, "reading style config %s", path)
	}
	return Parse(data, path)
}

// Parse decodes TOML style data. Unknown keys are rejected so typos in
// a style file fail loudly instead of silently rendering defaults.
func Parse(data []byte, path string) (Style, error) {
	var style Style
	meta, err := toml.Decode(string(data), &style)
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeParse, err, "parsing style config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Style{}, errors.New(errors.ErrCodeParse,
			"style config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := style.validate(path); err != nil {
		return Style{}, err
	}
	return style, nil
}

func (s Style) validate(path string) error {
	if s.RowHeight < 0 || s.ChartWidth < 0 || s.GutterWidth < 0 {
		return errors.New(errors.ErrCodeValidation,
			"style config %s: geometry values must be non-negative", path)
	}
	for id, color := range s.Colors {
		if len(color) == 0 || color[0] != '#' {
			return errors.New(errors.ErrCodeValidation,
				"style config %s: color for %q must be a #hex value, got %q", path, id, color)
		}
	}
	return nil
}

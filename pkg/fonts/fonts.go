// Package fonts resolves fonts for chart rendering.
//
// The raster canvas needs a real TTF file on disk; this package probes
// a short list of widely installed sans fonts via go-findfont and
// returns the first hit. The SVG output only needs a CSS font stack,
// which DefaultFamily provides.
package fonts

import (
	"sync"

	"github.com/flopp/go-findfont"
)

// DefaultFamily is the CSS font stack used by SVG output.
const DefaultFamily = "Helvetica, Arial, sans-serif"

// Candidate font files probed in order. The first one present on the
// system wins.
var regularCandidates = []string{
	"DejaVuSans.ttf",
	"Arial.ttf",
	"LiberationSans-Regular.ttf",
	"Helvetica.ttf",
}

var boldCandidates = []string{
	"DejaVuSans-Bold.ttf",
	"Arial-Bold.ttf",
	"LiberationSans-Bold.ttf",
	"Helvetica-Bold.ttf",
}

var (
	resolveOnce sync.Once
	regularPath string
	boldPath    string
)

// Regular returns the path of an installed regular-weight sans font, or
// "" when none of the candidates exist. The probe runs once per
// process.
func Regular() string {
	resolve()
	return regularPath
}

// Bold returns the path of an installed bold sans font, falling back to
// the regular weight, or "" when nothing is installed.
func Bold() string {
	resolve()
	return boldPath
}

func resolve() {
	resolveOnce.Do(func() {
		regularPath = first(regularCandidates)
		boldPath = first(boldCandidates)
		if boldPath == "" {
			boldPath = regularPath
		}
	})
}

func first(names []string) string {
	for _, name := range names {
		if path, err := findfont.Find(name); err == nil {
			return path
		}
	}
	return ""
}

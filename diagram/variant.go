// ABOUTME: Diagram variants, their export configs, and the Build entry point.
// ABOUTME: Each variant is one builder function sharing the layout helpers in helpers.go.
package diagram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2389-research/fishbone/figure"
	"github.com/2389-research/fishbone/model"
)

// ErrUnknownVariant is returned for variant names that have no builder.
var ErrUnknownVariant = errors.New("unknown variant")

// Variant names a diagram layout. The string value is the CLI name.
type Variant string

const (
	Basic       Variant = "basic"
	Detailed    Variant = "detailed"
	Static      Variant = "static"
	Ultra       Variant = "ultra"
	Interactive Variant = "interactive"
)

var variantDescriptions = map[Variant]string{
	Basic:       "Basic fishbone with a legend and hover details",
	Detailed:    "One sub-branch and point per capability",
	Static:      "Every capability printed on the chart, draggable reference lines",
	Ultra:       "Ultra-clean overview with full capability boxes and reference lines",
	Interactive: "Compact chart embedded in the checkbox tracking page",
}

// Variants returns every variant in display order.
func Variants() []Variant {
	return []Variant{Basic, Detailed, Static, Ultra, Interactive}
}

// Description is a one-line summary for --list output.
func (v Variant) Description() string { return variantDescriptions[v] }

func (v Variant) String() string { return string(v) }

// ParseVariant resolves a CLI name to a Variant.
func ParseVariant(s string) (Variant, error) {
	name := Variant(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := variantDescriptions[name]; ok {
		return name, nil
	}
	names := make([]string, 0, len(variantDescriptions))
	for _, v := range Variants() {
		names = append(names, string(v))
	}
	return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownVariant, s, strings.Join(names, ", "))
}

// ReferenceLines positions the "industry" and "organization" marker lines.
// Positions are in level units: 0 is the first level, 1.5 is halfway between
// the second and third. They are clamped to the levels the model defines.
type ReferenceLines struct {
	Industry     float64
	Organization float64
	Editable     bool
}

// Options tunes a build beyond the locale defaults.
type Options struct {
	Reference ReferenceLines
}

// DefaultOptions returns the options a locale ships with.
func DefaultOptions(l *Locale) Options {
	return Options{Reference: l.Reference}
}

// imageSize is the PNG download size per variant, matching each layout's canvas.
var imageSize = map[Variant][2]int{
	Basic:       {1200, 800},
	Detailed:    {1400, 1000},
	Static:      {1600, 1000},
	Ultra:       {1900, 1200},
	Interactive: {1200, 800},
}

// Config returns the Plotly config used when exporting the variant.
func (v Variant) Config(l *Locale) figure.Config {
	size := imageSize[v]
	cfg := figure.Config{
		Responsive: true,
		ToImageButtonOptions: &figure.ImageOptions{
			Format:   "png",
			Filename: strings.TrimSuffix(l.Filename(v), ".html"),
			Width:    size[0],
			Height:   size[1],
			Scale:    1,
		},
	}
	switch v {
	case Static:
		cfg.Editable = l.Reference.Editable
	case Ultra, Interactive:
		cfg.Editable = v == Ultra && l.Reference.Editable
		cfg.DisplayModeBar = figure.Bool(true)
		cfg.DisplayLogo = figure.Bool(false)
		cfg.ModeBarButtonsToRemove = []string{"select2d", "lasso2d", "editInChartStudio"}
	}
	return cfg
}

type builder func(m *model.Model, l *Locale, opts Options) *figure.Figure

var builders = map[Variant]builder{
	Basic:       buildBasic,
	Detailed:    buildDetailed,
	Static:      buildStatic,
	Ultra:       buildUltra,
	Interactive: buildInteractive,
}

// Build lays out the model as the given variant using the locale's defaults.
func Build(v Variant, m *model.Model, l *Locale) (*figure.Figure, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: nil locale", ErrUnknownLocale)
	}
	return BuildWithOptions(v, m, l, DefaultOptions(l))
}

// BuildWithOptions is Build with explicit options.
func BuildWithOptions(v Variant, m *model.Model, l *Locale, opts Options) (*figure.Figure, error) {
	b, ok := builders[v]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, v)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: nil locale", ErrUnknownLocale)
	}
	if m == nil || m.Levels.Len() == 0 {
		return nil, model.ErrNoLevels
	}
	return b(m, l, opts), nil
}

// Package pipeline turns a dataset and a set of [Options] into rendered
// figures. The CLI and the HTTP API both go through it, so they share
// defaults, validation and caching.
//
// A run has two stages. [Layout] validates the input and builds a
// [marginal.Figure]; [Render] encodes that figure once per requested format
// (raster and vector images, the JSON layout document, the DOT region
// graph). [Runner] chains both stages behind a cache:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, ds, pipeline.Options{
//	    Title:   "Study Hours vs Exam Scores",
//	    Formats: []string{"png", "svg"},
//	})
//	png := res.Artifacts["png"]
package pipeline

import (
	"cmp"
	"fmt"
	"image/color"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/margins/pkg/cache"
	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/errors"
	"github.com/matzehuels/margins/pkg/marginal"
	"github.com/matzehuels/margins/pkg/render"
)

// Defaults applied to zero-valued options, and the limits enforced on
// caller-supplied ones.
const (
	DefaultWidth  = 10.0 // inches
	DefaultHeight = 8.0  // inches
	DefaultBins   = marginal.DefaultBins
	DefaultMargin = marginal.DefaultMargin
	DefaultDPI    = render.DefaultDPI

	MaxBins   = 1000
	MaxDPI    = 600
	MaxWidth  = 100.0 // inches
	MaxHeight = 100.0 // inches
)

// Artifact formats. The image formats come from pkg/render.
const (
	FormatPNG  = render.PNG
	FormatJPEG = render.JPEG
	FormatTIFF = render.TIFF
	FormatSVG  = render.SVG
	FormatPDF  = render.PDF
	FormatJSON = "json" // layout document
	FormatDOT  = "dot"  // region graph
)

// ValidFormats holds every accepted format name, lowercase.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatTIFF: true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Options configures one pipeline run. API requests carry it as JSON and
// the CLI config file as the TOML [render] table. Zero values mean the
// package defaults; Margin is a pointer so an explicit 0 survives.
type Options struct {
	XLabel      string   `json:"x_label,omitempty" toml:"x_label"`
	YLabel      string   `json:"y_label,omitempty" toml:"y_label"`
	Title       string   `json:"title,omitempty" toml:"title"`
	Width       float64  `json:"width,omitempty" toml:"width"`   // inches
	Height      float64  `json:"height,omitempty" toml:"height"` // inches
	Bins        int      `json:"bins,omitempty" toml:"bins"`
	Margin      *float64 `json:"margin,omitempty" toml:"margin"`
	Correlation bool     `json:"correlation,omitempty" toml:"correlation"` // append "(Correlation: r)" to the title

	// Palette, as hex colors ("#1f77b4")
	ScatterColor   string `json:"scatter_color,omitempty" toml:"scatter_color"`
	XMarginalColor string `json:"x_marginal_color,omitempty" toml:"x_marginal_color"`
	YMarginalColor string `json:"y_marginal_color,omitempty" toml:"y_marginal_color"`
	EdgeColor      string `json:"edge_color,omitempty" toml:"edge_color"`

	Formats []string `json:"formats,omitempty" toml:"formats"`
	DPI     int      `json:"dpi,omitempty" toml:"dpi"`
	Refresh bool     `json:"refresh,omitempty" toml:"-"`

	Logger *log.Logger `json:"-" toml:"-"`

	validated bool
}

// Result is what [Runner.Execute] produced.
type Result struct {
	Figure      *marginal.Figure
	DatasetHash string            // see [DatasetHash]
	Artifacts   map[string][]byte // by format
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats describes the input and timing of one [Runner.Execute] call.
// RenderTime covers cache lookups as well as encoding.
type Stats struct {
	Samples     int
	Correlation float64
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo reports whether every requested artifact came from the cache.
type CacheInfo struct {
	RenderHit bool
}

// ValidateFormat rejects format names outside [ValidFormats]. Matching is
// case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(SortedFormats(), ", "))
	}
	return nil
}

// ValidateFormats reports the first invalid format.
func ValidateFormats(formats []string) error {
	if i := slices.IndexFunc(formats, func(f string) bool { return !ValidFormats[f] }); i >= 0 {
		return ValidateFormat(formats[i])
	}
	return nil
}

// SortedFormats returns the keys of [ValidFormats] in order.
func SortedFormats() []string {
	return slices.Sorted(maps.Keys(ValidFormats))
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseColor parses a "#rgb" or "#rrggbb" hex color. An empty string
// returns nil, meaning the palette default.
func ParseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	if !hexColorRe.MatchString(s) {
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	return c, nil
}

// ValidateAndSetDefaults fills zero options with defaults and validates
// them all. Later calls return nil without checking again.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills the zero layout options.
func (o *Options) SetLayoutDefaults() {
	o.Width = cmp.Or(o.Width, DefaultWidth)
	o.Height = cmp.Or(o.Height, DefaultHeight)
	o.Bins = cmp.Or(o.Bins, DefaultBins)
	if o.Margin == nil {
		m := DefaultMargin
		o.Margin = &m
	}
	o.setLogger()
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout fills the layout defaults and checks the bin and size
// limits and the palette. Figure-level checks (positive size, labels) are left to marginal.Render;
// this only rejects what the pipeline adds on top.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Bins > MaxBins {
		return errors.New(errors.ErrCodeValidation, "bins must be <= %d, got %d", MaxBins, o.Bins)
	}
	if o.Width > MaxWidth || o.Height > MaxHeight {
		return errors.New(errors.ErrCodeValidation, "figure size must be at most %vx%v in, got %vx%v", MaxWidth, MaxHeight, o.Width, o.Height)
	}
	for _, c := range []string{o.ScatterColor, o.XMarginalColor, o.YMarginalColor, o.EdgeColor} {
		if _, err := ParseColor(c); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults fills the zero render options; no formats means PNG.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	o.DPI = cmp.Or(o.DPI, DefaultDPI)
	o.setLogger()
}

// ValidateForRender fills the render defaults and checks DPI and formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.DPI < 1 || o.DPI > MaxDPI {
		return errors.New(errors.ErrCodeValidation, "dpi must be in [1, %d], got %d", MaxDPI, o.DPI)
	}
	return ValidateFormats(o.Formats)
}

// Config translates the options into a marginal.Config for ds. Empty labels
// fall back to the dataset's column names and then to the marginal defaults.
func (o *Options) Config(ds *dataset.Dataset) (marginal.Config, error) {
	o.SetLayoutDefaults()
	cfg := marginal.DefaultConfig()

	cfg.XLabel = cmp.Or(o.XLabel, ds.XLabel, cfg.XLabel)
	cfg.YLabel = cmp.Or(o.YLabel, ds.YLabel, cfg.YLabel)
	cfg.Title = cmp.Or(o.Title, cfg.Title)
	if o.Correlation && len(ds.X) == len(ds.Y) {
		cfg.Title = fmt.Sprintf("%s (Correlation: %.2f)", cfg.Title, dataset.Correlation(ds.X, ds.Y))
	}
	cfg.FigSize = marginal.FigSize{Width: o.Width, Height: o.Height}
	cfg.HistogramBins = o.Bins
	cfg.Margin = *o.Margin

	colors := []struct {
		hex string
		dst *color.Color
	}{
		{o.ScatterColor, &cfg.Palette.Scatter},
		{o.XMarginalColor, &cfg.Palette.XMarginal},
		{o.YMarginalColor, &cfg.Palette.YMarginal},
		{o.EdgeColor, &cfg.Palette.Edge},
	}
	for _, c := range colors {
		clr, err := ParseColor(c.hex)
		if err != nil {
			return cfg, err
		}
		if clr != nil {
			*c.dst = clr
		}
	}
	return cfg, nil
}

// LayoutKeyOpts returns cache key options for the layout built from cfg.
func (o *Options) LayoutKeyOpts(cfg marginal.Config) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		XLabel:      cfg.XLabel,
		YLabel:      cfg.YLabel,
		Title:       cfg.Title,
		Width:       cfg.FigSize.Width,
		Height:      cfg.FigSize.Height,
		Bins:        cfg.HistogramBins,
		Margin:      cfg.Margin,
		Correlation: o.Correlation,
		Palette:     [4]string{o.ScatterColor, o.XMarginalColor, o.YMarginalColor, o.EdgeColor},
		Ratios: [4]float64{
			cfg.Layout.WidthRatios[0], cfg.Layout.WidthRatios[1],
			cfg.Layout.HeightRatios[0], cfg.Layout.HeightRatios[1],
		},
	}
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, DPI: o.DPI}
}

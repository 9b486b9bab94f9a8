package marginal

import (
	"image/color"
	"math"

	"github.com/matzehuels/margins/pkg/errors"
)

const (
	// DefaultBins is the histogram bin count used by both marginals.
	DefaultBins = 20

	// DefaultMargin pads each data domain by this fraction of its span.
	DefaultMargin = 0.05

	// DefaultAlpha is the opacity of scatter points and histogram bars.
	DefaultAlpha = 0.7

	// DefaultEdgeWidth is the outline width of points and bars, in points.
	DefaultEdgeWidth = 0.5

	// DefaultPointRadius is the scatter point radius, in points.
	DefaultPointRadius = 3.0

	// DefaultSpacing is the gap between grid cells as a fraction of the
	// average cell size.
	DefaultSpacing = 0.1
)

// FigSize is a figure size in inches.
type FigSize struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// LayoutSpec describes how the figure is split into regions.
//
// WidthRatios is (main, marginal) and HeightRatios is (marginal, main), so
// the defaults 3:1 and 1:3 give the scatter three quarters of the area in
// both directions. Left, Right, Bottom and Top bound the grid as fractions of
// the figure, measured from the bottom-left corner.
type LayoutSpec struct {
	WidthRatios  [2]float64 `json:"width_ratios" bson:"width_ratios"`
	HeightRatios [2]float64 `json:"height_ratios" bson:"height_ratios"`
	WSpace       float64    `json:"wspace" bson:"wspace"`
	HSpace       float64    `json:"hspace" bson:"hspace"`
	Left         float64    `json:"left" bson:"left"`
	Right        float64    `json:"right" bson:"right"`
	Bottom       float64    `json:"bottom" bson:"bottom"`
	Top          float64    `json:"top" bson:"top"`
}

// DefaultLayoutSpec returns the 3:1 / 1:3 grid with small gaps.
func DefaultLayoutSpec() LayoutSpec {
	return LayoutSpec{
		WidthRatios:  [2]float64{3, 1},
		HeightRatios: [2]float64{1, 3},
		WSpace:       DefaultSpacing,
		HSpace:       DefaultSpacing,
		Left:         0.125,
		Right:        0.9,
		Bottom:       0.11,
		Top:          0.88,
	}
}

func (s LayoutSpec) isZero() bool {
	return s == LayoutSpec{}
}

// Validate checks the ratio, spacing and margin invariants.
func (s LayoutSpec) Validate() error {
	for _, r := range append(s.WidthRatios[:], s.HeightRatios[:]...) {
		if !(r > 0) || math.IsInf(r, 0) {
			return errors.New(errors.ErrCodeValidation, "layout ratios must be positive and finite, got %v / %v", s.WidthRatios, s.HeightRatios)
		}
	}
	if !(s.WSpace >= 0) || !(s.HSpace >= 0) || math.IsInf(s.WSpace, 0) || math.IsInf(s.HSpace, 0) {
		return errors.New(errors.ErrCodeValidation, "layout spacing must be >= 0, got wspace=%v hspace=%v", s.WSpace, s.HSpace)
	}
	if !(0 <= s.Left && s.Left < s.Right && s.Right <= 1) {
		return errors.New(errors.ErrCodeValidation, "layout needs 0 <= left < right <= 1, got left=%v right=%v", s.Left, s.Right)
	}
	if !(0 <= s.Bottom && s.Bottom < s.Top && s.Top <= 1) {
		return errors.New(errors.ErrCodeValidation, "layout needs 0 <= bottom < top <= 1, got bottom=%v top=%v", s.Bottom, s.Top)
	}
	return nil
}

// Palette holds the fixed colours of the three regions. It is not a colour
// map: every point shares one colour and every bar of a marginal shares one.
type Palette struct {
	Scatter   color.Color
	XMarginal color.Color
	YMarginal color.Color
	Edge      color.Color
}

// DefaultPalette returns blue points with sky-blue and light-green marginals,
// all outlined in black.
func DefaultPalette() Palette {
	return Palette{
		Scatter:   color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		XMarginal: color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff},
		YMarginal: color.RGBA{R: 0x90, G: 0xee, B: 0x90, A: 0xff},
		Edge:      color.Black,
	}
}

// withDefaults fills unset palette entries.
func (p Palette) withDefaults() Palette {
	d := DefaultPalette()
	if p.Scatter == nil {
		p.Scatter = d.Scatter
	}
	if p.XMarginal == nil {
		p.XMarginal = d.XMarginal
	}
	if p.YMarginal == nil {
		p.YMarginal = d.YMarginal
	}
	if p.Edge == nil {
		p.Edge = d.Edge
	}
	return p
}

// Config is the full set of recognized render options.
//
// Start from [DefaultConfig] and override fields. FigSize and HistogramBins
// are validated strictly; a zero Layout means [DefaultLayoutSpec] and unset
// Palette entries fall back to [DefaultPalette].
type Config struct {
	XLabel        string
	YLabel        string
	Title         string
	FigSize       FigSize
	HistogramBins int
	Layout        LayoutSpec
	Palette       Palette

	// Margin pads data domains by this fraction of their span. Zero means
	// the outermost samples sit on the region frame.
	Margin float64
}

// DefaultConfig returns the defaults of the plain scatter-with-marginals
// figure: generic axis labels, a 10×8 inch figure and 20 bins.
func DefaultConfig() Config {
	return Config{
		XLabel:        "X Axis",
		YLabel:        "Y Axis",
		Title:         "Scatter Plot with Marginal Distributions",
		FigSize:       FigSize{Width: 10, Height: 8},
		HistogramBins: DefaultBins,
		Layout:        DefaultLayoutSpec(),
		Palette:       DefaultPalette(),
		Margin:        DefaultMargin,
	}
}

// normalize validates c and returns a copy with defaults applied.
func (c Config) normalize() (Config, error) {
	if err := errors.ValidateFigSize(c.FigSize.Width, c.FigSize.Height); err != nil {
		return c, err
	}
	if err := errors.ValidateBins(c.HistogramBins); err != nil {
		return c, err
	}
	for _, l := range []struct{ field, value string }{
		{"x label", c.XLabel}, {"y label", c.YLabel}, {"title", c.Title},
	} {
		if err := errors.ValidateLabel(l.field, l.value); err != nil {
			return c, err
		}
	}
	if !(c.Margin >= 0) || math.IsInf(c.Margin, 0) {
		return c, errors.New(errors.ErrCodeValidation, "margin must be >= 0, got %v", c.Margin)
	}
	if c.Layout.isZero() {
		c.Layout = DefaultLayoutSpec()
	}
	if err := c.Layout.Validate(); err != nil {
		return c, err
	}
	c.Palette = c.Palette.withDefaults()
	return c, nil
}

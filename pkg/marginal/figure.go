package marginal

import (
	"image/color"

	"github.com/matzehuels/margins/pkg/errors"
)

// RegionKind identifies one of the three plot regions.
type RegionKind int

const (
	// MainScatter is the bottom-left scatter region.
	MainScatter RegionKind = iota
	// TopMarginal is the top-left histogram of x.
	TopMarginal
	// RightMarginal is the bottom-right histogram of y.
	RightMarginal
)

// String returns the region name used in layout documents and logs.
func (k RegionKind) String() string {
	switch k {
	case MainScatter:
		return "main"
	case TopMarginal:
		return "top"
	case RightMarginal:
		return "right"
	default:
		return "unknown"
	}
}

// Side is the edge of a region an axis' ticks are drawn on.
type Side int

const (
	SideBottom Side = iota
	SideTop
	SideLeft
	SideRight
)

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case SideBottom:
		return "bottom"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Axis describes how one axis of a region is decorated.
type Axis struct {
	Label          string
	Side           Side
	ShowTickLabels bool
}

// Point is one plotted sample.
type Point struct {
	X, Y float64
}

// MarkStyle is the fill and outline of points or bars.
type MarkStyle struct {
	Fill      color.Color
	Edge      color.Color
	Alpha     float64
	EdgeWidth float64 // points
	Radius    float64 // points; scatter only
}

// Region is one cell of the figure with its content and decorations.
type Region struct {
	Kind  RegionKind
	Box   Rect
	Title string
	XAxis Axis
	YAxis Axis
	Style MarkStyle

	// Points is set on MainScatter only.
	Points []Point
	// Histogram is set on the marginals only.
	Histogram *Histogram

	x, y *Scale
}

// XDomain returns the horizontal data domain.
func (r *Region) XDomain() Domain { return r.x.Domain() }

// YDomain returns the vertical data domain.
func (r *Region) YDomain() Domain { return r.y.Domain() }

// XScale returns the horizontal scale.
func (r *Region) XScale() *Scale { return r.x }

// YScale returns the vertical scale.
func (r *Region) YScale() *Scale { return r.y }

// SharesX reports whether r and o use the same horizontal scale.
func (r *Region) SharesX(o *Region) bool { return o != nil && r.x == o.x }

// SharesY reports whether r and o use the same vertical scale.
func (r *Region) SharesY(o *Region) bool { return o != nil && r.y == o.y }

// Figure is a composed scatter-with-marginals figure. It is built fresh by
// [Render] and owned by the caller; nothing in it is shared with other
// figures.
type Figure struct {
	Size   FigSize
	Layout LayoutSpec

	regions [3]*Region
}

// Regions returns the regions in the order MainScatter, TopMarginal,
// RightMarginal.
func (f *Figure) Regions() []*Region {
	return f.regions[:]
}

// Region returns the region of the given kind, or nil for an unknown kind.
func (f *Figure) Region(k RegionKind) *Region {
	if k < MainScatter || k > RightMarginal {
		return nil
	}
	return f.regions[k]
}

// Width returns the figure width in inches.
func (f *Figure) Width() float64 { return f.Size.Width }

// Height returns the figure height in inches.
func (f *Figure) Height() float64 { return f.Size.Height }

// Title returns the figure title, carried by the top marginal.
func (f *Figure) Title() string {
	return f.regions[TopMarginal].Title
}

// Render validates x, y and cfg and builds the three-region figure.
//
// x and y must be non-empty, of equal length and finite, and their padded
// ranges must fit in a float64. The returned figure
// always holds exactly three regions; TopMarginal shares its x scale and
// RightMarginal its y scale with MainScatter.
func Render(x, y []float64, cfg Config) (*Figure, error) {
	if err := errors.ValidateSamples(x, y); err != nil {
		return nil, err
	}
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	grid := cfg.Layout.Cells()
	xRange, yRange := dataRange(x), dataRange(y)
	if err := checkRange("x", xRange, cfg.Margin); err != nil {
		return nil, err
	}
	if err := checkRange("y", yRange, cfg.Margin); err != nil {
		return nil, err
	}
	xs := newScale(xRange.pad(cfg.Margin))
	ys := newScale(yRange.pad(cfg.Margin))

	main := &Region{
		Kind:   MainScatter,
		Box:    grid[1][0],
		XAxis:  Axis{Label: cfg.XLabel, Side: SideBottom, ShowTickLabels: true},
		YAxis:  Axis{Label: cfg.YLabel, Side: SideLeft, ShowTickLabels: true},
		Style:  pointStyle(cfg.Palette.Scatter, cfg.Palette.Edge),
		Points: make([]Point, len(x)),
		x:      xs,
		y:      ys,
	}
	for i := range x {
		main.Points[i] = Point{X: x[i], Y: y[i]}
	}

	xHist := newHistogram(x, xRange, HistogramConfig{Bins: cfg.HistogramBins, Orientation: Vertical})
	top := &Region{
		Kind:      TopMarginal,
		Box:       grid[0][0],
		Title:     cfg.Title,
		XAxis:     Axis{Side: SideBottom, ShowTickLabels: false},
		YAxis:     Axis{Side: SideRight, ShowTickLabels: true},
		Style:     barStyle(cfg.Palette.XMarginal, cfg.Palette.Edge),
		Histogram: xHist,
		x:         xs,
		y:         newScale(countDomain(xHist.MaxCount(), cfg.Margin)),
	}

	yHist := newHistogram(y, yRange, HistogramConfig{Bins: cfg.HistogramBins, Orientation: Horizontal})
	right := &Region{
		Kind:      RightMarginal,
		Box:       grid[1][1],
		XAxis:     Axis{Side: SideTop, ShowTickLabels: true},
		YAxis:     Axis{Side: SideLeft, ShowTickLabels: false},
		Style:     barStyle(cfg.Palette.YMarginal, cfg.Palette.Edge),
		Histogram: yHist,
		x:         newScale(countDomain(yHist.MaxCount(), cfg.Margin)),
		y:         ys,
	}

	return &Figure{
		Size:    cfg.FigSize,
		Layout:  cfg.Layout,
		regions: [3]*Region{main, top, right},
	}, nil
}

func pointStyle(fill, edge color.Color) MarkStyle {
	return MarkStyle{
		Fill:      fill,
		Edge:      edge,
		Alpha:     DefaultAlpha,
		EdgeWidth: DefaultEdgeWidth,
		Radius:    DefaultPointRadius,
	}
}

func barStyle(fill, edge color.Color) MarkStyle {
	return MarkStyle{
		Fill:      fill,
		Edge:      edge,
		Alpha:     DefaultAlpha,
		EdgeWidth: DefaultEdgeWidth,
	}
}

package marginal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/margins/pkg/errors"
)

func linear() (x, y []float64) {
	return []float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10}
}

func TestRenderThreeRegions(t *testing.T) {
	x, y := linear()
	fig, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	regions := fig.Regions()
	if len(regions) != 3 {
		t.Fatalf("len(Regions()) = %d, want 3", len(regions))
	}
	want := []RegionKind{MainScatter, TopMarginal, RightMarginal}
	for i, r := range regions {
		if r.Kind != want[i] {
			t.Errorf("Regions()[%d].Kind = %v, want %v", i, r.Kind, want[i])
		}
		if fig.Region(r.Kind) != r {
			t.Errorf("Region(%v) does not return the same region", r.Kind)
		}
	}
	if fig.Region(RegionKind(7)) != nil {
		t.Error("Region(unknown) should be nil")
	}
	if fig.Width() != 10 || fig.Height() != 8 {
		t.Errorf("size = %vx%v, want 10x8", fig.Width(), fig.Height())
	}
}

func TestRenderCounts(t *testing.T) {
	x, y := linear()
	fig, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if n := len(fig.Region(MainScatter).Points); n != 5 {
		t.Errorf("main points = %d, want 5", n)
	}
	if got := fig.Region(TopMarginal).Histogram.Total(); got != 5 {
		t.Errorf("top histogram total = %v, want 5", got)
	}
	if got := fig.Region(RightMarginal).Histogram.Total(); got != 5 {
		t.Errorf("right histogram total = %v, want 5", got)
	}
	if fig.Region(MainScatter).Histogram != nil {
		t.Error("main region should not carry a histogram")
	}
	if len(fig.Region(TopMarginal).Points) != 0 {
		t.Error("top marginal should not carry points")
	}
}

func TestRenderSharedDomains(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for trial := range 20 {
		n := 1 + r.IntN(300)
		x := make([]float64, n)
		y := make([]float64, n)
		for i := range x {
			x[i] = r.NormFloat64() * 10
			y[i] = x[i]*0.5 + r.NormFloat64()
		}

		fig, err := Render(x, y, DefaultConfig())
		if err != nil {
			t.Fatalf("trial %d: Render() error: %v", trial, err)
		}
		main := fig.Region(MainScatter)
		top := fig.Region(TopMarginal)
		right := fig.Region(RightMarginal)

		if top.XDomain() != main.XDomain() {
			t.Errorf("trial %d: top x domain %v != main %v", trial, top.XDomain(), main.XDomain())
		}
		if right.YDomain() != main.YDomain() {
			t.Errorf("trial %d: right y domain %v != main %v", trial, right.YDomain(), main.YDomain())
		}
		if !top.SharesX(main) || !right.SharesY(main) {
			t.Errorf("trial %d: marginals should share scales with main", trial)
		}
		if top.SharesY(main) || right.SharesX(main) {
			t.Errorf("trial %d: count axes must not be shared", trial)
		}
		for _, p := range main.Points {
			if !main.XDomain().Contains(p.X) || !main.YDomain().Contains(p.Y) {
				t.Fatalf("trial %d: point %v outside domains", trial, p)
			}
		}
	}
}

func TestRenderBinsDoNotMoveDomains(t *testing.T) {
	x, y := linear()

	cfg := DefaultConfig()
	fig20, err := Render(x, y, cfg)
	if err != nil {
		t.Fatalf("Render(20) error: %v", err)
	}
	cfg.HistogramBins = 5
	fig5, err := Render(x, y, cfg)
	if err != nil {
		t.Fatalf("Render(5) error: %v", err)
	}

	if n := len(fig20.Region(TopMarginal).Histogram.Bins); n != 20 {
		t.Errorf("top bins = %d, want 20", n)
	}
	if n := len(fig5.Region(TopMarginal).Histogram.Bins); n != 5 {
		t.Errorf("top bins = %d, want 5", n)
	}
	if n := len(fig5.Region(RightMarginal).Histogram.Bins); n != 5 {
		t.Errorf("right bins = %d, want 5", n)
	}
	if fig20.Region(MainScatter).XDomain() != fig5.Region(MainScatter).XDomain() {
		t.Error("x domain changed with bin count")
	}
	if fig20.Region(MainScatter).YDomain() != fig5.Region(MainScatter).YDomain() {
		t.Error("y domain changed with bin count")
	}
}

func TestRenderIdempotent(t *testing.T) {
	x, y := linear()
	a, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Export(), b.Export()) {
		t.Error("two renders of the same input differ")
	}
	if a.Region(MainScatter) == b.Region(MainScatter) {
		t.Error("renders must not share region objects")
	}
	if a.Region(MainScatter).SharesX(b.Region(MainScatter)) {
		t.Error("renders must not share scales")
	}
}

func TestRenderDoesNotAliasInput(t *testing.T) {
	x, y := linear()
	fig, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	x[0] = 100
	if fig.Region(MainScatter).Points[0].X != 1 {
		t.Error("figure should keep its own copy of the samples")
	}
}

func TestRenderDecorations(t *testing.T) {
	x, y := linear()
	cfg := DefaultConfig()
	cfg.XLabel, cfg.YLabel, cfg.Title = "Study Hours", "Exam Scores", "Study"
	fig, err := Render(x, y, cfg)
	if err != nil {
		t.Fatal(err)
	}
	main := fig.Region(MainScatter)
	top := fig.Region(TopMarginal)
	right := fig.Region(RightMarginal)

	if main.XAxis.Label != "Study Hours" || main.YAxis.Label != "Exam Scores" {
		t.Errorf("main labels = %q/%q", main.XAxis.Label, main.YAxis.Label)
	}
	for _, r := range []*Region{top, right} {
		if r.XAxis.Label != "" || r.YAxis.Label != "" {
			t.Errorf("%v should not carry axis labels", r.Kind)
		}
	}
	if fig.Title() != "Study" || top.Title != "Study" || main.Title != "" {
		t.Errorf("title should sit on the top marginal only")
	}

	tests := []struct {
		name string
		axis Axis
		side Side
		show bool
	}{
		{"main x", main.XAxis, SideBottom, true},
		{"main y", main.YAxis, SideLeft, true},
		{"top x", top.XAxis, SideBottom, false},
		{"top y", top.YAxis, SideRight, true},
		{"right x", right.XAxis, SideTop, true},
		{"right y", right.YAxis, SideLeft, false},
	}
	for _, tt := range tests {
		if tt.axis.Side != tt.side || tt.axis.ShowTickLabels != tt.show {
			t.Errorf("%s: side=%v show=%v, want side=%v show=%v", tt.name, tt.axis.Side, tt.axis.ShowTickLabels, tt.side, tt.show)
		}
	}

	if top.Histogram.Orientation != Vertical || right.Histogram.Orientation != Horizontal {
		t.Error("top should be vertical and right horizontal")
	}
	if main.Style.Alpha <= 0 || main.Style.Alpha >= 1 {
		t.Errorf("points should be partially transparent, alpha = %v", main.Style.Alpha)
	}
	if main.Style.Edge == nil || main.Style.EdgeWidth <= 0 {
		t.Error("points should have an outline")
	}
}

func TestRenderRegionPlacement(t *testing.T) {
	x, y := linear()
	fig, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	main := fig.Region(MainScatter).Box
	top := fig.Region(TopMarginal).Box
	right := fig.Region(RightMarginal).Box

	if top.Y0 <= main.Y1 {
		t.Errorf("top marginal %v should sit above main %v", top, main)
	}
	if right.X0 <= main.X1 {
		t.Errorf("right marginal %v should sit right of main %v", right, main)
	}
	if top.X0 != main.X0 || top.X1 != main.X1 {
		t.Errorf("top marginal %v should align with main columns %v", top, main)
	}
	if right.Y0 != main.Y0 || right.Y1 != main.Y1 {
		t.Errorf("right marginal %v should align with main rows %v", right, main)
	}
	for _, pair := range [][2]Rect{{main, top}, {main, right}, {top, right}} {
		if pair[0].Overlaps(pair[1]) {
			t.Errorf("regions %v and %v overlap", pair[0], pair[1])
		}
	}
}

func TestRenderValidation(t *testing.T) {
	x, y := linear()
	tests := []struct {
		name   string
		x, y   []float64
		mutate func(*Config)
	}{
		{"length mismatch", make([]float64, 10), make([]float64, 8), nil},
		{"empty", nil, nil, nil},
		{"nan", []float64{1, math.NaN()}, []float64{1, 2}, nil},
		{"inf", []float64{1, 2}, []float64{1, math.Inf(1)}, nil},
		{"zero width", x, y, func(c *Config) { c.FigSize.Width = 0 }},
		{"negative height", x, y, func(c *Config) { c.FigSize.Height = -8 }},
		{"zero bins", x, y, func(c *Config) { c.HistogramBins = 0 }},
		{"negative margin", x, y, func(c *Config) { c.Margin = -0.1 }},
		{"bad ratio", x, y, func(c *Config) { c.Layout.WidthRatios[1] = 0 }},
		{"negative spacing", x, y, func(c *Config) { c.Layout.HSpace = -1 }},
		{"inverted bounds", x, y, func(c *Config) { c.Layout.Left, c.Layout.Right = 0.9, 0.1 }},
		{"control char title", x, y, func(c *Config) { c.Title = "a\x00b" }},
		{"x span overflows", []float64{-1e308, 1e308}, []float64{1, 2}, nil},
		{"y padding overflows", []float64{1, 2}, []float64{0, math.MaxFloat64}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			fig, err := Render(tt.x, tt.y, cfg)
			if err == nil {
				t.Fatal("Render() should fail")
			}
			if fig != nil {
				t.Error("no figure should be produced on validation failure")
			}
			if !errors.Is(err, errors.ErrCodeValidation) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeValidation)
			}
		})
	}
}

func TestRenderWideFiniteRange(t *testing.T) {
	x := []float64{-1e307, 0, 1e307}
	y := []float64{1, 2, 3}
	fig, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	top := fig.Region(TopMarginal)
	if got := top.Histogram.Total(); got != 3 {
		t.Errorf("Total() = %v, want 3", got)
	}
	if d := fig.Region(MainScatter).XDomain(); math.IsInf(d.Span(), 0) {
		t.Errorf("x domain = %v, want finite", d)
	}
}

func TestRenderConcurrent(t *testing.T) {
	x, y := linear()
	want, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	for i := range 8 {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			t.Parallel()
			fig, err := Render(x, y, DefaultConfig())
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if !reflect.DeepEqual(fig.Export(), want.Export()) {
				t.Error("concurrent Render() produced a different layout")
			}
		})
	}
}

func TestSideString(t *testing.T) {
	tests := []struct {
		side Side
		want string
	}{
		{SideBottom, "bottom"},
		{SideTop, "top"},
		{SideLeft, "left"},
		{SideRight, "right"},
		{Side(42), "unknown"},
		{Side(-1), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.side.String(); got != tt.want {
			t.Errorf("Side(%d).String() = %q, want %q", int(tt.side), got, tt.want)
		}
	}
}

func TestRenderZeroLayoutAndPaletteUseDefaults(t *testing.T) {
	x, y := linear()
	cfg := Config{FigSize: FigSize{Width: 6, Height: 6}, HistogramBins: 10}
	fig, err := Render(x, y, cfg)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if fig.Layout != DefaultLayoutSpec() {
		t.Errorf("Layout = %+v, want defaults", fig.Layout)
	}
	if fig.Region(MainScatter).Style.Fill == nil {
		t.Error("palette defaults not applied")
	}
	// Zero margin: samples touch the frame.
	if d := fig.Region(MainScatter).XDomain(); d.Min != 1 || d.Max != 5 {
		t.Errorf("x domain = %v, want [1 5]", d)
	}
}

func TestRenderSingleSample(t *testing.T) {
	fig, err := Render([]float64{3}, []float64{7}, DefaultConfig())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	top := fig.Region(TopMarginal)
	if len(top.Histogram.Bins) != DefaultBins {
		t.Errorf("bins = %d, want %d", len(top.Histogram.Bins), DefaultBins)
	}
	if top.Histogram.Total() != 1 {
		t.Errorf("total = %v, want 1", top.Histogram.Total())
	}
	d := fig.Region(MainScatter).XDomain()
	if !(d.Min < 3 && d.Max > 3) {
		t.Errorf("degenerate domain should be widened around the sample, got %v", d)
	}
}

func TestRenderCountDomain(t *testing.T) {
	x := []float64{1, 1, 1, 2}
	y := []float64{5, 6, 7, 8}
	fig, err := Render(x, y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	top := fig.Region(TopMarginal)
	if top.YDomain().Min != 0 {
		t.Errorf("count axis should start at zero, got %v", top.YDomain())
	}
	if top.YDomain().Max < top.Histogram.MaxCount() {
		t.Errorf("count axis %v should cover the tallest bar %v", top.YDomain(), top.Histogram.MaxCount())
	}
	right := fig.Region(RightMarginal)
	if right.XDomain().Min != 0 || right.XDomain().Max < right.Histogram.MaxCount() {
		t.Errorf("right count axis %v does not cover %v", right.XDomain(), right.Histogram.MaxCount())
	}
}

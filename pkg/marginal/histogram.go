package marginal

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Orientation is the direction histogram bars grow in.
type Orientation int

const (
	// Vertical bars grow upward from the x axis (top marginal).
	Vertical Orientation = iota
	// Horizontal bars grow rightward from the y axis (right marginal).
	Horizontal
)

// String returns "vertical" or "horizontal".
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// HistogramConfig describes how a marginal bins its values.
type HistogramConfig struct {
	Bins        int
	Orientation Orientation
}

// Bin is one histogram bar covering [Min, Max). The last bin of a histogram
// also includes its Max.
type Bin struct {
	Min   float64 `json:"min" bson:"min"`
	Max   float64 `json:"max" bson:"max"`
	Count float64 `json:"count" bson:"count"`
}

// Histogram is a frequency histogram of one variable.
type Histogram struct {
	Bins        []Bin
	Orientation Orientation
}

// Total returns the sum of all bin counts.
func (h *Histogram) Total() float64 {
	var t float64
	for _, b := range h.Bins {
		t += b.Count
	}
	return t
}

// MaxCount returns the height of the tallest bar.
func (h *Histogram) MaxCount() float64 {
	var m float64
	for _, b := range h.Bins {
		m = math.Max(m, b.Count)
	}
	return m
}

// newHistogram counts values into cfg.Bins equal-width bins spanning d.
// Every value must lie inside d.
func newHistogram(values []float64, d Domain, cfg HistogramConfig) *Histogram {
	edges := make([]float64, cfg.Bins+1)
	floats.Span(edges, d.Min, d.Max)
	edges[0], edges[cfg.Bins] = d.Min, d.Max

	// stat.Histogram uses half-open bins; nudge the final divider so the
	// maximum lands in the last bin instead of falling off the end.
	dividers := slices.Clone(edges)
	dividers[cfg.Bins] = math.Nextafter(d.Max, math.Inf(1))

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	counts := stat.Histogram(nil, dividers, sorted, nil)

	h := &Histogram{
		Bins:        make([]Bin, cfg.Bins),
		Orientation: cfg.Orientation,
	}
	for i := range h.Bins {
		h.Bins[i] = Bin{Min: edges[i], Max: edges[i+1], Count: counts[i]}
	}
	return h
}

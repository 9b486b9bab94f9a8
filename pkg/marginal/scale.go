package marginal

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/margins/pkg/errors"
)

// Domain is a closed coordinate interval along one axis.
type Domain struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Contains reports whether v lies within d.
func (d Domain) Contains(v float64) bool { return v >= d.Min && v <= d.Max }

// Normalize maps v into [0, 1] relative to d.
func (d Domain) Normalize(v float64) float64 { return (v - d.Min) / d.Span() }

// pad widens d by frac of its span on both sides.
func (d Domain) pad(frac float64) Domain {
	p := d.Span() * frac
	return Domain{Min: d.Min - p, Max: d.Max + p}
}

// Scale is an axis coordinate system. Regions that share an axis hold the
// same *Scale.
type Scale struct {
	domain Domain
}

func newScale(d Domain) *Scale { return &Scale{domain: d} }

// Domain returns the current domain of s.
func (s *Scale) Domain() Domain { return s.domain }

// dataRange returns the [min, max] of vs. A degenerate range (all values
// equal) is widened to [v-0.5, v+0.5] so bins and ticks have room.
func dataRange(vs []float64) Domain {
	d := Domain{Min: floats.Min(vs), Max: floats.Max(vs)}
	if d.Min == d.Max {
		d.Min -= 0.5
		d.Max += 0.5
	}
	return d
}

// checkRange rejects data whose padded range does not fit in a float64.
// Such input is finite but would produce infinite bin edges and scales.
func checkRange(axis string, d Domain, margin float64) error {
	if p := d.pad(margin); math.IsInf(p.Span(), 0) {
		return errors.New(errors.ErrCodeValidation, "%s values span too wide a range to plot: [%g, %g]", axis, d.Min, d.Max)
	}
	return nil
}

// countDomain is the domain of a histogram's frequency axis. It starts at
// zero and leaves frac headroom above the tallest bar.
func countDomain(maxCount, frac float64) Domain {
	if maxCount <= 0 {
		maxCount = 1
	}
	return Domain{Min: 0, Max: maxCount * (1 + frac)}
}

package dataset

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Correlation returns Pearson's correlation coefficient of x and y. It is NaN
// when either vector has zero variance.
func Correlation(x, y []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// Summary is the descriptive statistics of one variable.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"25%"`
	Q50   float64 `json:"50%"`
	Q75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// Describe summarizes values. Std is the sample standard deviation (NaN for
// a single value); quartiles interpolate linearly between order statistics.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	return Summary{
		Count: len(sorted),
		Mean:  mean,
		Std:   std,
		Min:   floats.Min(sorted),
		Q25:   quantile(0.25, sorted),
		Q50:   quantile(0.5, sorted),
		Q75:   quantile(0.75, sorted),
		Max:   floats.Max(sorted),
	}
}

func quantile(p float64, sorted []float64) float64 {
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

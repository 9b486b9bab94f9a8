package dataset

import (
	"slices"

	"github.com/matzehuels/margins/pkg/errors"
)

// Dataset is a named pair of index-aligned sample vectors.
type Dataset struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	XLabel string    `json:"x_label,omitempty" yaml:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty" yaml:"y_label,omitempty"`
	X      []float64 `json:"x" yaml:"x"`
	Y      []float64 `json:"y" yaml:"y"`
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.X) }

// Validate checks that X and Y are non-empty, equal in length and finite.
func (d *Dataset) Validate() error {
	return errors.ValidateSamples(d.X, d.Y)
}

// Generator builds a seeded dataset of n samples.
type Generator func(seed uint64, n int) *Dataset

type builtin struct {
	gen Generator
	n   int
}

var builtins = map[string]builtin{
	"normal": {gen: Normal, n: 500},
	"study":  {gen: StudyHours, n: 200},
}

// DefaultSeed is the seed used by the demo datasets.
const DefaultSeed = 42

// Builtin returns the named synthetic dataset at its default size.
func Builtin(name string, seed uint64) (*Dataset, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeValidation, "unknown dataset %q (available: %v)", name, Names())
	}
	return b.gen(seed, b.n), nil
}

// Names returns the built-in dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

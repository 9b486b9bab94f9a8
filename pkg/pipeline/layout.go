package pipeline

import (
	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/marginal"
)

// Layout builds the figure for ds. It does not touch any cache.
func Layout(ds *dataset.Dataset, opts Options) (*marginal.Figure, error) {
	if ds == nil {
		ds = &dataset.Dataset{}
	}
	cfg, err := opts.Config(ds)
	if err != nil {
		return nil, err
	}
	return marginal.Render(ds.X, ds.Y, cfg)
}

package pipeline

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/margins/pkg/marginal"
	"github.com/matzehuels/margins/pkg/render"
)

// Render encodes fig in every format of opts. Formats are encoded
// concurrently; the figure is only read. The first failure cancels the
// formats not yet started.
func Render(ctx context.Context, fig *marginal.Figure, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	out := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := encode(fig, format, opts.DPI)
			if err != nil {
				return err
			}
			mu.Lock()
			out[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func encode(fig *marginal.Figure, format string, dpi int) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marginal.MarshalLayout(fig.Export())
	case FormatDOT:
		return []byte(render.ToDOT(fig)), nil
	}
	return render.Encode(fig, format, render.WithDPI(dpi))
}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return render.ContentType(format)
}

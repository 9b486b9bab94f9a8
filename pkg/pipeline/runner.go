package pipeline

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/margins/pkg/cache"
	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/marginal"
	"github.com/matzehuels/margins/pkg/observability"
)

// Runner runs the pipeline against a cache. The CLI and the HTTP API share
// it; a Runner holds no per-request state and may be used concurrently.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner fills nil arguments with a NullCache, the default keyer and the
// default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute lays out ds and renders every requested format.
//
// Options are validated and defaulted first, so a validation failure never
// touches the cache. The layout itself is always recomputed; only the
// encoded artifacts are cached. A cancelled ctx stops the run between the
// two stages and before each format is encoded.
func (r *Runner) Execute(ctx context.Context, ds *dataset.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	started := time.Now()
	fig, err := r.Layout(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Figure:      fig,
		DatasetHash: DatasetHash(ds),
		Stats: Stats{
			Samples:     ds.Len(),
			Correlation: dataset.Correlation(ds.X, ds.Y),
			LayoutTime:  time.Since(started),
		},
	}
	r.Logger.Info("computed layout", "samples", res.Stats.Samples, "bins", opts.Bins, "duration", res.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started = time.Now()
	res.Artifacts, res.CacheInfo.RenderHit, err = r.Artifacts(ctx, fig, res.DatasetHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Stats.RenderTime = time.Since(started)
	r.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", res.CacheInfo.RenderHit, "duration", res.Stats.RenderTime)
	return res, nil
}

// Layout builds the figure for ds. It never reads the cache.
func (r *Runner) Layout(ctx context.Context, ds *dataset.Dataset, opts Options) (*marginal.Figure, error) {
	r.applyLogger(&opts)
	if ds == nil {
		ds = &dataset.Dataset{}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, ds.Len())
	started := time.Now()
	fig, err := Layout(ds, opts)
	hooks.OnLayoutComplete(ctx, ds.Len(), time.Since(started), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("layout regions", "count", len(fig.Regions()), "title", fig.Title())
	return fig, nil
}

// LayoutDocument returns the exported layout of ds and whether it came from
// the cache. An undecodable cache entry is recomputed.
func (r *Runner) LayoutDocument(ctx context.Context, ds *dataset.Dataset, opts Options) (marginal.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return marginal.Layout{}, false, err
	}
	if ds == nil {
		ds = &dataset.Dataset{}
	}
	cfg, err := opts.Config(ds)
	if err != nil {
		return marginal.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(DatasetHash(ds), opts.LayoutKeyOpts(cfg))

	if data, ok := r.lookup(ctx, key, "layout", opts.Refresh); ok {
		if doc, err := marginal.UnmarshalLayout(data); err == nil {
			return doc, true, nil
		}
		r.Logger.Debug("discarding undecodable layout", "key", key)
	}

	fig, err := r.Layout(ctx, ds, opts)
	if err != nil {
		return marginal.Layout{}, false, err
	}
	doc := fig.Export()
	if data, err := marginal.MarshalLayout(doc); err == nil {
		r.store(ctx, key, "layout", data, cache.TTLLayout)
	}
	return doc, false, nil
}

// Artifacts renders fig in every requested format and reports whether all of
// them came from the cache. datasetHash identifies the samples behind fig,
// since the layout document only counts them.
func (r *Runner) Artifacts(ctx context.Context, fig *marginal.Figure, datasetHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := marginal.MarshalLayout(fig.Export())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(append([]byte(datasetHash), layoutData...))
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
	}

	hits := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.lookup(ctx, keyFor(format), "artifact", opts.Refresh)
		if !ok {
			break
		}
		hits[format] = data
	}
	if len(hits) == len(opts.Formats) {
		return hits, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	started := time.Now()
	rendered, err := Render(ctx, fig, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(started), err)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.store(ctx, keyFor(format), "artifact", data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// lookup reads key unless refresh is set, firing the cache hooks. Backend
// errors count as misses.
func (r *Runner) lookup(ctx context.Context, key, kind string, refresh bool) ([]byte, bool) {
	if refresh {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

// store writes key and logs, rather than returns, a failure.
func (r *Runner) store(ctx context.Context, key, kind string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases the cache. The Runner must not be used afterwards.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

// applyLogger hands the runner's logger to opts unless the caller set one.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// DatasetHash returns the content hash of the samples in ds. Names and
// labels are not part of it. The hash covers the exact bit pattern of every
// value, lengths included, so any sample set hashes, even non-finite ones.
func DatasetHash(ds *dataset.Dataset) string {
	buf := make([]byte, 0, 16+8*(len(ds.X)+len(ds.Y)))
	for _, vs := range [][]float64{ds.X, ds.Y} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(vs)))
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return cache.Hash(buf)
}

// Package pkg provides the core libraries for margins, a scatter plot with
// marginal histograms.
//
// # Overview
//
// margins draws two variables as a scatter plot with a histogram of each
// variable along the matching edge: x above the scatter, y to its right. The
// pkg directory is organized into these areas:
//
//  1. [marginal] - Figure composition (grid, shared scales, histograms)
//  2. [render] - Drawing and encoding (PNG, JPEG, TIFF, SVG, PDF, DOT)
//  3. [dataset] - Input data (CSV/JSON/YAML, synthetic datasets, statistics)
//  4. [pipeline] - Orchestration (layout → render, with caching)
//  5. [api] - HTTP service over the pipeline
//  6. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	CSV / JSON / YAML file, or a built-in dataset
//	         ↓
//	    [dataset] package (load, validate)
//	         ↓
//	    [marginal] package (three regions with shared axes)
//	         ↓
//	    [render] package (draw onto a gonum/plot canvas)
//	         ↓
//	    PNG/JPEG/TIFF/SVG/PDF, layout JSON/BSON, DOT
//
// # Quick Start
//
//	ds, _ := dataset.Builtin("study", dataset.DefaultSeed)
//	fig, err := marginal.Render(ds.X, ds.Y, marginal.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = render.WriteFile(fig, "study.png")
//
// [marginal]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/marginal
// [render]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/render
// [dataset]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/dataset
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/api
// [cache]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/margins/pkg/buildinfo
package pkg

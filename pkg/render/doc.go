// Package render draws marginal figures and encodes them to image formats.
//
// # Overview
//
// A [marginal.Figure] is pure geometry: region boxes, shared domains, points
// and histogram bins. This package turns it into pixels or vectors using the
// gonum vg canvases:
//
//   - [Draw] paints a figure onto any [draw.Canvas]
//   - [Encode] renders to PNG, JPEG, TIFF, SVG or PDF bytes
//   - [WriteFile] picks the format from a file extension
//
// Raster formats honour [WithDPI] (default 100). Vector formats ignore it.
//
//	fig, err := marginal.Render(x, y, marginal.DefaultConfig())
//	png, err := render.Encode(fig, render.PNG, render.WithDPI(150))
//
// # Region Graph
//
// [ToDOT] describes the figure as a small Graphviz graph: one node per region,
// one edge per shared axis. [RenderDOT] lays it out with Graphviz. This is the
// quickest way to check which regions share which scales.
//
//	dot := render.ToDOT(fig)
//	svg, err := render.RenderDOT(ctx, dot, render.SVG)
//
// # Errors
//
// Unknown formats fail with INVALID_FORMAT. Canvas, encoder and file system
// failures are wrapped as RENDER_FAILED with the original error as cause.
//
// [marginal.Figure]: github.com/matzehuels/margins/pkg/marginal.Figure
package render

// Package marginal lays out a scatter plot with marginal histograms.
//
// # Overview
//
// [Render] takes two index-aligned sequences and a [Config] and returns a
// [Figure]: an explicit object graph of three coordinated regions that the
// caller owns. Nothing is drawn here; the figure describes geometry, domains
// and content, and a sink (see package render) turns it into pixels or
// vectors.
//
//	+-------------------+------+
//	|   TopMarginal     |      |
//	|   (x histogram)   |      |
//	+-------------------+------+
//	|                   |Right |
//	|   MainScatter     |Marg. |
//	|                   |(y h.)|
//	+-------------------+------+
//
// # Grid
//
// The drawable area (the figure minus its outer margins) is split into a 2×2
// grid with column widths 3:1 (main:marginal) and row heights 1:3
// (top:main). Gaps between cells are expressed as a fraction of the average
// cell size, so changing the figure size keeps the proportions. The top-right
// cell stays empty.
//
// # Shared axes
//
// TopMarginal and MainScatter hold the same x [Scale]; RightMarginal and
// MainScatter hold the same y [Scale]. Sharing is by pointer, so the domains
// cannot drift apart:
//
//	fig, _ := marginal.Render(x, y, marginal.DefaultConfig())
//	main := fig.Region(marginal.MainScatter)
//	top := fig.Region(marginal.TopMarginal)
//	top.SharesX(main) // true
//	top.XDomain() == main.XDomain() // true
//
// # Decorations
//
// Tick labels that would duplicate the main region's are hidden: the top
// histogram hides its x tick labels and moves its count ticks to the right
// edge; the right histogram hides its y tick labels and moves its count ticks
// to the top edge. Axis labels live on MainScatter only, the title on
// TopMarginal.
//
// # Validation
//
// Mismatched lengths, empty input, NaN or infinite values, a non-positive
// figure size and a bin count below one are all rejected with an
// INVALID_INPUT error from package errors before anything is built.
package marginal

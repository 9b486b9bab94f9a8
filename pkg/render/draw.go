package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/margins/pkg/marginal"
)

const (
	tickLength = 3.5 // points
	tickPad    = 3.5 // points, between tick and its label
	labelPad   = 4   // points, between tick labels and axis label
	spineWidth = 0.8 // points
	tickSize   = 10  // points
	labelSize  = 12  // points
	titleSize  = 14  // points
	titlePad   = 6   // points
)

var (
	spineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(spineWidth)}
	tickStyle  = draw.LineStyle{Color: color.Black, Width: vg.Points(spineWidth)}
)

func textStyle(size vg.Length) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		Handler: plot.DefaultTextHandler,
	}
}

// Draw paints fig onto c. The figure is scaled to fill c.Rectangle; region
// boxes are figure fractions, so the aspect ratio of c decides the shape of
// the cells.
func Draw(c draw.Canvas, fig *marginal.Figure) {
	c.FillPolygon(color.White, corners(c.Rectangle))
	for _, r := range fig.Regions() {
		drawRegion(cell(c, r.Box), r)
	}
}

// cell returns the sub-canvas covering b.
func cell(c draw.Canvas, b marginal.Rect) draw.Canvas {
	size := c.Rectangle.Size()
	return draw.Canvas{
		Canvas: c.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: c.Min.X + vg.Length(b.X0)*size.X, Y: c.Min.Y + vg.Length(b.Y0)*size.Y},
			Max: vg.Point{X: c.Min.X + vg.Length(b.X1)*size.X, Y: c.Min.Y + vg.Length(b.Y1)*size.Y},
		},
	}
}

func corners(r vg.Rectangle) []vg.Point {
	return []vg.Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}

func drawRegion(c draw.Canvas, r *marginal.Region) {
	switch {
	case r.Histogram != nil:
		drawBars(c, r)
	default:
		drawPoints(c, r)
	}

	pts := corners(c.Rectangle)
	c.StrokeLines(spineStyle, append(pts, pts[0]))

	xExtent := drawAxis(c, r.XAxis, r.XDomain(), true)
	yExtent := drawAxis(c, r.YAxis, r.YDomain(), false)

	if r.XAxis.Label != "" {
		sty := textStyle(vg.Points(labelSize))
		sty.XAlign = text.XCenter
		pt := vg.Point{X: (c.Min.X + c.Max.X) / 2}
		if r.XAxis.Side == marginal.SideTop {
			sty.YAlign = text.YBottom
			pt.Y = c.Max.Y + xExtent + vg.Points(labelPad)
		} else {
			sty.YAlign = text.YTop
			pt.Y = c.Min.Y - xExtent - vg.Points(labelPad)
		}
		c.FillText(sty, pt, r.XAxis.Label)
	}
	if r.YAxis.Label != "" {
		sty := textStyle(vg.Points(labelSize))
		sty.Rotation = math.Pi / 2
		sty.XAlign = text.XCenter
		pt := vg.Point{Y: (c.Min.Y + c.Max.Y) / 2}
		if r.YAxis.Side == marginal.SideRight {
			sty.YAlign = text.YTop
			pt.X = c.Max.X + yExtent + vg.Points(labelPad)
		} else {
			sty.YAlign = text.YBottom
			pt.X = c.Min.X - yExtent - vg.Points(labelPad)
		}
		c.FillText(sty, pt, r.YAxis.Label)
	}

	if r.Title != "" {
		sty := textStyle(vg.Points(titleSize))
		sty.XAlign = text.XCenter
		sty.YAlign = text.YBottom
		c.FillText(sty, vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: c.Max.Y + vg.Points(titlePad)}, r.Title)
	}
}

// fade applies alpha to clr.
func fade(clr color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

func drawPoints(c draw.Canvas, r *marginal.Region) {
	xd, yd := r.XDomain(), r.YDomain()
	radius := vg.Points(r.Style.Radius)
	fill := draw.GlyphStyle{Color: fade(r.Style.Fill, r.Style.Alpha), Radius: radius, Shape: draw.CircleGlyph{}}
	edge := draw.LineStyle{Color: r.Style.Edge, Width: vg.Points(r.Style.EdgeWidth)}

	for _, p := range r.Points {
		pt := vg.Point{X: c.X(xd.Normalize(p.X)), Y: c.Y(yd.Normalize(p.Y))}
		c.DrawGlyph(fill, pt)
		if edge.Width > 0 {
			var ring vg.Path
			ring.Move(vg.Point{X: pt.X + radius, Y: pt.Y})
			ring.Arc(pt, radius, 0, 2*math.Pi)
			ring.Close()
			c.SetLineStyle(edge)
			c.Stroke(ring)
		}
	}
}

func drawBars(c draw.Canvas, r *marginal.Region) {
	xd, yd := r.XDomain(), r.YDomain()
	fill := fade(r.Style.Fill, r.Style.Alpha)
	edge := draw.LineStyle{Color: r.Style.Edge, Width: vg.Points(r.Style.EdgeWidth)}

	for _, b := range r.Histogram.Bins {
		if b.Count == 0 {
			continue
		}
		var bar vg.Rectangle
		if r.Histogram.Orientation == marginal.Vertical {
			bar = vg.Rectangle{
				Min: vg.Point{X: c.X(xd.Normalize(b.Min)), Y: c.Y(yd.Normalize(0))},
				Max: vg.Point{X: c.X(xd.Normalize(b.Max)), Y: c.Y(yd.Normalize(b.Count))},
			}
		} else {
			bar = vg.Rectangle{
				Min: vg.Point{X: c.X(xd.Normalize(0)), Y: c.Y(yd.Normalize(b.Min))},
				Max: vg.Point{X: c.X(xd.Normalize(b.Count)), Y: c.Y(yd.Normalize(b.Max))},
			}
		}
		pts := corners(bar)
		c.FillPolygon(fill, pts)
		if edge.Width > 0 {
			c.StrokeLines(edge, append(pts, pts[0]))
		}
	}
}

// drawAxis draws the ticks of one axis on its side of c and returns how far
// ticks and labels reach outside the frame.
func drawAxis(c draw.Canvas, a marginal.Axis, d marginal.Domain, horizontal bool) vg.Length {
	sty := textStyle(vg.Points(tickSize))
	tick := vg.Points(tickLength)
	pad := vg.Points(tickPad)

	switch a.Side {
	case marginal.SideBottom:
		sty.XAlign, sty.YAlign = text.XCenter, text.YTop
	case marginal.SideTop:
		sty.XAlign, sty.YAlign = text.XCenter, text.YBottom
	case marginal.SideLeft:
		sty.XAlign, sty.YAlign = text.XRight, text.YCenter
	case marginal.SideRight:
		sty.XAlign, sty.YAlign = text.XLeft, text.YCenter
	}

	extent := tick
	for _, t := range majorTicks(d) {
		var (
			from, to, at vg.Point
			size         vg.Length
		)
		if horizontal {
			x := c.X(d.Normalize(t.Value))
			if a.Side == marginal.SideTop {
				from, to, at = vg.Point{X: x, Y: c.Max.Y}, vg.Point{X: x, Y: c.Max.Y + tick}, vg.Point{X: x, Y: c.Max.Y + tick + pad}
			} else {
				from, to, at = vg.Point{X: x, Y: c.Min.Y}, vg.Point{X: x, Y: c.Min.Y - tick}, vg.Point{X: x, Y: c.Min.Y - tick - pad}
			}
			size = sty.Height(t.Label)
		} else {
			y := c.Y(d.Normalize(t.Value))
			if a.Side == marginal.SideRight {
				from, to, at = vg.Point{X: c.Max.X, Y: y}, vg.Point{X: c.Max.X + tick, Y: y}, vg.Point{X: c.Max.X + tick + pad, Y: y}
			} else {
				from, to, at = vg.Point{X: c.Min.X, Y: y}, vg.Point{X: c.Min.X - tick, Y: y}, vg.Point{X: c.Min.X - tick - pad, Y: y}
			}
			size = sty.Width(t.Label)
		}

		c.StrokeLine2(tickStyle, from.X, from.Y, to.X, to.Y)
		if a.ShowTickLabels {
			c.FillText(sty, at, t.Label)
			extent = max(extent, tick+pad+size)
		}
	}
	return extent
}

// majorTicks returns the labelled ticks of plot.DefaultTicks that fall inside d.
func majorTicks(d marginal.Domain) []plot.Tick {
	var out []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(d.Min, d.Max) {
		if t.IsMinor() || !d.Contains(t.Value) {
			continue
		}
		out = append(out, t)
	}
	return out
}

package marginal

// Rect is an axis-aligned rectangle in figure fractions, with the origin at
// the bottom-left corner of the figure.
type Rect struct {
	X0 float64 `json:"x0" bson:"x0"`
	Y0 float64 `json:"y0" bson:"y0"`
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Overlaps reports whether r and o share interior area. Rectangles that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Grid is the 2×2 cell partition produced by a [LayoutSpec].
// Cells are indexed [row][col] with row 0 at the top.
type Grid [2][2]Rect

// Cells partitions the drawable area described by s.
//
// Within the bounds [Left, Right] the columns get widths proportional to
// WidthRatios, separated by WSpace times the average column width; rows are
// laid out the same way from Top downwards using HeightRatios and HSpace.
func (s LayoutSpec) Cells() Grid {
	lefts, rights := gridSpans(s.WidthRatios[:], s.Left, s.Right, s.WSpace)
	starts, ends := gridSpans(s.HeightRatios[:], s.Bottom, s.Top, s.HSpace)
	var g Grid
	for row := range 2 {
		// Rows are specified top first; mirror so row 0 hugs Top.
		y1 := s.Top - (starts[row] - s.Bottom)
		y0 := s.Top - (ends[row] - s.Bottom)
		for col := range 2 {
			g[row][col] = Rect{X0: lefts[col], Y0: y0, X1: rights[col], Y1: y1}
		}
	}
	return g
}

// gridSpans splits [lo, hi] into len(ratios) cells separated by gaps of
// space times the average cell size. It returns the start and end of each
// cell measured from lo.
func gridSpans(ratios []float64, lo, hi, space float64) (starts, ends []float64) {
	n := float64(len(ratios))
	total := hi - lo
	cell := total / (n + space*(n-1))
	sep := space * cell

	var sum float64
	for _, r := range ratios {
		sum += r
	}
	norm := cell * n / sum

	starts = make([]float64, len(ratios))
	ends = make([]float64, len(ratios))
	pos := lo
	for i, r := range ratios {
		if i > 0 {
			pos += sep
		}
		starts[i] = pos
		pos += r * norm
		ends[i] = pos
	}
	return starts, ends
}

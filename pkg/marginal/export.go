package marginal

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Layout is the serializable snapshot of a [Figure]'s geometry. It carries
// region boxes, domains, axis decorations and histogram bins, but only the
// number of scatter points, not the points themselves.
type Layout struct {
	Width   float64        `json:"width" bson:"width"`
	Height  float64        `json:"height" bson:"height"`
	Title   string         `json:"title,omitempty" bson:"title,omitempty"`
	Grid    LayoutSpec     `json:"grid" bson:"grid"`
	Regions []RegionLayout `json:"regions" bson:"regions"`
}

// RegionLayout is the serialized form of one [Region].
type RegionLayout struct {
	Kind        string     `json:"kind" bson:"kind"`
	Box         Rect       `json:"box" bson:"box"`
	XDomain     Domain     `json:"x_domain" bson:"x_domain"`
	YDomain     Domain     `json:"y_domain" bson:"y_domain"`
	XAxis       AxisLayout `json:"x_axis" bson:"x_axis"`
	YAxis       AxisLayout `json:"y_axis" bson:"y_axis"`
	SharesX     string     `json:"shares_x,omitempty" bson:"shares_x,omitempty"`
	SharesY     string     `json:"shares_y,omitempty" bson:"shares_y,omitempty"`
	Points      int        `json:"points,omitempty" bson:"points,omitempty"`
	Orientation string     `json:"orientation,omitempty" bson:"orientation,omitempty"`
	Bins        []Bin      `json:"bins,omitempty" bson:"bins,omitempty"`
}

// AxisLayout is the serialized form of an [Axis].
type AxisLayout struct {
	Label      string `json:"label,omitempty" bson:"label,omitempty"`
	Side       string `json:"side" bson:"side"`
	TickLabels bool   `json:"tick_labels" bson:"tick_labels"`
}

// Export snapshots the figure into its serializable form.
func (f *Figure) Export() Layout {
	main := f.Region(MainScatter)
	l := Layout{
		Width:   f.Size.Width,
		Height:  f.Size.Height,
		Title:   f.Title(),
		Grid:    f.Layout,
		Regions: make([]RegionLayout, 0, len(f.regions)),
	}
	for _, r := range f.Regions() {
		rl := RegionLayout{
			Kind:    r.Kind.String(),
			Box:     r.Box,
			XDomain: r.XDomain(),
			YDomain: r.YDomain(),
			XAxis:   exportAxis(r.XAxis),
			YAxis:   exportAxis(r.YAxis),
			Points:  len(r.Points),
		}
		if r != main && r.SharesX(main) {
			rl.SharesX = main.Kind.String()
		}
		if r != main && r.SharesY(main) {
			rl.SharesY = main.Kind.String()
		}
		if r.Histogram != nil {
			rl.Orientation = r.Histogram.Orientation.String()
			rl.Bins = r.Histogram.Bins
		}
		l.Regions = append(l.Regions, rl)
	}
	return l
}

func exportAxis(a Axis) AxisLayout {
	return AxisLayout{Label: a.Label, Side: a.Side.String(), TickLabels: a.ShowTickLabels}
}

// Region returns the region layout of the given kind.
func (l Layout) Region(kind RegionKind) (RegionLayout, bool) {
	for _, r := range l.Regions {
		if r.Kind == kind.String() {
			return r, true
		}
	}
	return RegionLayout{}, false
}

// MarshalLayout encodes l as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return data, nil
}

// UnmarshalLayout decodes a JSON layout document.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// MarshalLayoutBSON encodes l as a BSON document.
func MarshalLayoutBSON(l Layout) ([]byte, error) {
	data, err := bson.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode layout bson: %w", err)
	}
	return data, nil
}

// UnmarshalLayoutBSON decodes a BSON layout document.
func UnmarshalLayoutBSON(data []byte) (Layout, error) {
	var l Layout
	if err := bson.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout bson: %w", err)
	}
	return l, nil
}

package marginal

import (
	"reflect"
	"strings"
	"testing"
)

func exportLinear(t *testing.T) Layout {
	t.Helper()
	x, y := linear()
	cfg := DefaultConfig()
	cfg.HistogramBins = 4
	fig, err := Render(x, y, cfg)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return fig.Export()
}

func TestExport(t *testing.T) {
	l := exportLinear(t)

	if l.Width != 10 || l.Height != 8 {
		t.Errorf("size = %vx%v, want 10x8", l.Width, l.Height)
	}
	if len(l.Regions) != 3 {
		t.Fatalf("len(Regions) = %d, want 3", len(l.Regions))
	}

	main, ok := l.Region(MainScatter)
	if !ok {
		t.Fatal("main region missing")
	}
	if main.Points != 5 || main.Bins != nil {
		t.Errorf("main = %+v", main)
	}
	if main.XAxis.Label != "X Axis" || main.XAxis.Side != "bottom" {
		t.Errorf("main x axis = %+v", main.XAxis)
	}

	top, _ := l.Region(TopMarginal)
	if top.SharesX != "main" || top.SharesY != "" {
		t.Errorf("top shares = %q/%q, want main/empty", top.SharesX, top.SharesY)
	}
	if top.XDomain != main.XDomain {
		t.Errorf("top x domain %v != main %v", top.XDomain, main.XDomain)
	}
	if top.Orientation != "vertical" || len(top.Bins) != 4 {
		t.Errorf("top = %s with %d bins", top.Orientation, len(top.Bins))
	}

	right, _ := l.Region(RightMarginal)
	if right.SharesY != "main" || right.SharesX != "" {
		t.Errorf("right shares = %q/%q, want empty/main", right.SharesX, right.SharesY)
	}
	if right.YAxis.TickLabels || !right.XAxis.TickLabels || right.XAxis.Side != "top" {
		t.Errorf("right axes = %+v / %+v", right.XAxis, right.YAxis)
	}
}

func TestLayoutJSON(t *testing.T) {
	l := exportLinear(t)

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error: %v", err)
	}
	for _, key := range []string{`"kind": "top"`, `"shares_x": "main"`, `"width_ratios"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON missing %s", key)
		}
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("JSON round trip changed the layout:\n got %+v\nwant %+v", got, l)
	}
}

func TestLayoutBSON(t *testing.T) {
	l := exportLinear(t)

	data, err := MarshalLayoutBSON(l)
	if err != nil {
		t.Fatalf("MarshalLayoutBSON() error: %v", err)
	}
	got, err := UnmarshalLayoutBSON(data)
	if err != nil {
		t.Fatalf("UnmarshalLayoutBSON() error: %v", err)
	}
	if got.Title != l.Title || len(got.Regions) != 3 || got.Grid != l.Grid {
		t.Errorf("BSON round trip lost data: %+v", got)
	}
	top, _ := got.Region(TopMarginal)
	if len(top.Bins) != 4 {
		t.Errorf("top bins = %d, want 4", len(top.Bins))
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	if _, err := UnmarshalLayout([]byte("{")); err == nil {
		t.Error("UnmarshalLayout() should fail on truncated JSON")
	}
	if _, err := UnmarshalLayoutBSON([]byte{0x01}); err == nil {
		t.Error("UnmarshalLayoutBSON() should fail on truncated BSON")
	}
}

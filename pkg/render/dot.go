package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/margins/pkg/errors"
	"github.com/matzehuels/margins/pkg/marginal"
)

var regionColors = map[marginal.RegionKind]string{
	marginal.MainScatter:   "#1f77b4",
	marginal.TopMarginal:   "#87ceeb",
	marginal.RightMarginal: "#90ee90",
}

type dotNode struct{ id, label, fill string }

type dotEdge struct{ from, to, label string }

// ToDOT describes fig as a Graphviz digraph: one node per region, labelled
// with its box and domains, and one edge per axis a marginal shares with the
// main scatter.
func ToDOT(fig *marginal.Figure) string {
	main := fig.Region(marginal.MainScatter)

	var nodes []dotNode
	var edges []dotEdge
	for _, r := range fig.Regions() {
		id := r.Kind.String()
		nodes = append(nodes, dotNode{id, regionLabel(r), regionColors[r.Kind]})
		if r == main {
			continue
		}
		if r.SharesX(main) {
			edges = append(edges, dotEdge{id, main.Kind.String(), "shares x"})
		}
		if r.SharesY(main) {
			edges = append(edges, dotEdge{id, main.Kind.String(), "shares y"})
		}
	}

	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("  rankdir=LR;\n  bgcolor=\"transparent\";\n")
	b.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, "  %q [label=%q, fillcolor=%q];\n", n.id, n.label, n.fill)
	}
	b.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.from, e.to, e.label)
	}
	b.WriteString("}\n")
	return b.String()
}

func regionLabel(r *marginal.Region) string {
	xd, yd := r.XDomain(), r.YDomain()
	content := fmt.Sprintf("%d points", len(r.Points))
	if h := r.Histogram; h != nil {
		content = fmt.Sprintf("%d bins, %s", len(h.Bins), h.Orientation)
	}
	return strings.Join([]string{
		r.Kind.String(),
		fmt.Sprintf("box: [%.3f, %.3f]x[%.3f, %.3f]", r.Box.X0, r.Box.X1, r.Box.Y0, r.Box.Y1),
		fmt.Sprintf("x: [%.4g, %.4g]", xd.Min, xd.Max),
		fmt.Sprintf("y: [%.4g, %.4g]", yd.Min, yd.Max),
		content,
	}, "\n")
}

var graphvizFormats = map[string]graphviz.Format{
	SVG:  graphviz.SVG,
	PNG:  graphviz.PNG,
	JPEG: graphviz.JPG,
}

// RenderDOT lays out a DOT graph with Graphviz as SVG, PNG or JPEG.
func RenderDOT(ctx context.Context, dot string, format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	gvFormat, ok := graphvizFormats[f]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "graphviz cannot render %s", f)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render DOT")
	}
	if f == SVG {
		return fitSVGRoot(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgRootRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="[0-9.]+\s+[0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitSVGRoot replaces Graphviz's root element, which carries sizes in
// points and a translated viewBox, with one sized in pixels from the
// viewBox origin. SVG without a usable viewBox is returned unchanged.
func fitSVGRoot(svg []byte) []byte {
	root := svgRootRe.FindIndex(svg)
	if root == nil {
		return svg
	}
	m := viewBoxRe.FindSubmatch(svg[root[0]:root[1]])
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	out := make([]byte, 0, len(svg))
	out = append(out, svg[:root[0]]...)
	out = append(out, tag...)
	return append(out, svg[root[1]:]...)
}

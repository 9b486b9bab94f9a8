package cli

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/margins/pkg/errors"
	"github.com/matzehuels/margins/pkg/marginal"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"png"}},
		{"svg", []string{"svg"}},
		{"PNG, svg ,pdf", []string{"png", "svg", "pdf"}},
		{"svg,,", []string{"svg"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/scores.csv", "data/scores"},
		{"out.png", "scores.csv", "out"},
		{"out.SVG", "scores.csv", "out"},
		{"out", "scores.csv", "out"},
		{"out.v1", "scores.csv", "out.v1"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths("figure.png", "scores.csv", []string{"png"})
	if got["png"] != "figure.png" {
		t.Errorf("single format path = %q, want figure.png", got["png"])
	}

	got = outputPaths("figure.png", "scores.csv", []string{"png", "svg"})
	want := map[string]string{"png": "figure.png", "svg": "figure.svg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outputPaths() = %v, want %v", got, want)
	}

	got = outputPaths("", "scores.csv", []string{"pdf"})
	if got["pdf"] != "scores.pdf" {
		t.Errorf("derived path = %q, want scores.pdf", got["pdf"])
	}
}

func writeCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scores.csv")
	data := "hours,score\n1,52\n2,58\n3,61\n4,70\n5,74\n6,79\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	ds, err := loadDataset(writeCSV(t, dir), inputFlags{})
	if err != nil {
		t.Fatalf("loadDataset(csv) error: %v", err)
	}
	if ds.Len() != 6 || ds.XLabel != "hours" || ds.YLabel != "score" {
		t.Errorf("dataset = %d samples, labels %q/%q", ds.Len(), ds.XLabel, ds.YLabel)
	}

	ds, err = loadDataset("study", inputFlags{seed: 1})
	if err != nil {
		t.Fatalf("loadDataset(study) error: %v", err)
	}
	if ds.Len() == 0 {
		t.Error("built-in dataset is empty")
	}

	if _, err := loadDataset(filepath.Join(dir, "missing.csv"), inputFlags{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeCSV(t, dir)
	base := filepath.Join(dir, "figure")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"render", input, "-o", base, "-f", "svg,json", "--bins", "3", "--title", "Scores", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("Scores")) {
		t.Error("svg should contain the title")
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := marginal.UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	top, _ := doc.Region(marginal.TopMarginal)
	if len(top.Bins) != 3 {
		t.Errorf("top bins = %d, want 3", len(top.Bins))
	}
}

func TestRenderCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeCSV(t, dir)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad color", []string{"render", input, "--scatter-color", "blue", "-o", filepath.Join(dir, "x.png")}, errors.ErrCodeInvalidColor},
		{"bad bins", []string{"render", input, "--bins=-1", "-o", filepath.Join(dir, "x.png")}, errors.ErrCodeValidation},
		{"missing file", []string{"render", filepath.Join(dir, "nope.csv")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTestCLI().RootCommand()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(append(tt.args, "--no-cache"))
			err := root.Execute()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCommandsUnwritableOutput(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeCSV(t, dir)
	missing := filepath.Join(dir, "no-such-dir")

	tests := []struct {
		name string
		args []string
	}{
		{"render", []string{"render", input, "-f", "svg", "-o", filepath.Join(missing, "figure.svg")}},
		{"layout", []string{"layout", input, "-o", filepath.Join(missing, "layout.json")}},
		{"inspect", []string{"inspect", input, "-f", "dot", "-o", filepath.Join(missing, "regions.dot")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTestCLI().RootCommand()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(append(tt.args, "--no-cache"))
			err := root.Execute()
			if !errors.IsRender(err) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeRender)
			}
			if !stderrors.Is(err, fs.ErrNotExist) {
				t.Errorf("error = %v, want it to wrap the OS error", err)
			}
		})
	}
}

func TestDemoCommand(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "study.svg")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"demo", "study", "-o", out, "-f", "svg", "--correlation"})
	if err := root.Execute(); err != nil {
		t.Fatalf("demo: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "Correlation") {
		t.Error("svg should contain the correlation title")
	}
}

func TestDemoUsageListsDatasets(t *testing.T) {
	if got, want := newTestCLI().demoCommand().Use, "demo [normal|study]"; got != want {
		t.Errorf("Use = %q, want %q", got, want)
	}
}

func TestLayoutCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeCSV(t, dir)

	for _, format := range []string{"json", "bson"} {
		t.Run(format, func(t *testing.T) {
			out := filepath.Join(dir, "layout."+format)
			root := newTestCLI().RootCommand()
			root.SetArgs([]string{"layout", input, "--format", format, "-o", out, "--bins", "4"})
			if err := root.Execute(); err != nil {
				t.Fatalf("layout: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			var doc marginal.Layout
			if format == "json" {
				doc, err = marginal.UnmarshalLayout(data)
			} else {
				doc, err = marginal.UnmarshalLayoutBSON(data)
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(doc.Regions) != 3 {
				t.Errorf("regions = %d, want 3", len(doc.Regions))
			}
			main, _ := doc.Region(marginal.MainScatter)
			if main.Points != 6 {
				t.Errorf("points = %d, want 6", main.Points)
			}
		})
	}

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"layout", input, "--format", "yaml"})
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestInspectCommandDOT(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "regions.dot")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"inspect", "normal", "-f", "dot", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	dot, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"digraph", `"top" -> "main"`, `"right" -> "main"`} {
		if !bytes.Contains(dot, []byte(want)) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

package dataset

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/margins/pkg/errors"
)

func TestNormalDeterministic(t *testing.T) {
	a := Normal(DefaultSeed, 100)
	b := Normal(DefaultSeed, 100)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should yield identical samples")
	}
	c := Normal(DefaultSeed+1, 100)
	if reflect.DeepEqual(a.X, c.X) {
		t.Error("different seeds should yield different samples")
	}
	if a.Len() != 100 || len(a.Y) != 100 {
		t.Errorf("len = %d/%d, want 100", len(a.X), len(a.Y))
	}
}

func TestNormalCorrelated(t *testing.T) {
	d := Normal(DefaultSeed, 2000)
	// y = 0.5x + N(0, 0.5) gives r = 0.5/sqrt(0.5) ≈ 0.707.
	if r := Correlation(d.X, d.Y); r < 0.6 || r > 0.8 {
		t.Errorf("Correlation() = %v, want about 0.71", r)
	}
}

func TestStudyHours(t *testing.T) {
	d := StudyHours(DefaultSeed, 2000)
	s := Describe(d.X)
	if math.Abs(s.Mean-5) > 0.3 {
		t.Errorf("mean hours = %v, want about 5", s.Mean)
	}
	if math.Abs(s.Std-2) > 0.3 {
		t.Errorf("std hours = %v, want about 2", s.Std)
	}
	if d.XLabel != "Study Hours" || d.YLabel != "Exam Scores" {
		t.Errorf("labels = %q/%q", d.XLabel, d.YLabel)
	}
	if r := Correlation(d.X, d.Y); r < 0.6 {
		t.Errorf("Correlation() = %v, want strongly positive", r)
	}
}

func TestBuiltin(t *testing.T) {
	if got := Names(); !reflect.DeepEqual(got, []string{"normal", "study"}) {
		t.Errorf("Names() = %v", got)
	}

	tests := []struct {
		name string
		n    int
	}{
		{"normal", 500},
		{"study", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Builtin(tt.name, DefaultSeed)
			if err != nil {
				t.Fatalf("Builtin(%q) error: %v", tt.name, err)
			}
			if d.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", d.Len(), tt.n)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}

	if _, err := Builtin("iris", DefaultSeed); !errors.IsValidation(err) {
		t.Errorf("unknown dataset: error = %v, want validation error", err)
	}
}

func TestReadCSV(t *testing.T) {
	const data = "hours,score,name\n1,55,a\n2, 60,b\n3,65.5,c\n"

	d, err := ReadCSV(strings.NewReader(data), "", "")
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if !reflect.DeepEqual(d.X, []float64{1, 2, 3}) || !reflect.DeepEqual(d.Y, []float64{55, 60, 65.5}) {
		t.Errorf("got x=%v y=%v", d.X, d.Y)
	}
	if d.XLabel != "hours" || d.YLabel != "score" {
		t.Errorf("labels = %q/%q", d.XLabel, d.YLabel)
	}

	d, err = ReadCSV(strings.NewReader(data), "score", "hours")
	if err != nil {
		t.Fatalf("ReadCSV(named) error: %v", err)
	}
	if d.X[0] != 55 || d.Y[0] != 1 {
		t.Errorf("named columns not honoured: x=%v y=%v", d.X, d.Y)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		xcol, ycol string
	}{
		{"empty", "", "", ""},
		{"header only", "x,y\n", "", ""},
		{"one column", "x\n1\n", "", ""},
		{"missing column", "x,y\n1,2\n", "hours", ""},
		{"not a number", "x,y\n1,abc\n", "", ""},
		{"ragged", "x,y\n1,2,3\n", "", ""},
		{"nan", "x,y\n1,NaN\n", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), tt.xcol, tt.ycol)
			if !errors.IsValidation(err) {
				t.Errorf("ReadCSV() error = %v, want validation error", err)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(`{"x_label":"a","x":[1,2],"y":[3,4]}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if d.XLabel != "a" || d.Len() != 2 {
		t.Errorf("got %+v", d)
	}

	if _, err := ReadJSON(strings.NewReader(`{"x":[1,2],"y":[3]}`)); !errors.IsValidation(err) {
		t.Errorf("mismatched lengths: error = %v", err)
	}
	if _, err := ReadJSON(strings.NewReader(`{`)); !errors.IsValidation(err) {
		t.Errorf("truncated: error = %v", err)
	}
}

func TestReadYAML(t *testing.T) {
	d, err := ReadYAML(strings.NewReader("name: demo\nx: [1, 2, 3]\ny: [2, 4, 6]\n"))
	if err != nil {
		t.Fatalf("ReadYAML() error: %v", err)
	}
	if d.Name != "demo" || d.Len() != 3 {
		t.Errorf("got %+v", d)
	}
	if _, err := ReadYAML(strings.NewReader("x: [1]\n")); !errors.IsValidation(err) {
		t.Errorf("missing y: error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	d, err := Load(write("scores.csv", "h,s\n1,2\n3,4\n"), "", "")
	if err != nil {
		t.Fatalf("Load(csv) error: %v", err)
	}
	if d.Name != "scores" {
		t.Errorf("Name = %q, want scores", d.Name)
	}

	if _, err := Load(write("pts.json", `{"x":[1],"y":[2]}`), "", ""); err != nil {
		t.Errorf("Load(json) error: %v", err)
	}
	if _, err := Load(write("pts.yml", "x: [1]\ny: [2]\n"), "", ""); err != nil {
		t.Errorf("Load(yml) error: %v", err)
	}

	if _, err := Load(write("pts.xlsx", ""), "", ""); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(xlsx) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if _, err := Load(filepath.Join(dir, "nope.csv"), "", ""); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

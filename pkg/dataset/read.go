package dataset

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/margins/pkg/errors"
)

// ReadCSV reads a CSV table with a header row and returns the columns named
// xcol and ycol. Empty names select the first and second column.
func ReadCSV(r io.Reader, xcol, ycol string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeValidation, "csv: empty input")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, err, "csv: read header")
	}

	xi, yi, err := columns(header, xcol, ycol)
	if err != nil {
		return nil, err
	}

	d := &Dataset{XLabel: header[xi], YLabel: header[yi]}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeValidation, err, "csv: line %d", line)
		}
		x, err := parseFloat(rec[xi])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeValidation, err, "csv: line %d column %q", line, header[xi])
		}
		y, err := parseFloat(rec[yi])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeValidation, err, "csv: line %d column %q", line, header[yi])
		}
		d.X = append(d.X, x)
		d.Y = append(d.Y, y)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func columns(header []string, xcol, ycol string) (int, int, error) {
	if len(header) < 2 {
		return 0, 0, errors.New(errors.ErrCodeValidation, "csv: need at least two columns, got %d", len(header))
	}
	find := func(name string, fallback int) (int, error) {
		if name == "" {
			return fallback, nil
		}
		if i := slices.Index(header, name); i >= 0 {
			return i, nil
		}
		return 0, errors.New(errors.ErrCodeValidation, "csv: no column %q (have %s)", name, strings.Join(header, ", "))
	}
	xi, err := find(xcol, 0)
	if err != nil {
		return 0, 0, err
	}
	yi, err := find(ycol, 1)
	if err != nil {
		return 0, 0, err
	}
	return xi, yi, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ReadJSON reads a {"x": [...], "y": [...]} document.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, err, "json: decode dataset")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadYAML reads a document with x and y sequences.
func ReadYAML(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, err, "yaml: decode dataset")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads a dataset file, choosing the parser from its extension. xcol
// and ycol only apply to CSV files.
func Load(path, xcol, ycol string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	var d *Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		d, err = ReadCSV(f, xcol, ycol)
	case ".json":
		d, err = ReadJSON(f)
	case ".yaml", ".yml":
		d, err = ReadYAML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q (use .csv, .json or .yaml)", ext)
	}
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

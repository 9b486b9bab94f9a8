package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/margins/pkg/errors"
	"github.com/matzehuels/margins/pkg/marginal"
)

// Output formats.
const (
	PNG  = "png"
	JPEG = "jpeg"
	TIFF = "tiff"
	SVG  = "svg"
	PDF  = "pdf"
)

// DefaultDPI is the raster resolution when [WithDPI] is not given.
const DefaultDPI = 100

// MaxPixels caps the size of a raster image, width times height.
const MaxPixels = 64 << 20

var formats = []string{PNG, JPEG, TIFF, SVG, PDF}

var aliases = map[string]string{"jpg": JPEG, "tif": TIFF}

var contentTypes = map[string]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	TIFF: "image/tiff",
	SVG:  "image/svg+xml",
	PDF:  "application/pdf",
}

// Formats returns the supported output formats.
func Formats() []string { return slices.Clone(formats) }

// ParseFormat normalizes a format name or file extension ("jpg", ".PNG").
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(s, "."))
	if a, ok := aliases[f]; ok {
		f = a
	}
	if !slices.Contains(formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (supported: %s)", s, strings.Join(formats, ", "))
	}
	return f, nil
}

// ContentType returns the MIME type of a format, or "" if it is unknown.
func ContentType(format string) string {
	f, err := ParseFormat(format)
	if err != nil {
		return ""
	}
	return contentTypes[f]
}

// Option configures encoding.
type Option func(*encoder)

type encoder struct {
	dpi int
}

// WithDPI sets the raster resolution. Values below one are ignored.
func WithDPI(dpi int) Option {
	return func(e *encoder) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// Encode renders fig in the given format. Raster formats larger than
// [MaxPixels] at the chosen DPI are rejected as invalid input.
func Encode(fig *marginal.Figure, format string, opts ...Option) (data []byte, err error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if fig == nil {
		return nil, errors.New(errors.ErrCodeValidation, "nil figure")
	}

	e := encoder{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&e)
	}
	if raster(f) {
		px := fig.Size.Width * fig.Size.Height * float64(e.dpi) * float64(e.dpi)
		if !(px <= MaxPixels) {
			return nil, errors.New(errors.ErrCodeValidation,
				"%s of %vx%v in at %d dpi exceeds %d pixels", f, fig.Size.Width, fig.Size.Height, e.dpi, MaxPixels)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			data, err = nil, errors.New(errors.ErrCodeRender, "encode %s: %v", f, r)
		}
	}()

	w := vg.Length(fig.Size.Width) * vg.Inch
	h := vg.Length(fig.Size.Height) * vg.Inch
	c := e.canvas(f, w, h)

	Draw(draw.New(c), fig)

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode %s", f)
	}
	return buf.Bytes(), nil
}

func raster(format string) bool {
	return format == PNG || format == JPEG || format == TIFF
}

func (e encoder) canvas(format string, w, h vg.Length) vg.CanvasWriterTo {
	switch format {
	case SVG:
		return vgsvg.New(w, h)
	case PDF:
		return vgpdf.New(w, h)
	}

	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(e.dpi), vgimg.UseBackgroundColor(color.White))
	switch format {
	case JPEG:
		return vgimg.JpegCanvas{Canvas: img}
	case TIFF:
		return vgimg.TiffCanvas{Canvas: img}
	default:
		return vgimg.PngCanvas{Canvas: img}
	}
}

// WriteFile renders fig to path, choosing the format from its extension.
func WriteFile(fig *marginal.Figure, path string, opts ...Option) error {
	ext := filepath.Ext(path)
	if ext == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %q: no file extension", path)
	}
	data, err := Encode(fig, ext, opts...)
	if err != nil {
		return err
	}
	return WriteArtifact(path, data)
}

// WriteArtifact writes encoded output to path. A failed write is a
// RENDER_FAILED error wrapping the OS error.
func WriteArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return nil
}

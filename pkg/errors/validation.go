package errors

import (
	"math"
	"unicode"
	"unicode/utf8"
)

const maxLabelLength = 256

// ValidateSamples rejects empty, mismatched or non-finite sample vectors.
func ValidateSamples(x, y []float64) error {
	switch {
	case len(x) == 0 || len(y) == 0:
		return New(ErrCodeValidation, "empty input: need at least one sample (len(x)=%d, len(y)=%d)", len(x), len(y))
	case len(x) != len(y):
		return New(ErrCodeValidation, "x and y differ in length: %d != %d", len(x), len(y))
	}
	for _, s := range [...]struct {
		name string
		vs   []float64
	}{{"x", x}, {"y", y}} {
		for i, v := range s.vs {
			if !finite(v) {
				return New(ErrCodeValidation, "%s[%d] is not finite: %v", s.name, i, v)
			}
		}
	}
	return nil
}

// ValidateFigSize requires a positive, finite width and height in inches.
func ValidateFigSize(width, height float64) error {
	if width > 0 && height > 0 && finite(width) && finite(height) {
		return nil
	}
	return New(ErrCodeValidation, "figure size must be positive, got %vx%v", width, height)
}

// ValidateBins requires at least one histogram bin.
func ValidateBins(bins int) error {
	if bins < 1 {
		return New(ErrCodeValidation, "histogram bins must be >= 1, got %d", bins)
	}
	return nil
}

// ValidateLabel bounds the length of a title or axis label and rejects
// control characters other than '\n'. field names the label in the message.
func ValidateLabel(field, label string) error {
	if utf8.RuneCountInString(label) > maxLabelLength {
		return New(ErrCodeValidation, "%s too long (max %d characters)", field, maxLabelLength)
	}
	for _, r := range label {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeValidation, "%s contains invalid control characters", field)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package errors

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeValidation, "bins: %d", 0)
	if err.Code != ErrCodeValidation || err.Message != "bins: 0" {
		t.Errorf("New() = %+v", err)
	}
	if got, want := err.Error(), "INVALID_INPUT: bins: 0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(ErrCodeRender, fs.ErrPermission, "write %s", "out.png")
	if errors.Unwrap(wrapped) != fs.ErrPermission {
		t.Errorf("Unwrap() = %v, want fs.ErrPermission", errors.Unwrap(wrapped))
	}
	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("cause not reachable through errors.Is")
	}
	if got, want := wrapped.Error(), "RENDER_FAILED: write out.png: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		code       Code
		validation bool
		render     bool
		message    string
	}{
		{"validation", New(ErrCodeValidation, "x"), ErrCodeValidation, true, false, "x"},
		{"format", New(ErrCodeInvalidFormat, "gif"), ErrCodeInvalidFormat, true, false, "gif"},
		{"color", Wrap(ErrCodeInvalidColor, fs.ErrInvalid, "nope"), ErrCodeInvalidColor, true, false, "nope"},
		{"render", Wrap(ErrCodeRender, fs.ErrNotExist, "encode"), ErrCodeRender, false, true, "encode"},
		{"not found", New(ErrCodeFileNotFound, "data.csv"), ErrCodeFileNotFound, false, false, "data.csv"},
		{"internal", New(ErrCodeInternal, "panic"), ErrCodeInternal, false, false, "panic"},
		{"fmt wrapped", fmtWrap(New(ErrCodeInvalidFormat, "gif")), ErrCodeInvalidFormat, true, false, "gif"},
		{"plain", errors.New("plain"), "", false, false, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.validation)
			}
			if got := IsRender(tt.err); got != tt.render {
				t.Errorf("IsRender() = %v, want %v", got, tt.render)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}
}

func fmtWrap(err error) error { return errors.Join(errors.New("context"), err) }

func TestNilError(t *testing.T) {
	if GetCode(nil) != "" || Is(nil, ErrCodeValidation) || IsValidation(nil) || IsRender(nil) {
		t.Error("nil error must not carry a code")
	}
}

func TestCodeValidation(t *testing.T) {
	for _, c := range []Code{ErrCodeValidation, ErrCodeInvalidFormat, ErrCodeInvalidColor} {
		if !c.Validation() {
			t.Errorf("%s.Validation() = false, want true", c)
		}
	}
	for _, c := range []Code{ErrCodeFileNotFound, ErrCodeRender, ErrCodeInternal, ""} {
		if c.Validation() {
			t.Errorf("%q.Validation() = true, want false", c)
		}
	}
}

func TestOutermostCodeWins(t *testing.T) {
	err := Wrap(ErrCodeRender, New(ErrCodeValidation, "inner"), "outer")
	if GetCode(err) != ErrCodeRender {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeRender)
	}
	if IsValidation(err) {
		t.Error("IsValidation() = true for a render error wrapping a validation error")
	}
	if UserMessage(err) != "outer" {
		t.Errorf("UserMessage() = %q, want outer", UserMessage(err))
	}
	if !strings.Contains(err.Error(), "INVALID_INPUT: inner") {
		t.Errorf("Error() should include the cause: %v", err)
	}
}

// Package errors defines the coded errors shared by every margins package.
//
// Codes starting with INVALID_ mean the input was rejected before anything
// was laid out or drawn; the CLI reports them as usage errors and the HTTP
// API answers 400. RENDER_FAILED means a drawing or export backend failed,
// and keeps the backend error as its cause.
//
//	if err := errors.ValidateSamples(x, y); errors.IsValidation(err) {
//	    ...
//	}
//	return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error class.
type Code string

const (
	ErrCodeValidation    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeRender       Code = "RENDER_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Validation reports whether c is one of the INVALID_* codes.
func (c Code) Validation() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error carries a Code, a message meant for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether err's code is code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsValidation reports whether err carries an INVALID_* code.
func IsValidation(err error) bool { return GetCode(err).Validation() }

// IsRender reports whether err came from a drawing or export backend.
func IsRender(err error) bool { return Is(err, ErrCodeRender) }

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for other errors.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

// Package errors provides error wrapping with structured logging annotations.
//
// It is a drop-in replacement for the standard library errors package with
// two additions: Wrap attaches [slog.Attr] annotations and the call site to
// an error, and SlogError turns the accumulated annotations into a single
// [slog.Attr] for logging.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// AnnotatedError is an error with a message, structured logging annotations,
// and the source location of the Wrap call that created it.
type AnnotatedError struct {
	msg    string
	source string
	attrs  []slog.Attr
	err    error
}

// Wrap annotates err with a message and optional [slog.Attr] annotations.
// The caller's source location is recorded for logging with SlogError.
func Wrap(err error, message string, attrs ...slog.Attr) error {
	return &AnnotatedError{
		msg:    message,
		source: callerSource(2), //nolint:mnd // skip callerSource and Wrap.
		attrs:  attrs,
		err:    err,
	}
}

// NewSentinel creates an error intended for use as a sentinel value compared
// with [Is]. Sentinels carry no annotations or source location.
func NewSentinel(message string) error {
	return stderrors.New(message)
}

// Error implements the error interface.
func (e *AnnotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *AnnotatedError) Unwrap() error {
	return e.err
}

// SlogError converts an error to a [slog.Attr] containing the error message,
// the annotations collected from every [AnnotatedError] in the chain, and the
// source location of the outermost Wrap call.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		annotations []slog.Attr
		source      string
	)
	for chainErr := err; chainErr != nil; chainErr = Unwrap(chainErr) {
		var annotated *AnnotatedError
		if ok := stderrors.As(chainErr, &annotated); !ok {
			break
		}
		annotations = append(annotations, annotated.attrs...)
		if source == "" {
			source = annotated.source
		}
		chainErr = annotated
	}

	args := []any{slog.String("message", err.Error())}
	if source != "" {
		args = append(args, slog.String("source", source))
	}
	if len(annotations) > 0 {
		args = append(args, slog.Attr{Key: "annotations", Value: slog.GroupValue(annotations...)})
	}
	return slog.Group("error", args...)
}

// callerSource returns "file.go:line" for the caller skip frames up the stack.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// The functions below delegate to the standard library so that callers only
// need to import this package.

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

package errors_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/okoskine/fitcoach/internal/errors"
	"github.com/okoskine/fitcoach/internal/testhelpers"
)

func TestAnnotatedError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  errors.NewSentinel("simple error"),
			want: "simple error",
		},
		{
			name: "wrapped once",
			err:  errors.Wrap(errors.NewSentinel("root cause"), "context", slog.String("key", "value")),
			want: "context: root cause",
		},
		{
			name: "wrapped twice",
			err: errors.Wrap(
				errors.Wrap(errors.NewSentinel("root cause"), "inner context"),
				"outer context",
			),
			want: "outer context: inner context: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAndAs(t *testing.T) {
	sentinel := errors.NewSentinel("root error")
	wrapped := errors.Wrap(sentinel, "context")

	if !errors.Is(wrapped, sentinel) {
		t.Error("Is() = false, want true for wrapped sentinel")
	}
	if errors.Is(wrapped, errors.NewSentinel("different error")) {
		t.Error("Is() = true, want false for unrelated sentinel")
	}

	var annotated *errors.AnnotatedError
	if !errors.As(wrapped, &annotated) {
		t.Error("As() = false, want true for *AnnotatedError target")
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.NewSentinel("root error")
	wrapped := fmt.Errorf("context: %w", sentinel)

	if unwrapped := errors.Unwrap(wrapped); !errors.Is(unwrapped, sentinel) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, sentinel)
	}
	if unwrapped := errors.Unwrap(sentinel); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestSlogError(t *testing.T) {
	err := errors.Wrap(errors.NewSentinel("root cause"), "context",
		slog.String("key", "value"), slog.Duration("duration", time.Second))

	var buf bytes.Buffer
	logger := testhelpers.NewLogger(&buf)
	logger.Info("test", errors.SlogError(err))
	logLine := buf.String()

	expectedContent := []string{
		"error.message=\"context: root cause\"",
		"error.annotations.key=value",
		"error.annotations.duration=1s",
		// The source location must point at the Wrap call site in this file,
		// not at the errors package internals.
		"error.source=annotatederror_test.go:",
	}
	for _, content := range expectedContent {
		if !strings.Contains(logLine, content) {
			t.Errorf("expected log line %s to contain %s", logLine, content)
		}
	}
	if strings.Contains(logLine, "annotatederror.go") {
		t.Error("expected annotatederror.go NOT to be in log line")
	}

	// Must not panic on nil errors or joined errors.
	errors.SlogError(nil)
	errors.SlogError(errors.Join(nil, nil, errors.NewSentinel("sentinel"), errors.New("test")))
	errors.SlogError(fmt.Errorf("test: %w", errors.NewSentinel("sentinel")))
}

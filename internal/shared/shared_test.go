package shared

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  log.Level
	}{
		{name: "debug", input: "debug", want: log.DebugLevel},
		{name: "mixed case and spaces", input: "  WARN ", want: log.WarnLevel},
		{name: "unknown falls back to info", input: "verbose", want: log.InfoLevel},
		{name: "empty falls back to info", input: "", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggers(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "component=test") {
			t.Errorf("unexpected log output: %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "plx.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger returned error: %v", err)
		}
		logger.Info("written")

		got := mustRead(t, path)
		if !strings.Contains(got, "written") {
			t.Errorf("expected log file to contain message, got %q", got)
		}
	})
}

func TestStatusError(t *testing.T) {
	err := error(&StatusError{Method: "PUT", Path: "/items", StatusCode: 404, Body: "not found\n"})

	if !errors.Is(err, ErrServer) {
		t.Error("expected StatusError to unwrap to ErrServer")
	}
	if !strings.Contains(err.Error(), "PUT /items returned status 404: not found") {
		t.Errorf("unexpected message: %v", err)
	}

	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != 404 {
		t.Error("expected errors.As to recover the status code")
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string of length 36, got %d", len(a))
	}
}

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "debug", want: DebugLevel},
		{in: "info", want: InfoLevel},
		{in: "warn", want: WarnLevel},
		{in: "warning", want: WarnLevel},
		{in: "ERROR", want: ErrorLevel},
		{in: "fatal", want: FatalLevel},
		{in: "nonsense", want: InfoLevel},
		{in: "", want: InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComponentInheritsLevelAndOutput(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&Config{Level: "warn", Output: &buf})

	sub := parent.Component("storage")
	sub.Info("below threshold")
	sub.Warn("at threshold")

	out := buf.String()
	if strings.Contains(out, "below threshold") {
		t.Error("component logger did not inherit the parent level")
	}
	if !strings.Contains(out, "at threshold") {
		t.Error("component logger did not write to the parent output")
	}
	if !strings.Contains(out, "storage") {
		t.Error("component name missing from output")
	}
}

func TestWithAttachesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Output: &buf}).With("txid", "deadbeef")

	logger.Info("saved")
	if out := buf.String(); !strings.Contains(out, "deadbeef") {
		t.Errorf("attached field missing from output: %s", out)
	}
}

package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log := newWithSink(false, zapcore.AddSync(&buf), false)

	log.With("lesson", "greetings").Warn("skipped sentence", "ordinal", "01")
	log.Sync()

	out := buf.String()
	for _, want := range []string{"WARN", "skipped sentence", `"lesson": "greetings"`, `"ordinal": "01"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestLoggerDebugLevel(t *testing.T) {
	var quiet, verbose bytes.Buffer

	newWithSink(false, zapcore.AddSync(&quiet), false).Debug("hidden")
	newWithSink(true, zapcore.AddSync(&verbose), false).Debug("shown")

	if quiet.Len() != 0 {
		t.Errorf("debug message written without verbose: %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "shown") {
		t.Errorf("debug message missing with verbose: %q", verbose.String())
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	log.With("k", "v").Error("still nothing")
}

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Level(false))
	l.Debug("hidden")
	l.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info message missing: %q", out)
	}

	buf.Reset()
	l = New(&buf, Level(true))
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug message missing at debug level: %q", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := New(&bytes.Buffer{}, log.WarnLevel)
	ctx := WithLogger(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Errorf("FromContext returned a different logger")
	}
	if got := FromContext(context.Background()); got != log.Default() {
		t.Errorf("FromContext without logger should return log.Default()")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(New(&buf, log.InfoLevel))
	p.Done("rendered plan", "cells", 9)
	out := buf.String()
	for _, want := range []string{"rendered plan", "cells=9", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

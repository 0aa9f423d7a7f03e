package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seebs.net/kaleido/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMetrics(t *testing.T) {
	out, err := run(t, "metrics", "--radius", "300")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	for _, want := range []string{"258.9", "517.8", "149.5", "448.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output lacks %s:\n%s", want, out)
		}
	}
	if _, err := run(t, "metrics", "--radius", "1"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("metrics --radius 1 error = %v", err)
	}
}

func TestPlan(t *testing.T) {
	out, err := run(t, "plan", "--variant", "six")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "1600x1200") || !strings.Contains(out, "20") {
		t.Errorf("plan output:\n%s", out)
	}
	out, err = run(t, "plan", "--width", "768", "--height", "768", "--cells")
	if err != nil {
		t.Fatalf("plan --cells: %v", err)
	}
	// header plus nine cells
	if lines := strings.Count(out, "\n"); lines < 4+1+9 {
		t.Errorf("plan --cells printed %d lines:\n%s", lines, out)
	}
	if _, err := run(t, "plan", "--variant", "seven"); !errors.Is(err, errors.ErrCodeUnknownVariant) {
		t.Errorf("unknown variant error = %v", err)
	}
}

func TestFan(t *testing.T) {
	out, err := run(t, "fan", "-r", "100")
	if err != nil {
		t.Fatalf("fan: %v", err)
	}
	if !strings.Contains(out, "0-1-2") || !strings.Contains(out, "0-6-1") {
		t.Errorf("fan output:\n%s", out)
	}
}

func TestVariantsAndCheck(t *testing.T) {
	out, err := run(t, "variants")
	if err != nil {
		t.Fatalf("variants: %v", err)
	}
	for _, name := range []string{"dogs", "trio", "six"} {
		if !strings.Contains(out, name) {
			t.Errorf("variants output lacks %s:\n%s", name, out)
		}
	}

	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	os.WriteFile(good, []byte("[[variant]]\nname = \"tiny\"\nwidth = 100\nheight = 100\nradius = 30\n"), 0o644)
	out, err = run(t, "check", good)
	if err != nil || !strings.Contains(out, "tiny") {
		t.Errorf("check good: %v\n%s", err, out)
	}
	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[[variant]]\nname = \"tiny\"\nwidth = 100\nheight = 100\nradius = 0.5\n"), 0o644)
	if _, err := run(t, "check", bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("check bad error = %v", err)
	}
}

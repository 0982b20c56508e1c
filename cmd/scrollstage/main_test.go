package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPagesListsBundledPages(t *testing.T) {
	out, err := execute(t, "pages")
	if err != nil {
		t.Fatalf("pages: %v\n%s", err, out)
	}
	for _, want := range []string{"landing", "process", "(min-width: 769px)", "always"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	page := `name: bad
layout: {name: root}
groups:
  - name: broken
    when: "(min-width: wide)"
`
	if err := os.WriteFile(bad, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "validate", "landing", bad)
	if err == nil {
		t.Fatalf("expected error, got none:\n%s", out)
	}
	if !strings.Contains(out, "horizontal-track") {
		t.Errorf("landing rules not listed:\n%s", out)
	}
	if !strings.Contains(out, "bad.yaml") {
		t.Errorf("bad file not reported:\n%s", out)
	}
}

func TestReplaySnapsToNearestPanel(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "session.json")
	data := `{"steps": [
		{"action": "scrollTo", "from": 0, "to": 1400, "frames": 30},
		{"action": "wait", "frames": 60},
		{"action": "snapshot", "label": "settled"}
	]}`
	if err := os.WriteFile(script, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "replay", "landing", "--script", script, "--width", "1024", "--height", "768")
	if err != nil {
		t.Fatalf("replay: %v\n%s", err, out)
	}
	// 1400 of 2048 px is progress 0.68; the middle of three stops is 0.5.
	for _, want := range []string{"settled", "horizontal-track", "snap-step", "0.500"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

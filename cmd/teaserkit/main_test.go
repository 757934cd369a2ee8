package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/teaserkit/internal/director"
)

func TestLatestScenario(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	missing := filepath.Join(t.TempDir(), "scenarios")
	if got := latestScenario(missing, logger); got != "" {
		t.Errorf("latestScenario on a missing dir = %q, want empty", got)
	}
	if !strings.Contains(buf.String(), "No scenario found") || !strings.Contains(buf.String(), missing) {
		t.Errorf("missing scenarios dir should be logged, got %q", buf.String())
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := director.WriteScenario(sampleScenario("wad"), path); err != nil {
		t.Fatal(err)
	}
	if got := latestScenario(dir, logger); got != path {
		t.Errorf("latestScenario = %q, want %q", got, path)
	}
}

func TestSampleScenario(t *testing.T) {
	s := sampleScenario("ea")
	if s.Theme.ID != "ea" || len(s.Clips) != 3 {
		t.Errorf("sample scenario = %+v", s)
	}
}

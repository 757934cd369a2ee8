package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateScenarioPath(t *testing.T) {
	path := GenerateScenarioPath("scenarios")

	if !strings.HasPrefix(filepath.Base(path), "scenario_") {
		t.Errorf("Path should start with 'scenario_': %s", path)
	}
	if filepath.Dir(path) != "scenarios" {
		t.Errorf("Path should be in scenarios: %s", path)
	}
	if filepath.Ext(path) != ".yaml" {
		t.Errorf("Path should be a yaml file: %s", path)
	}
}

func TestFindLatestScenario(t *testing.T) {
	testDir := t.TempDir()

	files := []string{
		filepath.Join(testDir, "scenario_2026-02-12_10-00-00.yaml"),
		filepath.Join(testDir, "scenario_2026-02-13_01-00-00.yaml"),
		filepath.Join(testDir, "scenario_2026-02-11_15-30-00.yml"),
	}

	for i, f := range files {
		if err := os.WriteFile(f, []byte("title: test"), 0o644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(f, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}
	// newer, but not a scenario
	if err := os.WriteFile(filepath.Join(testDir, "plan.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	latest, err := FindLatestScenario(testDir)
	if err != nil {
		t.Fatalf("FindLatestScenario failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}

	if _, err := FindLatestScenario(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}
}

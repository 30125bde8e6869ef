package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp creates a temp directory, writes config.yaml into it when
// content is non-empty, and chdirs there for the duration of the test.
func chdirTemp(t *testing.T, content string) {
	t.Helper()

	tmpDir := t.TempDir()
	if content != "" {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	chdirTemp(t, `
env: "test"
snapshot_path: "exports/tables.json"
analysis:
  max_concurrent: 2
  graph_depth: 5
`)

	// Clear env vars that might interfere with test
	os.Unsetenv("ANALYSIS_MAX_CONCURRENT")
	os.Unsetenv("ANALYSIS_GRAPH_DEPTH")

	// Set env vars to override YAML values
	t.Setenv("SNAPSHOT_PATH", "exports/override.yaml")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.SnapshotPath != "exports/override.yaml" {
		t.Errorf("expected SnapshotPath=exports/override.yaml (from env), got %s", cfg.SnapshotPath)
	}
	if cfg.Env != "production" {
		t.Errorf("expected Env=production (from env), got %s", cfg.Env)
	}
	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}

	// Verify YAML values used where no env override exists
	if cfg.Analysis.MaxConcurrent != 2 {
		t.Errorf("expected MaxConcurrent=2 (from yaml), got %d", cfg.Analysis.MaxConcurrent)
	}
	if cfg.Analysis.GraphDepth != 5 {
		t.Errorf("expected GraphDepth=5 (from yaml), got %d", cfg.Analysis.GraphDepth)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t, `
env: "test"
`)

	os.Unsetenv("SNAPSHOT_PATH")
	os.Unsetenv("ANALYSIS_MAX_CONCURRENT")
	os.Unsetenv("ANALYSIS_GRAPH_DEPTH")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.SnapshotPath != "snapshot.json" {
		t.Errorf("expected SnapshotPath=snapshot.json (default), got %s", cfg.SnapshotPath)
	}
	if cfg.Analysis.MaxConcurrent != 1 {
		t.Errorf("expected MaxConcurrent=1 (default), got %d", cfg.Analysis.MaxConcurrent)
	}
	if cfg.Analysis.GraphDepth != 3 {
		t.Errorf("expected GraphDepth=3 (default), got %d", cfg.Analysis.GraphDepth)
	}
	if cfg.Log.Level != "" {
		t.Errorf("expected empty Log.Level (default), got %s", cfg.Log.Level)
	}
	if cfg.Impact.IsRequested() {
		t.Error("expected no impact query by default")
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	chdirTemp(t, "")

	_, err := Load("test-version")
	if err == nil {
		t.Error("expected error when config.yaml is missing")
	}
}

func TestLoad_InvalidMaxConcurrent(t *testing.T) {
	chdirTemp(t, `
env: "test"
analysis:
  max_concurrent: -2
`)

	os.Unsetenv("ANALYSIS_MAX_CONCURRENT")

	_, err := Load("test-version")
	if err == nil {
		t.Fatal("expected error for negative max_concurrent")
	}
	if !strings.Contains(err.Error(), "max_concurrent") {
		t.Errorf("expected error to mention max_concurrent, got: %v", err)
	}
}

func TestLoad_InvalidGraphDepth(t *testing.T) {
	chdirTemp(t, `
env: "test"
analysis:
  graph_depth: -1
`)

	os.Unsetenv("ANALYSIS_GRAPH_DEPTH")

	_, err := Load("test-version")
	if err == nil {
		t.Fatal("expected error for negative graph_depth")
	}
	if !strings.Contains(err.Error(), "graph_depth") {
		t.Errorf("expected error to mention graph_depth, got: %v", err)
	}
}

func TestLoad_ImpactFromEnv(t *testing.T) {
	chdirTemp(t, `
env: "test"
`)

	t.Setenv("IMPACT_TABLE", "items")
	t.Setenv("IMPACT_FIELD", "id")
	t.Setenv("IMPACT_VALUE", "1003")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.Impact.IsRequested() {
		t.Error("expected impact query to be requested")
	}
	if cfg.Impact.IsUpdate() {
		t.Error("expected delete query when new_value is empty")
	}

	t.Setenv("IMPACT_NEW_VALUE", "2003")
	cfg, err = Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.Impact.IsUpdate() {
		t.Error("expected update query when new_value is set")
	}
}

func TestLoad_NewValueWithoutTarget(t *testing.T) {
	chdirTemp(t, `
env: "test"
impact:
  new_value: "2003"
`)

	os.Unsetenv("IMPACT_TABLE")
	os.Unsetenv("IMPACT_FIELD")
	os.Unsetenv("IMPACT_VALUE")

	_, err := Load("test-version")
	if err == nil {
		t.Fatal("expected error for new_value without a target")
	}
	if !strings.Contains(err.Error(), "new_value") {
		t.Errorf("expected error to mention new_value, got: %v", err)
	}
}

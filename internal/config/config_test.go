package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeTempConfig(t, "run.yaml", `
run:
  name: yaml-test
  description: YAML loading test
  max: "1e9"
  workers: 8
  progress: false
`)

	config, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load YAML config: %v", err)
	}

	if config.Run.Name != "yaml-test" {
		t.Errorf("expected name yaml-test, got %s", config.Run.Name)
	}
	if config.Run.Max != "1e9" {
		t.Errorf("expected max 1e9, got %s", config.Run.Max)
	}
	if config.Run.Workers == nil || *config.Run.Workers != 8 {
		t.Errorf("expected 8 workers, got %v", config.Run.Workers)
	}
	if config.Run.Progress == nil || *config.Run.Progress {
		t.Error("expected progress false")
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeTempConfig(t, "run.json", `{
  "run": {
    "name": "json-test",
    "max": "1000000",
    "workers": 0
  }
}`)

	config, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load JSON config: %v", err)
	}

	if config.Run.Name != "json-test" {
		t.Errorf("expected name json-test, got %s", config.Run.Name)
	}
	// workers: 0 は「スレッド不使用」の明示指定であり、未指定と区別される
	if config.Run.Workers == nil || *config.Run.Workers != 0 {
		t.Errorf("expected explicit 0 workers, got %v", config.Run.Workers)
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	path := writeTempConfig(t, "run.toml", "run = {}")
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := LoadFile("/nonexistent/run.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseMax(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"1000000", 1_000_000, false},
		{"1e6", 1_000_000, false},
		{"1e12", 1_000_000_000_000, false},
		{"2.5e3", 2500, false},
		{" 1e9 ", 1_000_000_000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-100", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMax(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMax(%q) expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMax(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMax(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	workers := 4
	valid := &FileConfig{Run: RunConfig{Max: "1e9", Workers: &workers}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tooSmall := &FileConfig{Run: RunConfig{Max: "5"}}
	if err := tooSmall.Validate(); err == nil {
		t.Error("expected error for max below minimum")
	}

	tooLarge := &FileConfig{Run: RunConfig{Max: "1e16"}}
	if err := tooLarge.Validate(); err == nil {
		t.Error("expected error for max above maximum")
	}

	badWorkers := 101
	overLimit := &FileConfig{Run: RunConfig{Workers: &badWorkers}}
	if err := overLimit.Validate(); err == nil {
		t.Error("expected error for worker count above limit")
	}

	empty := &FileConfig{}
	if err := empty.Validate(); err != nil {
		t.Errorf("empty config must validate (defaults apply later): %v", err)
	}
}

func TestToRunConfig(t *testing.T) {
	workers := 0
	progress := false
	file := &FileConfig{Run: RunConfig{
		Name:     "converted",
		Max:      "1e6",
		Workers:  &workers,
		Progress: &progress,
	}}

	config, err := file.ToRunConfig()
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}

	if config.Name != "converted" {
		t.Errorf("expected name converted, got %s", config.Name)
	}
	if config.Max != 1_000_000 {
		t.Errorf("expected max 1000000, got %d", config.Max)
	}
	if config.Workers != 0 {
		t.Errorf("explicit 0 workers must override default, got %d", config.Workers)
	}
	if config.Progress {
		t.Error("explicit progress false must override default")
	}
}

func TestToRunConfigDefaults(t *testing.T) {
	file := &FileConfig{}

	config, err := file.ToRunConfig()
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}

	if config.Max != 100_000_000 {
		t.Errorf("expected default max, got %d", config.Max)
	}
	if config.Workers != 4 {
		t.Errorf("expected default workers, got %d", config.Workers)
	}
}

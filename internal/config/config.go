package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"prime-grid/internal/pool"
	"prime-grid/internal/runner"

	"gopkg.in/yaml.v3"
)

// FileConfig は設定ファイルの構造
type FileConfig struct {
	Run RunConfig `yaml:"run" json:"run"`
}

// RunConfig は実行設定
// Max は "1000000000" のほか "1e12" のような指数表記も受け付ける
type RunConfig struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Max         string `yaml:"max" json:"max"`
	Workers     *int   `yaml:"workers" json:"workers"`
	Progress    *bool  `yaml:"progress" json:"progress"`
}

// LoadFile は設定ファイルを読み込む
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// ParseMax は上限値の文字列を解釈する
// 指数表記（"1e12"）と整数表記の両方を受け付ける
func ParseMax(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("max value is empty")
	}

	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid max value %q: %w", s, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("max value must be non-negative: %s", s)
	}
	return uint64(f), nil
}

// Validate は設定を検証する
func (f *FileConfig) Validate() error {
	r := f.Run

	if r.Max != "" {
		max, err := ParseMax(r.Max)
		if err != nil {
			return err
		}
		if max < runner.MinMax {
			return fmt.Errorf("run.max must be at least %d", runner.MinMax)
		}
		if max > runner.MaxMax {
			return fmt.Errorf("run.max must be no greater than %d", uint64(runner.MaxMax))
		}
	}

	if r.Workers != nil && (*r.Workers < 0 || *r.Workers > pool.MaxWorkers) {
		return fmt.Errorf("run.workers must be between 0 and %d", pool.MaxWorkers)
	}

	return nil
}

// ToRunConfig は実行設定に変換する
// 未指定の項目はデフォルト値を使う
func (f *FileConfig) ToRunConfig() (runner.Config, error) {
	config := runner.DefaultConfig()
	r := f.Run

	if r.Name != "" {
		config.Name = r.Name
	}
	if r.Description != "" {
		config.Description = r.Description
	}
	if r.Max != "" {
		max, err := ParseMax(r.Max)
		if err != nil {
			return config, err
		}
		config.Max = max
	}
	if r.Workers != nil {
		config.Workers = *r.Workers
	}
	if r.Progress != nil {
		config.Progress = *r.Progress
	}

	return config, nil
}

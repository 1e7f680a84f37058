package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"ktsuppress/internal/annotate"
)

const configFileName = "ktsuppress.toml"

type fileConfig struct {
	Log         logConfig        `toml:"log"`
	Annotations annotationConfig `toml:"annotations"`
	Run         runConfig        `toml:"run"`
	Cache       cacheConfig      `toml:"cache"`
}

type logConfig struct {
	Path string `toml:"path"`
}

type annotationConfig struct {
	Parameter string `toml:"parameter"`
	Variable  string `toml:"variable"`
	Marker    string `toml:"marker"`
}

type runConfig struct {
	Jobs   int  `toml:"jobs"`
	DryRun bool `toml:"dry_run"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// findConfig walks up from startDir looking for ktsuppress.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fileConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("log", "path") && strings.TrimSpace(cfg.Log.Path) == "" {
		return fileConfig{}, fmt.Errorf("%s: [log].path is empty", path)
	}
	if cfg.Run.Jobs < 0 {
		return fileConfig{}, fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	if err := cfg.style().Validate(); err != nil {
		return fileConfig{}, fmt.Errorf("%s: [annotations]: %w", path, err)
	}
	// relative paths in the file are relative to the file
	base := filepath.Dir(path)
	if cfg.Log.Path != "" && !filepath.IsAbs(cfg.Log.Path) {
		cfg.Log.Path = filepath.Join(base, cfg.Log.Path)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(base, cfg.Cache.Dir)
	}
	return cfg, nil
}

// style overlays the configured annotation texts on the defaults.
func (c fileConfig) style() annotate.Style {
	s := annotate.DefaultStyle()
	if c.Annotations.Parameter != "" {
		s.Parameter = c.Annotations.Parameter
	}
	if c.Annotations.Variable != "" {
		s.Variable = c.Annotations.Variable
	}
	if c.Annotations.Marker != "" {
		s.Marker = c.Annotations.Marker
	}
	return s
}

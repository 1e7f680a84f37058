package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "src", "main")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(root, configFileName)
	if err := os.WriteFile(cfg, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	if got != cfg {
		t.Fatalf("expected %q, got %q", cfg, got)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "empty", content: ""},
		{name: "full", content: "[log]\npath = \"/tmp/unused.log\"\n[run]\njobs = 4\ndry_run = true\n[cache]\nenabled = true\n"},
		{name: "bad toml", content: "[log\n", wantErr: "failed to parse TOML"},
		{name: "unknown key", content: "[log]\nfile = \"x\"\n", wantErr: "unknown keys: log.file"},
		{name: "empty log path", content: "[log]\npath = \"  \"\n", wantErr: "[log].path is empty"},
		{name: "negative jobs", content: "[run]\njobs = -1\n", wantErr: "[run].jobs"},
		{name: "multiline annotation", content: "[annotations]\nparameter = \"a\\nb\"\n", wantErr: "single line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := loadConfig(path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte("[log]\npath = \"build/unused.log\"\n[cache]\ndir = \".cache\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Path != filepath.Join(dir, "build", "unused.log") {
		t.Errorf("unexpected log path %q", cfg.Log.Path)
	}
	if cfg.Cache.Dir != filepath.Join(dir, ".cache") {
		t.Errorf("unexpected cache dir %q", cfg.Cache.Dir)
	}
}

func TestConfigStyleOverlay(t *testing.T) {
	cfg := fileConfig{Annotations: annotationConfig{Parameter: "@Suppress(\"unused\")"}}
	s := cfg.style()
	if s.Parameter != "@Suppress(\"unused\")" {
		t.Errorf("parameter not overridden: %q", s.Parameter)
	}
	if s.Variable != `@Suppress("UNUSED")` || s.Marker != "@Suppress" {
		t.Errorf("defaults lost: %+v", s)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeOff, "off": uiModeOff, "ON": uiModeOn, " auto ": uiModeAuto} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
	if shouldUseTUI(uiModeOff) || !shouldUseTUI(uiModeOn) {
		t.Error("explicit modes must win over terminal detection")
	}
}

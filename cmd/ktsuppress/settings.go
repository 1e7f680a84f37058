package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ktsuppress/internal/annotate"
	"ktsuppress/internal/source"
	"ktsuppress/internal/warnlog"
)

// settings is the merged view of defaults, ktsuppress.toml and flags.
type settings struct {
	ConfigPath string
	LogPath    string
	Style      annotate.Style
	Jobs       int
	DryRun     bool
	Cache      bool
	CacheDir   string
	UI         uiMode
	PathMode   string
	Quiet      bool
	Timings    bool
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	s := settings{
		LogPath: warnlog.DefaultPath,
		Style:   annotate.DefaultStyle(),
		Jobs:    1,
		UI:      uiModeOff,
	}

	root := cmd.Root().PersistentFlags()
	configPath, err := root.GetString("config")
	if err != nil {
		return s, err
	}
	if configPath == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return s, err
		}
		if ok {
			configPath = found
		}
	}
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return s, err
		}
		s.ConfigPath = configPath
		s.Style = cfg.style()
		if cfg.Log.Path != "" {
			s.LogPath = cfg.Log.Path
		}
		if cfg.Run.Jobs > 0 {
			s.Jobs = cfg.Run.Jobs
		}
		s.DryRun = cfg.Run.DryRun
		s.Cache = cfg.Cache.Enabled
		s.CacheDir = cfg.Cache.Dir
	}

	if s.Quiet, err = root.GetBool("quiet"); err != nil {
		return s, err
	}
	if s.Timings, err = root.GetBool("timings"); err != nil {
		return s, err
	}
	if s.PathMode, err = root.GetString("path-mode"); err != nil {
		return s, err
	}
	if err := source.CheckPathMode(s.PathMode); err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("log") {
		if s.LogPath, err = flags.GetString("log"); err != nil {
			return s, err
		}
	}
	if flags.Changed("jobs") {
		if s.Jobs, err = flags.GetInt("jobs"); err != nil {
			return s, err
		}
		if s.Jobs < 1 {
			return s, fmt.Errorf("--jobs must be at least 1, got %d", s.Jobs)
		}
	}
	if flags.Changed("dry-run") {
		if s.DryRun, err = flags.GetBool("dry-run"); err != nil {
			return s, err
		}
	}
	if flags.Changed("cache") {
		if s.Cache, err = flags.GetBool("cache"); err != nil {
			return s, err
		}
	}
	if flags.Lookup("ui") != nil {
		value, err := flags.GetString("ui")
		if err != nil {
			return s, err
		}
		if s.UI, err = readUIMode(value); err != nil {
			return s, err
		}
	}
	return s, nil
}

// setupColor applies --color to fatih/color's global switch.
func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = color.NoColor || !isTerminal(cmd.OutOrStdout())
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal reports whether w is an *os.File attached to a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

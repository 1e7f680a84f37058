package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ktsuppress/internal/cache"
	"ktsuppress/internal/diag"
	"ktsuppress/internal/fix"
	"ktsuppress/internal/observ"
	"ktsuppress/internal/warnlog"
)

func addFixFlags(cmd *cobra.Command) {
	cmd.Flags().String("log", warnlog.DefaultPath, "compiler warning log to read")
	cmd.Flags().Int("jobs", 1, "number of files to annotate concurrently")
	cmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	cmd.Flags().String("ui", "off", "show a progress view (auto|on|off)")
	cmd.Flags().Bool("cache", false, "remember parsed logs and fixed files between runs")
}

func runFix(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	out := cmd.OutOrStdout()
	timer := observ.NewTimer()

	doneLoad := timer.Track("parse-log")
	log, err := loadWarnings(s)
	if err != nil {
		return err
	}
	doneLoad(fmt.Sprintf("%d files", len(log.warnings)))

	opts := fix.Options{
		Style:  s.Style,
		DryRun: s.DryRun,
		Jobs:   s.Jobs,
		Fixed:  log.fixed,
	}

	doneApply := timer.Track("apply")
	var res *fix.Result
	if shouldUseTUI(s.UI) && len(log.warnings) > 0 {
		res, err = runApplyWithUI(cmd.Context(), out, log.warnings, opts, s.PathMode)
	} else {
		if !s.Quiet {
			opts.Sink = &fix.WriterSink{W: out}
		}
		res, err = fix.Apply(cmd.Context(), log.warnings, opts)
	}
	if err != nil && !errors.Is(err, fix.ErrNoWarnings) {
		return err
	}
	doneApply(fmt.Sprintf("%d inserted", res.Inserted()))

	if err := log.remember(res, s.DryRun); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	printSummary(out, len(log.warnings), s.DryRun)
	if s.Timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}

func printSummary(out io.Writer, files int, dryRun bool) {
	if dryRun {
		color.New(color.FgYellow).Fprintf(out, "Would fix %d files with unused warnings (dry run)\n", files)
		return
	}
	color.New(color.FgGreen).Fprintf(out, "✅ Fixed %d files with unused warnings!\n", files)
}

// loadedLog is a parsed warning log plus what the cache knows about it.
type loadedLog struct {
	warnings diag.ByFile
	fixed    map[string][32]byte

	store *cache.Cache
	key   cache.Digest
	path  string
}

func loadWarnings(s settings) (*loadedLog, error) {
	if !s.Cache {
		warnings, err := warnlog.ParseFile(s.LogPath)
		if err != nil {
			return nil, err
		}
		return &loadedLog{warnings: warnings, path: s.LogPath}, nil
	}

	// #nosec G304 -- log path is chosen by the user
	content, err := os.ReadFile(s.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open warning log: %w", err)
	}
	store, err := openCache(s)
	if err != nil {
		return nil, err
	}
	l := &loadedLog{store: store, key: cache.Sum(content), path: s.LogPath}

	entry, ok, err := store.Get(l.key)
	if err != nil {
		// a broken entry is rebuilt from the log
		ok = false
	}
	if ok {
		l.warnings = entry.Warnings
		l.fixed = make(map[string][32]byte, len(entry.Fixed))
		for p, h := range entry.Fixed {
			l.fixed[p] = h
		}
		return l, nil
	}

	warnings, err := warnlog.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.LogPath, err)
	}
	l.warnings = warnings
	return l, nil
}

func openCache(s settings) (*cache.Cache, error) {
	if s.CacheDir != "" {
		return cache.OpenDir(s.CacheDir)
	}
	return cache.Open("ktsuppress")
}

// remember stores the log and the post-run file hashes when caching is on.
func (l *loadedLog) remember(res *fix.Result, dryRun bool) error {
	if l.store == nil || dryRun {
		return nil
	}
	fixed := make(map[string]cache.Digest, len(res.Files))
	for p, h := range l.fixed {
		fixed[p] = h
	}
	for _, f := range res.Files {
		fixed[f.Path] = f.Hash
	}
	return l.store.Put(l.key, &cache.Entry{
		LogPath:  l.path,
		Warnings: l.warnings,
		Fixed:    fixed,
		Updated:  time.Now(),
	})
}

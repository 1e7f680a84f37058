package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"ktsuppress/internal/diag"
	"ktsuppress/internal/fix"
	"ktsuppress/internal/ui"
)

type applyOutcome struct {
	result *fix.Result
	err    error
}

// runApplyWithUI runs fix.Apply in the background and renders its events.
func runApplyWithUI(ctx context.Context, out io.Writer, warnings diag.ByFile, opts fix.Options, pathMode string) (*fix.Result, error) {
	events := make(chan fix.Event, 256)
	outcomeCh := make(chan applyOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = fix.ChannelSink{Ch: events}
		res, err := fix.Apply(ctx, warnings, optsCopy)
		outcomeCh <- applyOutcome{result: res, err: err}
		close(events)
	}()

	title := "suppressing unused warnings"
	if opts.DryRun {
		title += " (dry run)"
	}
	model := ui.NewProgressModel(title, pathMode, warnings.Paths(), events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the view may quit early; keep draining so the worker never blocks
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

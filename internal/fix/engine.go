// Package fix drives the annotator over every file named in a warning log.
package fix

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ktsuppress/internal/annotate"
	"ktsuppress/internal/diag"
	"ktsuppress/internal/trace"
)

// ErrNoWarnings is returned when the log contains no unused warnings.
var ErrNoWarnings = errors.New("no unused warnings found")

// Options configures Apply.
type Options struct {
	Style  annotate.Style
	DryRun bool
	// Jobs bounds how many files are annotated at once; values below 1 mean
	// one file at a time.
	Jobs int
	Sink Sink
	// Fixed maps a path to the content hash an earlier run with the same log
	// left behind. Matching files are not touched again.
	Fixed map[string][32]byte
}

// FileChange summarises what happened to one file.
type FileChange struct {
	Path         string
	Inserted     int
	Skipped      []annotate.Skipped
	Written      bool
	AlreadyFixed bool
	Hash         [32]byte
}

// Result aggregates the per-file changes of a run.
type Result struct {
	Files []FileChange
}

// Inserted returns the total number of inserted annotations.
func (r *Result) Inserted() int {
	n := 0
	for _, f := range r.Files {
		n += f.Inserted
	}
	return n
}

// Skipped returns the total number of skipped warnings.
func (r *Result) Skipped() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Skipped)
	}
	return n
}

// Apply annotates every file in warnings. Each file's warnings are sorted
// bottom-up before the file is touched. The first file that cannot be read
// or written stops the run; the changes made so far are returned with it.
func Apply(ctx context.Context, warnings diag.ByFile, opts Options) (*Result, error) {
	result := &Result{Files: make([]FileChange, 0, len(warnings))}
	if len(warnings) == 0 {
		return result, ErrNoWarnings
	}
	if err := opts.Style.Validate(); err != nil {
		return result, fmt.Errorf("fix: %w", err)
	}

	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	jobs := max(opts.Jobs, 1)

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeRun, "apply", 0)

	paths := warnings.Paths()
	for _, path := range paths {
		sink.OnEvent(Event{File: path, Status: StatusQueued})
	}

	changes := make([]FileChange, len(paths))
	done := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			ws := slices.Clone(warnings[path])
			diag.SortDescending(ws)

			start := time.Now()
			sink.OnEvent(Event{File: path, Status: StatusWorking})

			change, err := applyFile(tracer, runSpan.ID(), path, ws, opts)
			if err != nil {
				sink.OnEvent(Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				trace.Error(tracer, trace.ScopeFile, path, err, runSpan.ID())
				return err
			}
			changes[i] = change
			done[i] = true
			sink.OnEvent(Event{File: path, Status: StatusDone, Inserted: change.Inserted, Elapsed: time.Since(start)})
			return nil
		})
	}

	err := g.Wait()
	for i := range changes {
		if done[i] {
			result.Files = append(result.Files, changes[i])
		}
	}
	runSpan.WithExtra("files", strconv.Itoa(len(result.Files))).
		WithExtra("inserted", strconv.Itoa(result.Inserted())).
		End("")
	return result, err
}

func applyFile(tracer trace.Tracer, parent uint64, path string, ws []diag.Warning, opts Options) (FileChange, error) {
	span := trace.Begin(tracer, trace.ScopeFile, path, parent)

	aopts := annotate.Options{Style: opts.Style, DryRun: opts.DryRun}
	if h, ok := opts.Fixed[path]; ok {
		aopts.SkipIfHash = &h
	}

	rep, err := annotate.File(path, ws, aopts)
	if err != nil {
		span.End("failed")
		return FileChange{Path: path}, err
	}

	for _, w := range rep.Inserted {
		trace.Point(tracer, trace.ScopeWarning, "insert", w.String(), span.ID())
	}
	for _, s := range rep.Skipped {
		trace.Point(tracer, trace.ScopeWarning, "skip", fmt.Sprintf("%s: %s", s.Warning, s.Reason), span.ID())
	}

	detail := ""
	if rep.AlreadyFixed {
		detail = "already fixed"
	}
	span.WithExtra("inserted", strconv.Itoa(len(rep.Inserted))).
		WithExtra("skipped", strconv.Itoa(len(rep.Skipped))).
		End(detail)

	return FileChange{
		Path:         path,
		Inserted:     len(rep.Inserted),
		Skipped:      rep.Skipped,
		Written:      rep.Written,
		AlreadyFixed: rep.AlreadyFixed,
		Hash:         rep.Hash,
	}, nil
}

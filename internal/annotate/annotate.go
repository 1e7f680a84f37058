// Package annotate inserts suppression annotations above the lines named by
// unused-declaration warnings.
package annotate

import (
	"fmt"
	"slices"
	"strings"

	"ktsuppress/internal/diag"
	"ktsuppress/internal/source"
)

// SkipReason explains why a warning produced no insertion.
type SkipReason string

const (
	// SkipOutOfRange means the warning points past the end of the file,
	// usually because the log is stale.
	SkipOutOfRange SkipReason = "out of range"
	// SkipAnnotated means the line above already carries the marker.
	SkipAnnotated SkipReason = "already annotated"
	// SkipUnknownKind means no annotation text exists for the warning kind.
	SkipUnknownKind SkipReason = "unknown kind"
)

// Skipped records a warning that was left alone.
type Skipped struct {
	Warning diag.Warning
	Reason  SkipReason
}

// Report summarises the edits made to one file.
type Report struct {
	Path     string
	Inserted []diag.Warning
	Skipped  []Skipped
	Written  bool
	// AlreadyFixed is set when the file matched Options.SkipIfHash.
	AlreadyFixed bool
	// Hash is the SHA-256 of the file content after the run.
	Hash [32]byte
}

// Options configures File.
type Options struct {
	Style  Style
	DryRun bool // compute the report but leave the file untouched
	// SkipIfHash leaves the file alone when its current content hashes to
	// this value, i.e. it is exactly what an earlier run with the same log
	// produced.
	SkipIfHash *[32]byte
}

// Lines applies warnings to a copy of lines in the order given and returns
// the new sequence. Callers pass warnings sorted by diag.SortDescending; any other
// order makes earlier insertions shift later targets.
func Lines(lines []source.Line, warnings []diag.Warning, style Style) ([]source.Line, Report) {
	var rep Report
	lines = slices.Clone(lines)
	for _, w := range warnings {
		idx := int(w.Line) - 1
		if idx < 0 || idx >= len(lines) {
			rep.Skipped = append(rep.Skipped, Skipped{Warning: w, Reason: SkipOutOfRange})
			continue
		}
		text := style.Text(w.Kind)
		if text == "" {
			rep.Skipped = append(rep.Skipped, Skipped{Warning: w, Reason: SkipUnknownKind})
			continue
		}
		// The line above is where an annotation for this target would sit. The
		// target itself is checked too: after a previous run with the same log
		// the annotation occupies the reported line.
		if containsMarker(lines[max(0, idx-1)].Text, style.Marker) || containsMarker(lines[idx].Text, style.Marker) {
			rep.Skipped = append(rep.Skipped, Skipped{Warning: w, Reason: SkipAnnotated})
			continue
		}

		target := lines[idx]
		eol := target.EOL
		if eol == "" {
			eol = "\n"
		}
		annotation := source.Line{Text: source.Indent(target.Text) + text, EOL: eol}

		lines = append(lines, source.Line{})
		copy(lines[idx+1:], lines[idx:])
		lines[idx] = annotation
		rep.Inserted = append(rep.Inserted, w)
	}
	return lines, rep
}

// File loads path, applies warnings and overwrites it in full when anything
// was inserted. Warnings are applied in the order given.
func File(path string, warnings []diag.Warning, opts Options) (Report, error) {
	f, err := source.Load(path)
	if err != nil {
		return Report{Path: path}, fmt.Errorf("annotate: %w", err)
	}

	if opts.SkipIfHash != nil && *opts.SkipIfHash == f.Hash {
		return Report{Path: path, AlreadyFixed: true, Hash: f.Hash}, nil
	}

	lines, rep := Lines(f.Lines, warnings, opts.Style)
	rep.Path = path
	rep.Hash = f.Hash
	if len(rep.Inserted) == 0 || opts.DryRun {
		return rep, nil
	}

	f.Lines = lines
	if err := f.Write(); err != nil {
		return rep, fmt.Errorf("annotate: %w", err)
	}
	rep.Written = true
	rep.Hash = f.Hash
	return rep, nil
}

func containsMarker(line, marker string) bool {
	return marker != "" && strings.Contains(line, marker)
}

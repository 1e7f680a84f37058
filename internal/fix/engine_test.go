package fix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"ktsuppress/internal/annotate"
	"ktsuppress/internal/diag"
	"ktsuppress/internal/trace"
	"ktsuppress/internal/warnlog"
)

func writeKotlin(t *testing.T, dir, name string, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "  stmt%d()\n", i)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func lines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func TestApplyEndToEndFromLog(t *testing.T) {
	dir := t.TempDir()
	path := writeKotlin(t, dir, "x.kt", 10)
	log := fmt.Sprintf("w: file://%s:5:3 Parameter 'foo' is never used\nw: file://%s:2:1 Variable 'bar' is never used\n", path, path)

	warnings, err := warnlog.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	var out bytes.Buffer
	res, err := Apply(context.Background(), warnings, Options{
		Style: annotate.DefaultStyle(),
		Sink:  &WriterSink{W: &out},
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(res.Files) != 1 || res.Inserted() != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if out.String() != "Fixing "+path+"...\n" {
		t.Fatalf("unexpected console output %q", out.String())
	}

	got := lines(t, path)
	if len(got) != 12 {
		t.Fatalf("expected 12 lines, got %d: %q", len(got), got)
	}
	if got[1] != `  @Suppress("UNUSED")` || got[2] != "  stmt2()" {
		t.Errorf("unexpected lines around stmt2: %q", got[:3])
	}
	if got[5] != `  @Suppress("UNUSED_PARAMETER")` || got[6] != "  stmt5()" {
		t.Errorf("unexpected lines around stmt5: %q", got[4:7])
	}
}

func TestApplySortsEachFileDescending(t *testing.T) {
	dir := t.TempDir()
	path := writeKotlin(t, dir, "A.kt", 10)
	warnings := diag.ByFile{}
	// log order is ascending; Apply must still edit bottom-up
	for _, line := range []uint32{3, 7, 10} {
		warnings.Add(path, diag.Warning{Line: line, Kind: diag.KindParameter, Name: "p"})
	}

	if _, err := Apply(context.Background(), warnings, Options{Style: annotate.DefaultStyle()}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	got := lines(t, path)
	for _, target := range []string{"  stmt3()", "  stmt7()", "  stmt10()"} {
		idx := -1
		for i, l := range got {
			if l == target {
				idx = i
			}
		}
		if idx < 1 || got[idx-1] != `  @Suppress("UNUSED_PARAMETER")` {
			t.Errorf("%s: expected annotation directly above, got %q", target, got)
		}
	}
	if len(warnings[path]) != 3 || warnings[path][0].Line != 3 {
		t.Fatalf("caller's slice must not be reordered: %v", warnings[path])
	}
}

func TestApplyStopsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := writeKotlin(t, dir, "b.kt", 3)
	missing := filepath.Join(dir, "a.kt")

	warnings := diag.ByFile{}
	warnings.Add(missing, diag.Warning{Line: 1, Kind: diag.KindVariable, Name: "x"})
	warnings.Add(good, diag.Warning{Line: 1, Kind: diag.KindVariable, Name: "y"})

	sink := &recordingSink{}
	res, err := Apply(context.Background(), warnings, Options{Style: annotate.DefaultStyle(), Sink: sink})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no completed files, got %+v", res.Files)
	}
	// a.kt sorts first and fails, so b.kt is never touched
	if got := lines(t, good); len(got) != 3 {
		t.Fatalf("expected b.kt untouched, got %q", got)
	}

	var sawError bool
	for _, ev := range sink.events {
		if ev.File == missing && ev.Status == StatusError {
			sawError = true
		}
		if ev.File == good && ev.Status == StatusWorking {
			t.Fatalf("b.kt must not start after a.kt failed")
		}
	}
	if !sawError {
		t.Fatalf("expected error event, got %+v", sink.events)
	}
}

func TestApplyParallelJobs(t *testing.T) {
	dir := t.TempDir()
	warnings := diag.ByFile{}
	var paths []string
	for i := 0; i < 8; i++ {
		p := writeKotlin(t, dir, fmt.Sprintf("F%d.kt", i), 5)
		paths = append(paths, p)
		warnings.Add(p, diag.Warning{Line: 4, Kind: diag.KindVariable, Name: "v"})
		warnings.Add(p, diag.Warning{Line: 2, Kind: diag.KindParameter, Name: "p"})
	}

	res, err := Apply(context.Background(), warnings, Options{Style: annotate.DefaultStyle(), Jobs: 4})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(res.Files) != 8 || res.Inserted() != 16 {
		t.Fatalf("unexpected result: files=%d inserted=%d", len(res.Files), res.Inserted())
	}
	for _, p := range paths {
		if got := lines(t, p); len(got) != 7 {
			t.Errorf("%s: expected 7 lines, got %d", p, len(got))
		}
	}
}

func TestApplyCountsSkips(t *testing.T) {
	dir := t.TempDir()
	path := writeKotlin(t, dir, "S.kt", 2)
	warnings := diag.ByFile{}
	warnings.Add(path, diag.Warning{Line: 9, Kind: diag.KindVariable, Name: "stale"})

	res, err := Apply(context.Background(), warnings, Options{Style: annotate.DefaultStyle()})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(res.Files) != 1 || res.Skipped() != 1 || res.Files[0].Written {
		t.Fatalf("unexpected result %+v", res.Files)
	}
}

func TestApplyNoWarnings(t *testing.T) {
	_, err := Apply(context.Background(), diag.ByFile{}, Options{Style: annotate.DefaultStyle()})
	if !errors.Is(err, ErrNoWarnings) {
		t.Fatalf("expected ErrNoWarnings, got %v", err)
	}
}

func TestApplyRejectsBadStyle(t *testing.T) {
	warnings := diag.ByFile{}
	warnings.Add("/nowhere.kt", diag.Warning{Line: 1, Kind: diag.KindVariable})
	if _, err := Apply(context.Background(), warnings, Options{}); err == nil {
		t.Fatal("expected empty style to be rejected")
	}
}

func TestApplyFixedHashesMakeRerunNoop(t *testing.T) {
	dir := t.TempDir()
	path := writeKotlin(t, dir, "R.kt", 10)
	warnings := diag.ByFile{}
	for _, line := range []uint32{8, 3} {
		warnings.Add(path, diag.Warning{Line: line, Kind: diag.KindVariable, Name: "v"})
	}
	opts := Options{Style: annotate.DefaultStyle()}

	first, err := Apply(context.Background(), warnings, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	opts.Fixed = map[string][32]byte{path: first.Files[0].Hash}

	for run := 2; run <= 3; run++ {
		res, err := Apply(context.Background(), warnings, opts)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if !res.Files[0].AlreadyFixed || res.Inserted() != 0 {
			t.Fatalf("run %d: expected no changes, got %+v", run, res.Files[0])
		}
	}
	if got := lines(t, path); len(got) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(got))
	}
}

func TestApplyTraces(t *testing.T) {
	dir := t.TempDir()
	path := writeKotlin(t, dir, "T.kt", 3)
	warnings := diag.ByFile{}
	warnings.Add(path, diag.Warning{Line: 2, Kind: diag.KindParameter, Name: "p"})
	warnings.Add(path, diag.Warning{Line: 30, Kind: diag.KindParameter, Name: "q"})

	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText))
	if _, err := Apply(ctx, warnings, Options{Style: annotate.DefaultStyle(), DryRun: true}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"run:apply", "warning:insert (2:0 Parameter 'p')", "warning:skip (30:0 Parameter 'q': out of range)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in trace:\n%s", want, out)
		}
	}
	if got := lines(t, path); len(got) != 3 {
		t.Fatalf("dry run modified the file: %q", got)
	}
}

package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"ktsuppress/internal/fix"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Main.kt", 20, "Main.kt"},
		{"Main.kt", 0, "Main.kt"},
		{"VeryLongFileName.kt", 10, "VeryLon..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
	if w := runewidth.StringWidth(Truncate("日本語のファイル名.kt", 8)); w > 8 {
		t.Errorf("wide runes exceed width: %d", w)
	}
}

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan fix.Event)
	model := NewProgressModel("fixing", "auto", []string{"/src/A.kt", "/src/B.kt"}, events).(*progressModel)

	model.Update(eventMsg(fix.Event{File: "/src/A.kt", Status: fix.StatusWorking}))
	if got := model.fraction(); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	model.Update(eventMsg(fix.Event{File: "/src/A.kt", Status: fix.StatusDone, Inserted: 3}))
	model.Update(eventMsg(fix.Event{File: "/src/B.kt", Status: fix.StatusError}))
	model.Update(eventMsg(fix.Event{File: "/unknown.kt", Status: fix.StatusDone}))

	if got := model.fraction(); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if model.inserted != 3 {
		t.Fatalf("expected 3 inserted, got %d", model.inserted)
	}

	model.Update(doneMsg{})
	view := model.View()
	for _, want := range []string{"done: fixing (3 inserted)", "/src/A.kt +3", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ktsuppress/internal/diag"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	key := Sum([]byte("w: file:///a.kt:1:1 Variable 'x' is never used\n"))

	warnings := diag.ByFile{}
	warnings.Add("/a.kt", diag.Warning{Line: 1, Col: 1, Kind: diag.KindVariable, Name: "x"})
	warnings.Add("/a.kt", diag.Warning{Line: 4, Col: 9, Kind: diag.KindParameter, Name: "y"})
	fixed := Sum([]byte("after"))

	in := &Entry{
		LogPath:  "/tmp/unused.log",
		Warnings: warnings,
		Fixed:    map[string]Digest{"/a.kt": fixed},
		Updated:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := c.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	out, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out.LogPath != in.LogPath || !out.Updated.Equal(in.Updated) {
		t.Errorf("metadata mismatch: %+v", out)
	}
	got := out.Warnings["/a.kt"]
	if len(got) != 2 || got[0] != warnings["/a.kt"][0] || got[1] != warnings["/a.kt"][1] {
		t.Errorf("warnings mismatch: %+v", got)
	}
	if out.Fixed["/a.kt"] != fixed {
		t.Errorf("fixed hash mismatch")
	}
}

func TestGetMissing(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := c.Get(Sum([]byte("nothing")))
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestGetCorrupt(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Sum([]byte("corrupt"))
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Get(key); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClear(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Sum([]byte("log"))
	if err := c.Put(key, &Entry{Warnings: diag.ByFile{}}); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Fatal("expected entry to be gone")
	}
}

func TestOpenUsesXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := Open("ktsuppress")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if c.Dir() != filepath.Join(base, "ktsuppress") {
		t.Fatalf("unexpected dir %q", c.Dir())
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if err := c.Put(Sum(nil), &Entry{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(Sum(nil)); ok || err != nil {
		t.Fatalf("expected nil cache miss, got ok=%v err=%v", ok, err)
	}
}

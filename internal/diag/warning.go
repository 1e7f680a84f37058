package diag

import (
	"fmt"
	"sort"
)

// Warning is one "never used" diagnostic extracted from the build log.
type Warning struct {
	Line uint32 `json:"line" msgpack:"line"`
	Col  uint32 `json:"col" msgpack:"col"`
	Kind Kind   `json:"kind" msgpack:"kind"`
	Name string `json:"name" msgpack:"name"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%d:%d %s '%s'", w.Line, w.Col, w.Kind, w.Name)
}

// ByFile maps the file path exactly as printed in the log to its warnings,
// kept in log order.
type ByFile map[string][]Warning

// Add appends w to the list for path.
func (b ByFile) Add(path string, w Warning) {
	b[path] = append(b[path], w)
}

// Paths returns the keys in lexical order for deterministic output.
func (b ByFile) Paths() []string {
	paths := make([]string, 0, len(b))
	for p := range b {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Total returns the number of warnings across all files.
func (b ByFile) Total() int {
	n := 0
	for _, ws := range b {
		n += len(ws)
	}
	return n
}

// SortDescending orders warnings bottom-up by line; equal lines keep log order.
func SortDescending(ws []Warning) {
	sort.SliceStable(ws, func(i, j int) bool {
		return ws[i].Line > ws[j].Line
	})
}

package annotate

import (
	"fmt"
	"strings"

	"ktsuppress/internal/diag"
)

// Style holds the annotation texts inserted for each warning kind and the
// marker used to detect an existing annotation.
type Style struct {
	Parameter string
	Variable  string
	Marker    string
}

// DefaultStyle returns the Kotlin suppressions.
func DefaultStyle() Style {
	return Style{
		Parameter: `@Suppress("UNUSED_PARAMETER")`,
		Variable:  `@Suppress("UNUSED")`,
		Marker:    "@Suppress",
	}
}

// Text returns the annotation for kind, or "" for an unknown kind.
func (s Style) Text(kind diag.Kind) string {
	switch kind {
	case diag.KindParameter:
		return s.Parameter
	case diag.KindVariable:
		return s.Variable
	}
	return ""
}

// Validate rejects styles that would insert empty or multi-line annotations.
func (s Style) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"parameter", s.Parameter},
		{"variable", s.Variable},
		{"marker", s.Marker},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("annotation %s text is empty", f.name)
		}
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("annotation %s text must be a single line", f.name)
		}
	}
	return nil
}

package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

// SplitLines cuts content after every '\n'. A "\r\n" pair stays together as
// the terminator; a lone '\r' is part of the text.
func SplitLines(content []byte) []Line {
	out := make([]Line, 0, bytes.Count(content, []byte{'\n'})+1)
	for len(content) > 0 {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			out = append(out, Line{Text: string(content)})
			break
		}
		text := content[:i]
		eol := "\n"
		if len(text) > 0 && text[len(text)-1] == '\r' {
			text = text[:len(text)-1]
			eol = "\r\n"
		}
		out = append(out, Line{Text: string(text), EOL: eol})
		content = content[i+1:]
	}
	return out
}

// PathModes lists the modes DisplayPath understands.
var PathModes = []string{"auto", "absolute", "relative", "basename"}

// CheckPathMode rejects a mode DisplayPath does not understand.
func CheckPathMode(mode string) error {
	if slices.Contains(PathModes, mode) {
		return nil
	}
	return fmt.Errorf("invalid path mode %q (expected %s)", mode, strings.Join(PathModes, "|"))
}

// DisplayPath formats a path for humans.
// mode: "absolute", "relative", "basename", "auto"; anything else returns path
// unchanged.
func DisplayPath(path, mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		rel, err := filepath.Rel(baseDir, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(abs)
		}
		return filepath.ToSlash(rel)

	case "basename":
		return filepath.Base(path)

	case "auto":
		// short or relative paths as is, long absolute ones collapse to basename
		if len(path) < 40 || !filepath.IsAbs(path) {
			return path
		}
		return filepath.Base(path)

	default:
		return path
	}
}

// Package warnlog extracts unused parameter and variable warnings from a
// Kotlin compiler log.
//
// Relevant lines look like
//
//	w: file:///path/to/File.kt:12:5 Parameter 'name' is never used
//
// and every other line is ignored.
package warnlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"ktsuppress/internal/diag"
)

// DefaultPath is where the build is expected to leave its warning log.
const DefaultPath = "/tmp/unused.log"

// Identifiers may be any Unicode letters, digits or underscores, as Kotlin
// allows.
var warningRe = regexp.MustCompile(`file://(.+?):(\d+):(\d+) (Parameter|Variable) '([\p{L}\p{N}_]+)' is never used`)

// ParseLine extracts the file path and warning from one log line.
// ok is false for any line that does not match the diagnostic shape.
func ParseLine(line string) (path string, w diag.Warning, ok bool) {
	m := warningRe.FindStringSubmatch(line)
	if m == nil {
		return "", diag.Warning{}, false
	}
	lineNum, err := parseUint32(m[2])
	if err != nil || lineNum == 0 {
		return "", diag.Warning{}, false
	}
	col, err := parseUint32(m[3])
	if err != nil {
		return "", diag.Warning{}, false
	}
	kind, err := diag.ParseKind(m[4])
	if err != nil {
		return "", diag.Warning{}, false
	}
	return m[1], diag.Warning{Line: lineNum, Col: col, Kind: kind, Name: m[5]}, true
}

// Parse reads the whole log and groups warnings by file in log order.
// Lines of any length are accepted.
func Parse(r io.Reader) (diag.ByFile, error) {
	out := diag.ByFile{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if path, w, ok := ParseLine(strings.TrimRight(line, "\r\n")); ok {
				out.Add(path, w)
			}
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read warning log: %w", err)
		}
	}
}

// ParseFile opens path and parses it.
func ParseFile(path string) (diag.ByFile, error) {
	// #nosec G304 -- log path is chosen by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open warning log: %w", err)
	}
	defer f.Close()

	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[uint32](n)
}

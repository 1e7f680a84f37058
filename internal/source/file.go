package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
)

// Load reads path from disk and splits it into lines, keeping terminators.
func Load(path string) (*File, error) {
	// #nosec G304 -- path comes from the compiler log
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(path, content), nil
}

// FromBytes builds a File from raw content without touching the disk.
func FromBytes(path string, content []byte) *File {
	hash := sha256.Sum256(content)
	body, hadBOM := removeBOM(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	return &File{
		Path:  path,
		Lines: SplitLines(body),
		Hash:  hash,
		Flags: flags,
	}
}

// Bytes joins the lines back into file content.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	if f.Flags&FileHadBOM != 0 {
		buf.Write(utf8BOM)
	}
	for _, l := range f.Lines {
		buf.WriteString(l.Text)
		buf.WriteString(l.EOL)
	}
	return buf.Bytes()
}

// Write overwrites the file on disk with the current lines and refreshes
// Hash. The existing permission bits are kept.
func (f *File) Write() error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode()
	}
	content := f.Bytes()
	if err := os.WriteFile(f.Path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	f.Hash = sha256.Sum256(content)
	return nil
}

// LineCount returns the number of lines as uint32, the width used by
// diagnostics.
func (f *File) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(f.Lines))
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return n
}

// GetLine returns the text of the 1-based line, or "" if it does not exist.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || lineNum > f.LineCount() {
		return ""
	}
	return f.Lines[lineNum-1].Text
}

// Indent returns the leading whitespace run of s.
func Indent(s string) string {
	trimmed := strings.TrimLeft(s, " \t\v\f")
	return s[:len(s)-len(trimmed)]
}

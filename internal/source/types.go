package source

// FileFlags encodes metadata about how a file was read.
type FileFlags uint8

const (
	// FileHadBOM marks a file that started with a UTF-8 byte order mark.
	// The mark is stripped on Load and restored on Write.
	FileHadBOM FileFlags = 1 << iota
)

// Line is one line of a file together with its original terminator.
type Line struct {
	Text string
	EOL  string // "\n", "\r\n" or "" for an unterminated last line
}

func (l Line) String() string {
	return l.Text + l.EOL
}

// File is a source file held in memory as an ordered sequence of lines.
type File struct {
	Path  string
	Lines []Line
	Hash  [32]byte // SHA-256 of the bytes read from disk
	Flags FileFlags
}

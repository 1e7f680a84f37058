package fix

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Status captures the progress state of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being annotated.
	StatusWorking Status = "working"
	// StatusDone indicates the file was handled.
	StatusDone Status = "done"
	// StatusError indicates the file could not be read or written.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File     string
	Status   Status
	Inserted int
	Err      error
	Elapsed  time.Duration
}

// Sink receives progress events. Implementations must be goroutine-safe.
type Sink interface {
	OnEvent(evt Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// WriterSink prints a "Fixing <path>..." line whenever a file starts.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterSink) OnEvent(evt Event) {
	if s == nil || s.W == nil || evt.Status != StatusWorking {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.W, "Fixing %s...\n", evt.File)
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

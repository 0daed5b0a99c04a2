package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// ErrClosed reports a write against a sink that has been shut down.
var ErrClosed = errors.New("sink closed")

// Sink is the write side of the log pipeline. Write failures are surfaced to
// the caller but must never panic; the logger degrades to best effort.
type Sink interface {
	Write(p []byte) error
	Close() error
}

// FileOptions configures a file-backed sink.
type FileOptions struct {
	// Durable forces an fsync after every write.
	Durable bool
	// Lock takes an advisory lock next to the log file so a second writer
	// cannot share the destination.
	Lock bool
}

// File writes the stream to a single exclusively owned log file.
type File struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	lock    *flock.Flock
	durable bool
	closed  bool
}

// NewFile creates (or truncates) the log file at path and claims it. The
// returned sink must be Closed to release the lock and run the final flush.
func NewFile(path string, opts FileOptions) (*File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}

	var lock *flock.Flock
	if opts.Lock {
		lock = flock.New(path + ".lock")
		held, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("lock log file %s: %w", path, err)
		}
		if !held {
			return nil, fmt.Errorf("log file %s is owned by another writer", path)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		if lock != nil {
			_ = lock.Unlock()
		}
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	return &File{
		path:    path,
		file:    file,
		lock:    lock,
		durable: opts.Durable,
	}, nil
}

// Write appends one fragment and flushes it through to the file.
func (f *File) Write(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if _, err := f.file.Write(p); err != nil {
		return fmt.Errorf("write log %s: %w", f.path, err)
	}
	if f.durable {
		if err := f.file.Sync(); err != nil {
			return fmt.Errorf("flush log %s: %w", f.path, err)
		}
	}
	return nil
}

// Close runs the final flush, closes the file, and releases the lock. It is
// idempotent; later Write calls return ErrClosed.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	syncErr := f.file.Sync()
	closeErr := f.file.Close()
	var unlockErr error
	if f.lock != nil {
		unlockErr = f.lock.Unlock()
	}

	if syncErr != nil {
		return fmt.Errorf("flush log %s: %w", f.path, syncErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close log %s: %w", f.path, closeErr)
	}
	if unlockErr != nil {
		return fmt.Errorf("unlock log %s: %w", f.path, unlockErr)
	}
	return nil
}

// Path returns the destination backing the sink.
func (f *File) Path() string {
	return f.path
}

type syncer interface{ Sync() error }

type flusher interface{ Flush() error }

// Writer adapts any io.Writer (stdout, test buffers) to the Sink contract,
// flushing after each write when the writer exposes a way to.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

// NewWriter wraps w. The writer is not closed on Close unless it implements
// io.Closer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, err := s.w.Write(p); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return flushWriter(s.w)
}

func (s *Writer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := flushWriter(s.w); err != nil {
		return err
	}
	if closer, ok := s.w.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close log: %w", err)
		}
	}
	return nil
}

func flushWriter(w io.Writer) error {
	switch fw := w.(type) {
	case syncer:
		if err := fw.Sync(); err != nil {
			return fmt.Errorf("flush log: %w", err)
		}
	case flusher:
		if err := fw.Flush(); err != nil {
			return fmt.Errorf("flush log: %w", err)
		}
	}
	return nil
}

package logging

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"ymlog/internal/config"
	"ymlog/internal/event"
	"ymlog/internal/scope"
	"ymlog/internal/sink"
	"ymlog/internal/stream"
)

const underflowMessage = "scope exit without matching enter"

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Path        string    // log file destination; ignored when Output is set
	Output      io.Writer // alternative destination for tests and stdout
	IndentWidth int
	Timestamps  bool
	Durable     bool
	Lock        bool
}

// Logger is the process-wide front end over the scope stack, serializer, and
// sink. One mutex covers resolve-directive, render, and write as a unit.
type Logger struct {
	mu       sync.Mutex
	min      event.Level
	scopes   scope.Stack
	ser      *stream.Serializer
	out      sink.Sink
	writeErr error
	closed   bool
}

// New constructs a logger writing to opts.Output when set, else to the file
// at opts.Path.
func New(opts Options) (*Logger, error) {
	var out sink.Sink
	switch {
	case opts.Output != nil:
		out = sink.NewWriter(opts.Output)
	case opts.Path != "":
		file, err := sink.NewFile(opts.Path, sink.FileOptions{
			Durable: opts.Durable,
			Lock:    opts.Lock,
		})
		if err != nil {
			return nil, err
		}
		out = file
	default:
		return nil, errors.New("logging: either Path or Output is required")
	}

	return &Logger{
		min: event.ParseLevel(opts.Level),
		ser: stream.New(stream.Options{
			IndentWidth: opts.IndentWidth,
			Timestamps:  opts.Timestamps,
		}),
		out: out,
	}, nil
}

// NewFromConfig creates a logger from application config. An empty path puts
// ymlog.log in the configured log directory.
func NewFromConfig(cfg *config.Config, path string) (*Logger, error) {
	if cfg == nil {
		return nil, errors.New("logging: config is required")
	}
	if path == "" {
		path = filepath.Join(cfg.LogDir, "ymlog.log")
	}
	return New(Options{
		Level:       cfg.Stream.Level,
		Path:        path,
		IndentWidth: cfg.Stream.IndentWidth,
		Timestamps:  cfg.Stream.Timestamps,
		Durable:     cfg.Sink.Durable,
		Lock:        cfg.Sink.Lock,
	})
}

// Log resolves the event's directive against the scope stack, renders the
// record, and writes it in one critical section. Records below the minimum
// level are not written, but their directive still applies so depth stays
// consistent with call nesting.
func (l *Logger) Log(evt event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logLocked(evt)
}

func (l *Logger) logLocked(evt event.Event) error {
	if l.closed {
		return sink.ErrClosed
	}

	switch evt.Directive {
	case event.Push:
		l.scopes.Enter(evt.Label)
	case event.Pop:
		if err := l.scopes.Exit(); err != nil {
			l.warnUnderflowLocked()
		}
	case event.Reset:
		l.scopes.Reset()
		l.ser.Reset()
	}

	if evt.Level < l.min {
		return nil
	}
	return l.writeLocked(evt)
}

func (l *Logger) writeLocked(evt event.Event) error {
	if evt.Time.IsZero() {
		evt.Time = time.Now().UTC()
	}
	data := l.ser.Render(evt, l.scopes.Frames())
	if err := l.out.Write(data); err != nil {
		l.writeErr = err
		return err
	}
	return nil
}

// warnUnderflowLocked reports a recovered underflow through the pipeline
// itself; if the sink is unusable the warning is dropped with the rest.
func (l *Logger) warnUnderflowLocked() {
	if event.LevelWarn < l.min {
		return
	}
	_ = l.writeLocked(event.Event{Level: event.LevelWarn, Message: underflowMessage})
}

func (l *Logger) log(level event.Level, msg string, fields []event.Field) {
	evt, err := event.New(level, msg, fields...)
	if err != nil {
		// Construction problems are reported through the stream rather
		// than crashing or vanishing.
		evt, _ = event.New(event.LevelWarn, fmt.Sprintf("dropped record %q: %v", msg, err))
	}
	_ = l.Log(evt)
}

func (l *Logger) Trace(msg string, fields ...event.Field) { l.log(event.LevelTrace, msg, fields) }

func (l *Logger) Debug(msg string, fields ...event.Field) { l.log(event.LevelDebug, msg, fields) }

func (l *Logger) Info(msg string, fields ...event.Field) { l.log(event.LevelInfo, msg, fields) }

func (l *Logger) Warn(msg string, fields ...event.Field) { l.log(event.LevelWarn, msg, fields) }

func (l *Logger) Error(msg string, fields ...event.Field) { l.log(event.LevelError, msg, fields) }

// Enter opens a labeled scope and returns the closure that exits it. The
// closure is safe to call more than once and safe to defer past early
// returns; only the first call pops.
func (l *Logger) Enter(label string) func() {
	l.mu.Lock()
	l.scopes.Enter(label)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if err := l.scopes.Exit(); err != nil {
				l.warnUnderflowLocked()
			}
		})
	}
}

// Reset drops all open scopes and starts a new document on the next record.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scopes.Reset()
	l.ser.Reset()
}

// Depth reports the current nesting depth.
func (l *Logger) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scopes.Depth()
}

// Err returns the most recent write failure, if any. The logger keeps
// accepting records after a failure; callers who care can poll this.
func (l *Logger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writeErr
}

// Close flushes and releases the sink. Records logged afterwards are
// rejected with the sink's closed error.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.out.Close()
}

func (l *Logger) minLevel() event.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.min
}

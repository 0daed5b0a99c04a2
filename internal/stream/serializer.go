package stream

import (
	"bytes"
	"strings"

	"ymlog/internal/event"
	"ymlog/internal/scope"
)

const defaultIndentWidth = 2

// tsLayout keeps timestamps plain-scalar safe: no spaces, no ": " sequences.
const tsLayout = "2006-01-02T15:04:05.000Z07:00"

// Options configures serializer output.
type Options struct {
	// IndentWidth is the number of spaces added per nesting level beyond the
	// sequence dash. Defaults to 2.
	IndentWidth int
	// Timestamps controls whether records carry a ts key.
	Timestamps bool
}

// levelState records what the current document holds at one nesting depth.
type levelState struct {
	hasItem   bool // a record has been written at this depth
	stepsOpen bool // that record's steps: block is open
}

// Serializer turns events into document fragments. Rendering mutates the
// nesting state, so the owning logger must serialize calls; the serializer
// itself performs no I/O.
type Serializer struct {
	unit    string
	withTS  bool
	levels  []levelState
	docOpen bool
}

// New constructs a serializer with a fresh document state.
func New(opts Options) *Serializer {
	width := opts.IndentWidth
	if width <= 0 {
		width = defaultIndentWidth
	}
	return &Serializer{
		unit:   strings.Repeat(" ", width),
		withTS: opts.Timestamps,
	}
}

// Render emits the event at depth len(frames), prefixed with whatever
// scaffolding keeps the stream valid: a document marker, placeholder records
// for scopes that have produced no output yet, and lazily opened steps:
// keys. The returned bytes are one complete fragment; writing them with a
// single flushed write preserves truncation safety.
func (s *Serializer) Render(evt event.Event, frames []scope.Frame) []byte {
	depth := len(frames)
	var buf bytes.Buffer

	if !s.docOpen {
		buf.WriteString("---\n")
		s.docOpen = true
		s.levels = s.levels[:0]
	}

	// Open the ancestry down to the parent depth. frames[i] is the scope
	// whose children render at depth i+1, so its label names the
	// placeholder at depth i.
	for i := 0; i < depth; i++ {
		for len(s.levels) <= i {
			s.levels = append(s.levels, levelState{})
		}
		if !s.levels[i].hasItem {
			s.renderPlaceholder(&buf, i, frames[i].Label)
			s.levels[i] = levelState{hasItem: true}
		}
		if !s.levels[i].stepsOpen {
			s.indent(&buf, s.dashColumn(i)+2)
			buf.WriteString("steps:\n")
			s.levels[i].stepsOpen = true
		}
	}

	// Writing at this depth implicitly closes anything deeper; YAML needs
	// no markers, only the state has to forget the stale levels.
	if len(s.levels) > depth+1 {
		s.levels = s.levels[:depth+1]
	}
	for len(s.levels) <= depth {
		s.levels = append(s.levels, levelState{})
	}
	s.levels[depth] = levelState{hasItem: true}

	s.renderRecord(&buf, evt, depth)
	return buf.Bytes()
}

// Reset forgets all nesting state; the next Render starts a new document.
func (s *Serializer) Reset() {
	s.docOpen = false
	s.levels = s.levels[:0]
}

// dashColumn is the column of the sequence dash at the given depth: each
// level adds the two columns of "- " plus one indent unit.
func (s *Serializer) dashColumn(depth int) int {
	return depth * (2 + len(s.unit))
}

func (s *Serializer) indent(buf *bytes.Buffer, col int) {
	for i := 0; i < col; i++ {
		buf.WriteByte(' ')
	}
}

func (s *Serializer) renderPlaceholder(buf *bytes.Buffer, depth int, label string) {
	s.indent(buf, s.dashColumn(depth))
	buf.WriteString("- scope: ")
	buf.WriteString(quoteIfNeeded(sanitizeLabel(label)))
	buf.WriteByte('\n')
}

func (s *Serializer) renderRecord(buf *bytes.Buffer, evt event.Event, depth int) {
	dash := s.dashColumn(depth)
	body := dash + 2

	s.indent(buf, dash)
	buf.WriteString("- msg:")
	s.appendString(buf, evt.Message, body)

	s.indent(buf, body)
	buf.WriteString("level: ")
	buf.WriteString(evt.Level.String())
	buf.WriteByte('\n')

	if s.withTS && !evt.Time.IsZero() {
		s.indent(buf, body)
		buf.WriteString("ts: ")
		buf.WriteString(evt.Time.UTC().Format(tsLayout))
		buf.WriteByte('\n')
	}

	if len(evt.Fields) > 0 {
		s.indent(buf, body)
		buf.WriteString("fields:\n")
		fieldCol := body + len(s.unit)
		for _, field := range evt.Fields {
			s.indent(buf, fieldCol)
			buf.WriteString(quoteKey(field.Key))
			buf.WriteByte(':')
			s.appendValue(buf, field.Value, fieldCol)
		}
	}
}

// appendString writes the value of a mapping key sitting at column col,
// including the separating space and the trailing newline. Multi-line values
// become block literals indented one unit past the key.
func (s *Serializer) appendString(buf *bytes.Buffer, value string, col int) {
	if literalSafe(value) {
		header, lines := literalParts(value)
		buf.WriteByte(' ')
		buf.WriteString(header)
		buf.WriteByte('\n')
		for _, line := range lines {
			if line == "" {
				buf.WriteByte('\n')
				continue
			}
			s.indent(buf, col+len(s.unit))
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(quoteIfNeeded(value))
	buf.WriteByte('\n')
}

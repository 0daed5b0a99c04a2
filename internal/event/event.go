package event

import (
	"errors"
	"fmt"
	"time"
)

// Directive tells the logger how a record moves the nesting depth before it
// is rendered.
type Directive int

const (
	// Hold keeps the current depth.
	Hold Directive = iota
	// Push opens a new scope; the record renders one level deeper.
	Push
	// Pop closes the current scope; the record renders at the shallower
	// depth. Popping at depth zero is a recovered warning, never a failure.
	Pop
	// Reset abandons all nesting state and starts a new document.
	Reset
)

// ErrDuplicateField reports two fields sharing a key within one event.
var ErrDuplicateField = errors.New("duplicate field key")

// Field is one ordered key/value pair attached to an event.
type Field struct {
	Key   string
	Value any
}

// Event is a single log record. Once constructed it is never mutated; the
// serializer consumes it and the value is discarded.
type Event struct {
	Time      time.Time
	Level     Level
	Message   string
	Fields    []Field
	Directive Directive
	Label     string // scope label, consulted when Directive is Push
}

// New builds an event stamped with the current time and validates that field
// keys are unique. A duplicate key wraps ErrDuplicateField.
func New(level Level, msg string, fields ...Field) (Event, error) {
	if err := validateFields(fields); err != nil {
		return Event{}, err
	}
	return Event{
		Time:    time.Now().UTC(),
		Level:   level,
		Message: msg,
		Fields:  fields,
	}, nil
}

func validateFields(fields []Field) error {
	if len(fields) < 2 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if _, ok := seen[field.Key]; ok {
			return fmt.Errorf("field %q: %w", field.Key, ErrDuplicateField)
		}
		seen[field.Key] = struct{}{}
	}
	return nil
}

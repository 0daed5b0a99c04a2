package logging

import (
	"context"
	"log/slog"
	"strings"

	"ymlog/internal/event"
)

// Reserved attribute keys that control nesting from slog call sites. They
// are consumed by the handler and never appear as fields in the stream.
const (
	KeyPush  = "ymlog.push"
	KeyPop   = "ymlog.pop"
	KeyReset = "ymlog.reset"
)

// PushAttr opens a labeled scope; the record carrying it renders one level
// deeper and subsequent records nest beneath it.
func PushAttr(label string) slog.Attr { return slog.String(KeyPush, label) }

// PopAttr closes the current scope before the record is rendered.
func PopAttr() slog.Attr { return slog.Bool(KeyPop, true) }

// ResetAttr starts a new log document.
func ResetAttr() slog.Attr { return slog.Bool(KeyReset, true) }

// Handler adapts a Logger to slog.Handler so conventional leveled call sites
// feed the stream writer.
type Handler struct {
	logger *Logger
	fields []event.Field // flattened attrs accumulated by WithAttrs
	groups []string
}

// NewHandler wraps the logger. Use it as slog.New(logging.NewHandler(l)).
func NewHandler(logger *Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return levelFromSlog(level) >= h.logger.minLevel()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	evt := event.Event{
		Time:    record.Time,
		Level:   levelFromSlog(record.Level),
		Message: record.Message,
	}

	fields := make([]event.Field, len(h.fields), len(h.fields)+record.NumAttrs())
	copy(fields, h.fields)
	record.Attrs(func(attr slog.Attr) bool {
		h.collect(&fields, &evt, h.groups, attr)
		return true
	})

	evt.Fields = fields
	return h.logger.Log(evt)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	for _, attr := range attrs {
		// Directives are call-site instructions; they make no sense baked
		// into a derived logger and are dropped here.
		clone.collect(&clone.fields, nil, clone.groups, attr)
	}
	return clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	if name != "" {
		clone.groups = append(clone.groups, name)
	}
	return clone
}

func (h *Handler) clone() *Handler {
	clone := &Handler{logger: h.logger}
	if len(h.fields) > 0 {
		clone.fields = make([]event.Field, len(h.fields))
		copy(clone.fields, h.fields)
	}
	if len(h.groups) > 0 {
		clone.groups = make([]string, len(h.groups))
		copy(clone.groups, h.groups)
	}
	return clone
}

// collect flattens one attribute into fields, expanding groups with
// dot-joined key prefixes and routing directive keys into the event. A nil
// evt drops directives instead.
func (h *Handler) collect(fields *[]event.Field, evt *event.Event, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()

	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string(nil), prefix...), attr.Key)
		}
		for _, member := range attr.Value.Group() {
			h.collect(fields, evt, next, member)
		}
		return
	}

	switch attr.Key {
	case KeyPush:
		if evt != nil {
			evt.Directive = event.Push
			evt.Label = attr.Value.String()
		}
		return
	case KeyPop:
		if evt != nil && attr.Value.Kind() == slog.KindBool && attr.Value.Bool() {
			evt.Directive = event.Pop
		}
		return
	case KeyReset:
		if evt != nil && attr.Value.Kind() == slog.KindBool && attr.Value.Bool() {
			evt.Directive = event.Reset
		}
		return
	}

	key := strings.TrimSpace(attr.Key)
	if key == "" {
		return
	}
	if len(prefix) > 0 {
		key = strings.Join(append(append([]string(nil), prefix...), key), ".")
	}
	*fields = setField(*fields, event.Field{Key: key, Value: fieldValue(attr.Value)})
}

// setField appends the field, or overwrites an earlier one with the same
// key. Last wins, which also keeps the unique-key invariant the event
// constructor would otherwise reject.
func setField(fields []event.Field, field event.Field) []event.Field {
	for i := range fields {
		if fields[i].Key == field.Key {
			fields[i].Value = field.Value
			return fields
		}
	}
	return append(fields, field)
}

func fieldValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindBool:
		return v.Bool()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindDuration:
		return v.Duration()
	case slog.KindTime:
		return v.Time()
	default:
		return v.Any()
	}
}

func levelFromSlog(level slog.Level) event.Level {
	switch {
	case level >= slog.LevelError:
		return event.LevelError
	case level >= slog.LevelWarn:
		return event.LevelWarn
	case level >= slog.LevelInfo:
		return event.LevelInfo
	case level >= slog.LevelDebug:
		return event.LevelDebug
	default:
		return event.LevelTrace
	}
}

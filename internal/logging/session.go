package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// FieldSessionID is the standardized field key for per-run session
// identifiers.
const FieldSessionID = "session_id"

// sessionHandler wraps another handler to inject a session_id attribute into
// all records.
type sessionHandler struct {
	base slog.Handler
	id   string
}

// NewSessionHandler wraps base so every record carries a session_id field.
// An empty id gets a fresh UUID.
func NewSessionHandler(base slog.Handler, id string) slog.Handler {
	if base == nil {
		return nil
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &sessionHandler{base: base, id: id}
}

func (h *sessionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *sessionHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.String(FieldSessionID, h.id))
	return h.base.Handle(ctx, record)
}

func (h *sessionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sessionHandler{base: h.base.WithAttrs(attrs), id: h.id}
}

func (h *sessionHandler) WithGroup(name string) slog.Handler {
	return &sessionHandler{base: h.base.WithGroup(name), id: h.id}
}

package logging

import (
	"context"
	"log/slog"
	"strings"
)

// RedactedValue replaces every secret occurrence in log output.
const RedactedValue = "***"

// SecretRedactingHandler is a decorator that scrubs known secret values from
// messages and attributes before forwarding to the underlying handler. Unlike
// pattern-based redaction it matches the literal secrets of this run, such as
// the hash phrase, wherever they appear.
type SecretRedactingHandler struct {
	handler  slog.Handler
	replacer *strings.Replacer
}

// NewSecretRedactingHandler wraps handler. Empty secrets are ignored; with no
// secrets left, records pass through unchanged.
func NewSecretRedactingHandler(handler slog.Handler, secrets ...string) *SecretRedactingHandler {
	var pairs []string
	for _, s := range secrets {
		if s != "" {
			pairs = append(pairs, s, RedactedValue)
		}
	}
	h := &SecretRedactingHandler{handler: handler}
	if len(pairs) > 0 {
		h.replacer = strings.NewReplacer(pairs...)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level
func (h *SecretRedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the log record and forwards it to the underlying handler
func (h *SecretRedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.replacer == nil {
		return h.handler.Handle(ctx, record)
	}

	newRecord := slog.NewRecord(record.Time, record.Level, h.replacer.Replace(record.Message), record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(h.redactAttr(attr))
		return true
	})
	return h.handler.Handle(ctx, newRecord)
}

// WithAttrs returns a new SecretRedactingHandler with the given attributes
func (h *SecretRedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		redacted = append(redacted, h.redactAttr(attr))
	}
	return &SecretRedactingHandler{handler: h.handler.WithAttrs(redacted), replacer: h.replacer}
}

// WithGroup returns a new SecretRedactingHandler with the given group name
func (h *SecretRedactingHandler) WithGroup(name string) slog.Handler {
	return &SecretRedactingHandler{handler: h.handler.WithGroup(name), replacer: h.replacer}
}

func (h *SecretRedactingHandler) redactAttr(attr slog.Attr) slog.Attr {
	if h.replacer == nil {
		return attr
	}

	value := attr.Value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		return slog.String(attr.Key, h.replacer.Replace(value.String()))
	case slog.KindGroup:
		group := value.Group()
		redacted := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			redacted = append(redacted, h.redactAttr(ga))
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindAny:
		// errors and Stringers are rendered to text so their contents can be scrubbed
		switch v := value.Any().(type) {
		case error:
			return slog.String(attr.Key, h.replacer.Replace(v.Error()))
		case interface{ String() string }:
			return slog.String(attr.Key, h.replacer.Replace(v.String()))
		}
	}
	return slog.Attr{Key: attr.Key, Value: value}
}

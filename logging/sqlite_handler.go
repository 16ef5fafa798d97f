package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/solara-go/database"
)

type LogAttrFormat string

const (
	LogAttrFormatText LogAttrFormat = "TEXT"
	LogAttrFormatJSON LogAttrFormat = "JSON"
)

// ModuleKey is lifted out of the attributes into its own column.
const ModuleKey = "module"

type LogStore interface {
	SaveLogEntry(ctx context.Context, r database.LogEntryRow) error
}

// SQLiteHandler stores records in the log table. Attributes added with
// WithAttrs are kept, groups prefix the keys of later attributes.
type SQLiteHandler struct {
	store    LogStore
	minLevel slog.Level
	format   LogAttrFormat
	module   string
	attrs    []slog.Attr
	prefix   string
}

func NewSQLiteHandler(store LogStore, minLevel slog.Level, format LogAttrFormat) *SQLiteHandler {
	return &SQLiteHandler{store: store, minLevel: minLevel, format: format}
}

func (h *SQLiteHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *SQLiteHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.minLevel {
		return nil
	}

	module := h.module
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == ModuleKey && h.prefix == "" {
			module = a.Value.String()
			return true
		}
		attrs = append(attrs, h.qualify(a))
		return true
	})

	return h.store.SaveLogEntry(ctx, database.LogEntryRow{
		Timestamp: r.Time,
		Level:     int(r.Level),
		Module:    module,
		Message:   r.Message,
		Attrs:     h.formatAttrs(attrs),
	})
}

func (h *SQLiteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		if a.Key == ModuleKey && h.prefix == "" {
			h2.module = a.Value.String()
			continue
		}
		h2.attrs = append(h2.attrs, h.qualify(a))
	}
	return &h2
}

func (h *SQLiteHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *SQLiteHandler) qualify(a slog.Attr) slog.Attr {
	if h.prefix == "" {
		return a
	}
	return slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
}

func (h *SQLiteHandler) formatAttrs(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return ""
	}

	if h.format == LogAttrFormatText {
		var b strings.Builder
		for _, a := range attrs {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(a.Key)
			b.WriteString("=")
			b.WriteString(textEscaper.Replace(a.Value.Resolve().String()))
		}
		return b.String()
	}

	list := make([]map[string]string, len(attrs))
	for i, a := range attrs {
		list[i] = map[string]string{a.Key: a.Value.Resolve().String()}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}

var textEscaper = strings.NewReplacer("=", `\=`, ";", `\;`)

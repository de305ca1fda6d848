package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceByLevel attaches the caller location only to records whose level is in
// levels. The wrapped handler must be built with AddSource disabled.
type sourceByLevel struct {
	next   slog.Handler
	levels map[slog.Level]struct{}
}

func NewConditionalSourceHandler(next slog.Handler, levels ...slog.Level) slog.Handler {
	set := make(map[slog.Level]struct{}, len(levels))
	for _, l := range levels {
		set[l] = struct{}{}
	}
	return &sourceByLevel{next: next, levels: set}
}

func (h *sourceByLevel) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceByLevel) Handle(ctx context.Context, r slog.Record) error {
	if _, ok := h.levels[r.Level]; ok && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceByLevel) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceByLevel{next: h.next.WithAttrs(attrs), levels: h.levels}
}

func (h *sourceByLevel) WithGroup(name string) slog.Handler {
	return &sourceByLevel{next: h.next.WithGroup(name), levels: h.levels}
}

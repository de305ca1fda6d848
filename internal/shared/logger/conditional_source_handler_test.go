package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler(t *testing.T) {
	warnAndError := []slog.Level{slog.LevelWarn, slog.LevelError}

	tests := []struct {
		name       string
		level      slog.Level
		levels     []slog.Level
		wantSource bool
	}{
		{name: "info is plain", level: slog.LevelInfo, levels: warnAndError, wantSource: false},
		{name: "warn carries source", level: slog.LevelWarn, levels: warnAndError, wantSource: true},
		{name: "error carries source", level: slog.LevelError, levels: warnAndError, wantSource: true},
		{name: "info when all levels enabled", level: slog.LevelInfo, levels: []slog.Level{slog.LevelInfo, slog.LevelWarn}, wantSource: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), tt.levels...))

			l.Log(context.Background(), tt.level, "dispatch cycle finished")

			assert.Equal(t, tt.wantSource, strings.Contains(buf.String(), "source="), buf.String())
		})
	}
}

func TestConditionalSourceHandlerKeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelWarn)).
		With("component", "dispatcher").
		WithGroup("cycle")

	l.Warn("delivery failed", "customer_id", "cus_1")

	out := buf.String()
	assert.Contains(t, out, "component=dispatcher")
	assert.Contains(t, out, "cycle.customer_id=cus_1")
	assert.Contains(t, out, "source=")
}

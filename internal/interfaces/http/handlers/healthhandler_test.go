package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers/testutil"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthCheck{"database": up}, logger.NewNopLogger())
		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"up"`)
	})

	t.Run("dependency down", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthCheck{"database": up, "redis": down}, logger.NewNopLogger())
		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"down"`)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})
}

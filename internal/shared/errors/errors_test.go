package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewConflictError("dup"), http.StatusConflict},
		{NewInvalidCredentialError("rejected"), http.StatusUnprocessableEntity},
		{NewBotInactiveError("off"), http.StatusConflict},
		{NewDeliveryError("send"), http.StatusBadGateway},
		{NewPersistenceError("db"), http.StatusServiceUnavailable},
		{NewInternalError("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestGetAppErrorThroughWrapping(t *testing.T) {
	root := errors.New("connection refused")
	wrapped := fmt.Errorf("save settings: %w", NewPersistenceError("store unavailable").WithCause(root))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypePersistence, appErr.Type)
	assert.ErrorIs(t, wrapped, root)
	assert.False(t, IsNotFoundError(wrapped))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(errors.New("Error 1062: Duplicate entry 'x' for key 'discord_id'")))
	assert.True(t, IsDuplicateError(errors.New("UNIQUE constraint failed: customers.discord_id")))
	assert.False(t, IsDuplicateError(errors.New("no such table")))
	assert.False(t, IsDuplicateError(nil))
}

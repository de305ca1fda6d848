package discord

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError is a structured Discord REST error response.
type APIError struct {
	StatusCode int     // HTTP status
	Code       int     // Discord JSON error code, 0 when absent
	Message    string  // Human-readable message
	RetryAfter float64 // Seconds to wait (only for 429)
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("discord API error %d: %s (retry_after=%.2fs)", e.StatusCode, e.Message, e.RetryAfter)
	}
	if e.Code != 0 {
		return fmt.Sprintf("discord API error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("discord API error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether Discord rejected the bot token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsCannotMessageUser reports a 403/50007: the user has DMs closed or left the guild.
func IsCannotMessageUser(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden && apiErr.Code == 50007
	}
	return false
}

func IsRetryAfter(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests && apiErr.RetryAfter > 0
	}
	return false
}

// GetRetryAfter returns the wait advised by a 429, or 0.
func GetRetryAfter(err error) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return time.Duration(apiErr.RetryAfter * float64(time.Second))
	}
	return 0
}

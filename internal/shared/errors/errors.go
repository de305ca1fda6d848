// Package errors defines the application error taxonomy shared by every layer.
// Each AppError carries the HTTP status it maps to.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation_error"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeConflict          ErrorType = "conflict"
	ErrorTypeInvalidCredential ErrorType = "invalid_credential"
	ErrorTypeBotInactive       ErrorType = "bot_inactive"
	ErrorTypeDelivery          ErrorType = "delivery_error"
	ErrorTypePersistence       ErrorType = "persistence_error"
	ErrorTypeInternal          ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	cause   error
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause keeps err reachable through errors.Is/As without exposing it to callers.
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func newError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{Type: t, Message: message, Code: code, Details: detail}
}

func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewInvalidCredentialError is returned when the delivery channel rejects the bot token.
func NewInvalidCredentialError(message string, details ...string) *AppError {
	return newError(ErrorTypeInvalidCredential, http.StatusUnprocessableEntity, message, details)
}

// NewBotInactiveError is returned when a send is attempted while the bot is disabled.
func NewBotInactiveError(message string, details ...string) *AppError {
	return newError(ErrorTypeBotInactive, http.StatusConflict, message, details)
}

func NewDeliveryError(message string, details ...string) *AppError {
	return newError(ErrorTypeDelivery, http.StatusBadGateway, message, details)
}

func NewPersistenceError(message string, details ...string) *AppError {
	return newError(ErrorTypePersistence, http.StatusServiceUnavailable, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsNotFoundError(err error) bool          { return isType(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool        { return isType(err, ErrorTypeValidation) }
func IsConflictError(err error) bool          { return isType(err, ErrorTypeConflict) }
func IsInvalidCredentialError(err error) bool { return isType(err, ErrorTypeInvalidCredential) }
func IsBotInactiveError(err error) bool       { return isType(err, ErrorTypeBotInactive) }
func IsDeliveryError(err error) bool          { return isType(err, ErrorTypeDelivery) }

// IsDuplicateError reports whether err is a unique-key violation from MySQL or SQLite.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

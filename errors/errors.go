package errors

import (
	"fmt"
	"net/http"

	"github.com/roteirolab/roteiro-backend/logger"
)

type ErrorType string

const (
	ValidationError        ErrorType = "VALIDATION_ERROR"
	NotFoundError          ErrorType = "NOT_FOUND"
	StoreError             ErrorType = "STORE_ERROR"
	ServerError            ErrorType = "SERVER_ERROR"
	ExtractionError        ErrorType = "EXTRACTION_ERROR"
	QuoteNotFoundError     ErrorType = "QUOTE_NOT_FOUND"
	DestinationSetupError  ErrorType = "DESTINATION_NOT_CONFIGURED"
	ShareDeliveryError     ErrorType = "SHARE_DELIVERY_FAILED"
	InvalidTransitionError ErrorType = "INVALID_WORKFLOW_TRANSITION"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status code for the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func QuoteNotFound(id string) *AppError {
	return &AppError{
		Type:       QuoteNotFoundError,
		Message:    "Quote not found",
		Detail:     fmt.Sprintf("Quote ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewStoreError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Store error", "error", err)
	return &AppError{
		Type:       StoreError,
		Message:    "Storage operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func ExtractionFailed(message string, detail string) *AppError {
	return &AppError{
		Type:       ExtractionError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusBadGateway,
	}
}

func DestinationNotConfigured(key string) *AppError {
	return &AppError{
		Type:       DestinationSetupError,
		Message:    "Destination assets not configured",
		Detail:     fmt.Sprintf("Destination key: %s", key),
		HTTPStatus: http.StatusConflict,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, QuoteNotFoundError:
		return http.StatusNotFound
	case StoreError:
		return http.StatusInternalServerError
	case ExtractionError, ShareDeliveryError:
		return http.StatusBadGateway
	case DestinationSetupError:
		return http.StatusConflict
	case InvalidTransitionError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

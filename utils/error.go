package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes classifying service failures. Handlers map codes to HTTP status.
const (
	ErrCodeValidation = "validation"
	ErrCodeNotFound   = "not_found"
	ErrCodeForbidden  = "forbidden"
	ErrCodeConflict   = "conflict"
	ErrCodeUpstream   = "upstream"
	ErrCodeInternal   = "internal"
)

// ServiceError is the error type returned by service-layer operations.
type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func ValidationError(msg string) error {
	return &ServiceError{Code: ErrCodeValidation, Message: msg}
}

func NotFoundError(msg string) error {
	return &ServiceError{Code: ErrCodeNotFound, Message: msg}
}

func ForbiddenError(msg string) error {
	return &ServiceError{Code: ErrCodeForbidden, Message: msg}
}

func ConflictError(msg string) error {
	return &ServiceError{Code: ErrCodeConflict, Message: msg}
}

func UpstreamError(msg string, err error) error {
	return &ServiceError{Code: ErrCodeUpstream, Message: msg, Err: err}
}

func InternalError(msg string, err error) error {
	return &ServiceError{Code: ErrCodeInternal, Message: msg, Err: err}
}

// ErrorCode extracts the service error code, defaulting to internal.
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

func statusForCode(code string) int {
	switch code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONServiceError maps a service error to its HTTP status and responds.
func JSONServiceError(c *gin.Context, err error) {
	var se *ServiceError
	if !errors.As(err, &se) {
		se = &ServiceError{Code: ErrCodeInternal, Message: err.Error()}
	}
	logger := GetLogger()
	status := statusForCode(se.Code)
	if status >= http.StatusInternalServerError {
		logger.Error(se.Message, zap.String("code", se.Code), zap.Error(se.Err))
	} else {
		logger.Warn(se.Message, zap.String("code", se.Code))
	}
	c.JSON(status, ErrorResponse{Message: se.Message})
}

package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the closed set of error categories the API can produce. Every
// service error carries a Kind; the HTTP status is derived from it exactly
// once, in Respond. Nothing regex-matches message text.
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindStorage      Kind = "STORAGE_ERROR"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// Error is a typed API error. Instances created once at package level act as
// sentinels, so handlers and tests can use errors.Is against them.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error { return New(KindValidation, message) }
func Forbidden(message string) *Error  { return New(KindForbidden, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }
func Storage(message string) *Error    { return New(KindStorage, message) }
func Internal(message string) *Error   { return New(KindInternal, message) }

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond converts any error into the `{ok:false, code, error}` envelope.
// Unrecognized errors become 500 without leaking their message.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal("Internal server error")
	}
	c.JSON(statusFor(apiErr.Kind), gin.H{
		"ok":    false,
		"code":  apiErr.Kind,
		"error": apiErr.Message,
	})
}

// Unauthorized sends a 401 response directly; used by middleware before any
// service is involved.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, gin.H{
		"ok":    false,
		"code":  KindUnauthorized,
		"error": message,
	})
}

// ForbiddenResponse sends a 403 response directly from middleware.
func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	c.JSON(http.StatusForbidden, gin.H{
		"ok":    false,
		"code":  KindForbidden,
		"error": message,
	})
}

// BadRequest sends a 400 response for malformed request bodies.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request body"
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"ok":    false,
		"code":  KindValidation,
		"error": message,
	})
}

// NotFoundResponse sends a 404 response directly from middleware.
func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, gin.H{
		"ok":    false,
		"code":  KindNotFound,
		"error": message,
	})
}

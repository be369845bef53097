package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated     = errors.New("user not authenticated")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrSignatureInvalid    = errors.New("invalid callback signature")
	ErrUnknownReference    = errors.New("unknown transaction reference")
	ErrIdempotencyConflict = errors.New("idempotency key already used for a different request")
)

// ValidationError is a bad plan, amount or payload supplied by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// GatewayError is a failure reported by the payment gateway. Detail holds the
// provider's diagnostic payload and never contains credentials.
type GatewayError struct {
	Op         string
	StatusCode int
	Message    string
	Detail     any
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("gateway %s failed", e.Op)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// StatusFor maps an error to the HTTP status the core reports for it.
func StatusFor(err error) int {
	var verr *ValidationError
	var gerr *GatewayError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrIdempotencyConflict):
		return http.StatusConflict
	case errors.As(err, &gerr):
		return http.StatusBadRequest
	case errors.Is(err, ErrSignatureInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownReference):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err using the shared taxonomy. Internal errors are not
// echoed to the caller.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	var gerr *GatewayError
	if errors.As(err, &gerr) {
		resp = ErrorResponse{Error: "payment gateway error", Detail: gerr.Detail}
		if gerr.Message != "" {
			resp.Error = "payment gateway error: " + gerr.Message
		}
	}
	if status == http.StatusInternalServerError {
		resp = ErrorResponse{Error: "internal server error"}
	}

	c.JSON(status, resp)
}

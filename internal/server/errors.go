package server

import (
	"errors"
	"net/http"

	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	clientdomain "github.com/disenolab/cotiza/internal/client/domain"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPaymentRequired = errors.New("payment_required")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrInternal        = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrPaymentRequired):
		return http.StatusPaymentRequired, errorPayload{
			Type:    "payment_required",
			Message: "an active subscription is required",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, billingdomain.ErrProviderDisabled):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "billing provider not configured",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ratetabledomain.ErrInvalidOwner),
		errors.Is(err, ratetabledomain.ErrInvalidTable),
		errors.Is(err, clientdomain.ErrInvalidOwner),
		errors.Is(err, clientdomain.ErrInvalidClient),
		errors.Is(err, clientdomain.ErrMissingName),
		errors.Is(err, quotedomain.ErrInvalidOwner),
		errors.Is(err, quotedomain.ErrInvalidQuote),
		errors.Is(err, quotedomain.ErrInvalidClient),
		errors.Is(err, quotedomain.ErrInvalidStatus),
		errors.Is(err, quotedomain.ErrMissingItems),
		errors.Is(err, billingdomain.ErrInvalidRequest):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, quotedomain.ErrQuoteNotFound),
		errors.Is(err, quotedomain.ErrClientNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound),
		errors.Is(err, billingdomain.ErrNoCustomer),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

package server

import (
	"errors"
	"io"
	"net/http"

	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req billingdomain.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.UserID = userID(c)

	resp, err := s.billingSvc.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreatePortalSession(c *gin.Context) {
	var req billingdomain.PortalSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.UserID = userID(c)

	resp, err := s.billingSvc.CreatePortalSession(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSubscription(c *gin.Context) {
	entitlement, err := s.subscriptionSvc.Entitlement(c.Request.Context(), userID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entitlement})
}

// HandleStripeWebhook terminates provider deliveries. Replayed and ignored
// events acknowledge with 200 so the provider stops retrying; a bad
// signature is a hard 400; anything else returns 5xx for redelivery.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err = s.billingSvc.IngestWebhook(c.Request.Context(), payload, c.Request.Header)
	switch {
	case err == nil,
		errors.Is(err, billingdomain.ErrEventAlreadyProcessed),
		errors.Is(err, billingdomain.ErrEventIgnored):
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, billingdomain.ErrInvalidSignature),
		errors.Is(err, billingdomain.ErrProviderDisabled):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorPayload{
			Type:    "invalid_signature",
			Message: "webhook signature verification failed",
		}})
	case errors.Is(err, billingdomain.ErrInvalidPayload),
		errors.Is(err, billingdomain.ErrMissingUserMetadata),
		errors.Is(err, billingdomain.ErrInvalidEvent):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorPayload{
			Type:    "invalid_payload",
			Message: "webhook payload rejected",
		}})
	default:
		s.log.Error("webhook processing failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: errorPayload{
			Type:    "internal_error",
			Message: "webhook processing failed",
		}})
	}
}

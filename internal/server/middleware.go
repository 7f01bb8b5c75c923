package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUser carries the authenticated account id, set by the gateway
	// in front of this service.
	HeaderUser = "X-User-ID"

	contextUserIDKey = "user_id"
)

// UserRequired rejects requests without an account identity.
func (s *Server) UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUser))
		if userID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

// EntitlementRequired gates mutations behind an active subscription.
func (s *Server) EntitlementRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		active, err := s.subscriptionSvc.IsEntitled(c.Request.Context(), userID(c))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !active {
			AbortWithError(c, ErrPaymentRequired)
			return
		}
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

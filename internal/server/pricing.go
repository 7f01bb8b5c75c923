package server

import (
	"net/http"

	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	quoteservice "github.com/disenolab/cotiza/internal/quote/service"
	"github.com/gin-gonic/gin"
)

// PriceSelection prices a single selection against the caller's effective
// rate table without persisting anything.
func (s *Server) PriceSelection(c *gin.Context) {
	var req pricingdomain.Selection
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	table, err := s.rateSvc.Effective(c.Request.Context(), userID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	item := s.pricingSvc.Price(c.Request.Context(), req, table)
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// AggregateItems computes quote totals for already priced line items.
func (s *Server) AggregateItems(c *gin.Context) {
	var req quotedomain.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	totals := quoteservice.Aggregate(req.LineItems, req.Discounts)
	c.JSON(http.StatusOK, gin.H{"data": totals})
}

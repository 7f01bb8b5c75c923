package server

import (
	"net/http"

	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	"github.com/gin-gonic/gin"
)

type rateTableResponse struct {
	Prices ratetabledomain.Table  `json:"prices"`
	Labels ratetabledomain.Labels `json:"labels"`
}

func (s *Server) GetRateTable(c *gin.Context) {
	table, err := s.rateSvc.Effective(c.Request.Context(), userID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": effectiveResponse(table)})
}

func (s *Server) UpdateRateTable(c *gin.Context) {
	var req ratetabledomain.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	table, err := s.rateSvc.Update(c.Request.Context(), userID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": effectiveResponse(table)})
}

func (s *Server) ResetRateTable(c *gin.Context) {
	table, err := s.rateSvc.Reset(c.Request.Context(), userID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": effectiveResponse(table)})
}

func effectiveResponse(table ratetabledomain.Effective) rateTableResponse {
	return rateTableResponse{
		Prices: table.Custom,
		Labels: table.CustomLabels,
	}
}

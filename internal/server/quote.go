package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/disenolab/cotiza/internal/providers/pdf"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateQuote(c *gin.Context) {
	var req quotedomain.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.OwnerID = userID(c)

	resp, err := s.quoteSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListQuotes(c *gin.Context) {
	resp, err := s.quoteSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.quoteSvc.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateQuote(c *gin.Context) {
	var req quotedomain.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.OwnerID = userID(c)
	req.QuoteID = strings.TrimSpace(c.Param("id"))

	resp, err := s.quoteSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.quoteSvc.Delete(c.Request.Context(), userID(c), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

// GetQuoteProposal renders the quote as a client-facing PDF.
func (s *Server) GetQuoteProposal(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	quote, err := s.quoteSvc.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := s.proposalData(c, quote)
	reader, err := s.pdfProvider.GenerateProposal(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=cotizacion-%s.pdf", quote.ID.String()))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (s *Server) proposalData(c *gin.Context, quote quotedomain.Quote) pdf.ProposalData {
	items := quote.LineItems.Data()
	discounts := quote.Discounts.Data()

	var subtotal int64
	proposalItems := make([]pdf.ProposalItem, 0, len(items))
	for _, item := range items {
		subtotal += item.FinalPrice
		proposalItems = append(proposalItems, pdf.ProposalItem{
			Service:      item.Name,
			Detail:       strings.Join([]string{item.Complexity, item.Urgency, item.Scope}, " / "),
			Qty:          item.Quantity,
			DeliveryDays: item.DeliveryDays,
			PriceMXN:     formatAmount(item.FinalPrice),
			PriceUSD:     formatAmount(item.FinalPriceUSD),
		})
	}

	data := pdf.ProposalData{
		StudioName:  s.cfg.AppName,
		QuoteNumber: quote.ID.String(),
		IssueDate:   quote.CreatedAt.Format("02/01/2006"),
		Status:      string(quote.Status),
		Items:       proposalItems,
		SubtotalMXN: formatAmount(subtotal),
		Discounts:   proposalAdjustments(discounts),
		TotalMXN:    formatAmount(quote.TotalMXN),
		TotalUSD:    formatAmount(quote.TotalUSD),
	}

	if quote.ClientID != nil {
		client, err := s.clientSvc.Get(c.Request.Context(), quote.OwnerID, quote.ClientID.String())
		if err == nil {
			data.ClientName = client.Name
			data.ClientEmail = client.Email
		}
	}

	return data
}

func proposalAdjustments(discounts quotedomain.DiscountConfig) []pdf.ProposalAdjustment {
	var adjustments []pdf.ProposalAdjustment
	if discounts.VolumeDiscount != "" && discounts.VolumeDiscount != quotedomain.VolumeNone {
		adjustments = append(adjustments, pdf.ProposalAdjustment{
			Label: "Descuento por volumen",
			Value: discounts.VolumeDiscount,
		})
	}
	if discounts.ClientType != "" && discounts.ClientType != quotedomain.ClientNormal {
		adjustments = append(adjustments, pdf.ProposalAdjustment{
			Label: "Descuento por tipo de cliente",
			Value: discounts.ClientType,
		})
	}
	if discounts.Maintenance != "" && discounts.Maintenance != quotedomain.MaintenanceNone {
		adjustments = append(adjustments, pdf.ProposalAdjustment{
			Label: "Mantenimiento",
			Value: discounts.Maintenance,
		})
	}
	return adjustments
}

// formatAmount renders an integer amount with thousands separators.
func formatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return sign + "$" + strings.Join(parts, ",")
}

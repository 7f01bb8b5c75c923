package domain

import (
	"context"
	"errors"

	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
)

type CreateQuoteRequest struct {
	OwnerID    string
	ClientID   string                    `json:"client_id,omitempty"`
	Selections []pricingdomain.Selection `json:"selections"`
	Discounts  DiscountConfig            `json:"discounts"`
}

type UpdateQuoteRequest struct {
	OwnerID    string
	QuoteID    string
	ClientID   *string                    `json:"client_id,omitempty"`
	Selections *[]pricingdomain.Selection `json:"selections,omitempty"`
	Discounts  *DiscountConfig            `json:"discounts,omitempty"`
	Status     *QuoteStatus               `json:"status,omitempty"`
}

type AggregateRequest struct {
	LineItems []pricingdomain.LineItem `json:"line_items"`
	Discounts DiscountConfig           `json:"discounts"`
}

//go:generate mockgen -source=service.go -destination=./mocks/mock_service.go -package=mocks
type Service interface {
	Create(ctx context.Context, req CreateQuoteRequest) (Quote, error)
	Get(ctx context.Context, ownerID, quoteID string) (Quote, error)
	List(ctx context.Context, ownerID string) ([]QuoteSummary, error)
	Update(ctx context.Context, req UpdateQuoteRequest) (Quote, error)
	Delete(ctx context.Context, ownerID, quoteID string) error
}

var (
	ErrInvalidOwner   = errors.New("invalid_owner")
	ErrInvalidQuote   = errors.New("invalid_quote")
	ErrInvalidClient  = errors.New("invalid_client")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrMissingItems   = errors.New("missing_line_items")
	ErrQuoteNotFound  = errors.New("quote_not_found")
	ErrClientNotFound = errors.New("client_not_found")
)

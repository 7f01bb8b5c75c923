// Package pdf renders quote proposals as PDF documents.
package pdf

import (
	"context"
	"io"
)

// ProposalData is the flattened, display-ready view of a quote. Prices
// arrive already formatted so the renderer never re-rounds.
type ProposalData struct {
	StudioName  string
	QuoteNumber string
	IssueDate   string
	Status      string

	ClientName  string
	ClientEmail string

	Items []ProposalItem

	SubtotalMXN string
	Discounts   []ProposalAdjustment
	TotalMXN    string
	TotalUSD    string
	Notes       string
}

type ProposalItem struct {
	Service      string
	Detail       string
	Qty          int
	DeliveryDays int
	PriceMXN     string
	PriceUSD     string
}

// ProposalAdjustment is one applied discount or surcharge line.
type ProposalAdjustment struct {
	Label string
	Value string
}

type Provider interface {
	GenerateProposal(ctx context.Context, data ProposalData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateProposal(ctx context.Context, data ProposalData) (io.Reader, error) {
	return nil, nil
}

package domain

import (
	"context"

	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
)

// Service prices selections against an effective rate table. Implementations
// are pure with respect to their inputs and safe for concurrent use.
type Service interface {
	Price(ctx context.Context, selection Selection, table ratetabledomain.Effective) LineItem
	// Reprice re-runs the full pipeline with a new quantity. The original
	// divide-by-old-quantity shortcut accumulated rounding drift across
	// repeated edits; a full recompute does not.
	Reprice(ctx context.Context, item LineItem, quantity int, table ratetabledomain.Effective) LineItem
}

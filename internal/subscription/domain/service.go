package domain

import (
	"context"
	"errors"
	"time"
)

// ApplyCheckoutRequest carries the state from a completed checkout: the only
// event that binds a user id to a provider customer.
type ApplyCheckoutRequest struct {
	UserID               string
	StripeCustomerID     string
	StripeSubscriptionID string
	PlanType             PlanType
	Status               string
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
}

// ApplyProviderUpdateRequest carries the mutable fields of a subscription
// update or deletion. A deletion is a status change, not a removal.
type ApplyProviderUpdateRequest struct {
	StripeCustomerID     string
	StripeSubscriptionID string
	Status               string
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	CancelAt             *time.Time
	CanceledAt           *time.Time
}

type Service interface {
	ApplyCheckout(ctx context.Context, req ApplyCheckoutRequest) error
	// ApplyProviderUpdate upserts by provider customer id. When no record
	// exists yet (update delivered before the checkout event) a placeholder
	// row without a user id is created and completed later by ApplyCheckout.
	ApplyProviderUpdate(ctx context.Context, req ApplyProviderUpdateRequest) error
	Get(ctx context.Context, userID string) (*Record, error)
	Entitlement(ctx context.Context, userID string) (Entitlement, error)
	IsEntitled(ctx context.Context, userID string) (bool, error)
}

var (
	ErrInvalidUser     = errors.New("invalid_user")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidStatus   = errors.New("invalid_status")
)

// Package domain contains the billing provider event model and contracts.
package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EventRecord stores every accepted provider event. The unique provider
// event id plus ProcessedAt make reprocessing under at-least-once delivery a
// no-op.
type EventRecord struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Provider        string         `json:"provider" gorm:"type:text;not null"`
	ProviderEventID string         `json:"provider_event_id" gorm:"type:text;not null;uniqueIndex"`
	EventType       string         `json:"event_type" gorm:"type:text;not null"`
	Payload         datatypes.JSON `json:"payload" gorm:"not null"`
	ReceivedAt      time.Time      `json:"received_at" gorm:"not null"`
	ProcessedAt     *time.Time     `json:"processed_at"`
}

// TableName sets the database table name.
func (EventRecord) TableName() string { return "billing_events" }

// Canonical event types after parsing.
const (
	EventTypeCheckoutCompleted   = "checkout_completed"
	EventTypeSubscriptionUpdated = "subscription_updated"
	EventTypeSubscriptionDeleted = "subscription_deleted"
)

// BillingEvent is the canonical event parsed from a provider webhook.
type BillingEvent struct {
	Provider        string
	ProviderEventID string
	Type            string
	UserID          string
	CustomerID      string
	SubscriptionID  string
	Status          string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
	CancelAt        *time.Time
	CanceledAt      *time.Time
	RawPayload      []byte
}

// SubscriptionDetail is the provider's full view of one subscription,
// fetched after a checkout completes.
type SubscriptionDetail struct {
	ID             string
	CustomerID     string
	Status         string
	PriceLookupKey string
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	CancelAt       *time.Time
	CanceledAt     *time.Time
}

// Adapter verifies and parses provider webhooks.
type Adapter interface {
	Provider() string
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*BillingEvent, error)
}

// ProviderClient is the thin outbound surface to the billing provider.
type ProviderClient interface {
	FetchSubscription(ctx context.Context, subscriptionID string) (*SubscriptionDetail, error)
	NewCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
	NewPortalSession(ctx context.Context, customerID, returnURL string) (PortalSession, error)
}

type CheckoutSessionRequest struct {
	UserID     string `json:"user_id"`
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
}

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type PortalSessionRequest struct {
	UserID    string `json:"user_id"`
	ReturnURL string `json:"return_url,omitempty"`
}

type PortalSession struct {
	URL string `json:"url"`
}

type Service interface {
	// IngestWebhook verifies, records and applies one provider event. A
	// replayed event returns ErrEventAlreadyProcessed; any other error must
	// surface as non-2xx so the provider redelivers.
	IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
	CreatePortalSession(ctx context.Context, req PortalSessionRequest) (PortalSession, error)
}

var (
	ErrInvalidRequest        = errors.New("invalid_request")
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrInvalidPayload        = errors.New("invalid_payload")
	ErrInvalidEvent          = errors.New("invalid_event")
	ErrEventIgnored          = errors.New("event_ignored")
	ErrEventAlreadyProcessed = errors.New("event_already_processed")
	ErrMissingUserMetadata   = errors.New("missing_user_metadata")
	ErrNoCustomer            = errors.New("no_customer")
	ErrProviderDisabled      = errors.New("provider_disabled")
)

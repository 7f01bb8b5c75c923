// Package stripe adapts Stripe webhooks and API calls to the billing domain.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	"github.com/disenolab/cotiza/internal/config"
	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

const providerName = "stripe"

// Adapter wraps the Stripe SDK. It is disabled when no secret key is
// configured; calls then return ErrProviderDisabled.
type Adapter struct {
	sc            *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func New(cfg config.Config) *Adapter {
	a := &Adapter{
		webhookSecret: cfg.StripeWebhookSecret,
		successURL:    cfg.CheckoutSuccessURL,
		cancelURL:     cfg.CheckoutCancelURL,
	}
	if cfg.StripeSecretKey != "" {
		a.sc = &client.API{}
		a.sc.Init(cfg.StripeSecretKey, nil)
	}
	return a
}

func (a *Adapter) Provider() string { return providerName }

// Verify checks the Stripe-Signature header against the raw payload. An
// unset webhook secret fails closed.
func (a *Adapter) Verify(_ context.Context, payload []byte, headers http.Header) error {
	if a.webhookSecret == "" {
		return billingdomain.ErrProviderDisabled
	}
	sig := headers.Get("Stripe-Signature")
	if _, err := webhook.ConstructEvent(payload, sig, a.webhookSecret); err != nil {
		return fmt.Errorf("%w: %v", billingdomain.ErrInvalidSignature, err)
	}
	return nil
}

type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type checkoutSessionObject struct {
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

type subscriptionObject struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	CancelAt           int64  `json:"cancel_at"`
	CanceledAt         int64  `json:"canceled_at"`
}

// Parse maps a raw Stripe event to a canonical billing event. Event types
// outside the handled set return ErrEventIgnored.
func (a *Adapter) Parse(_ context.Context, payload []byte) (*billingdomain.BillingEvent, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", billingdomain.ErrInvalidPayload, err)
	}
	if envelope.ID == "" || envelope.Type == "" {
		return nil, billingdomain.ErrInvalidPayload
	}

	event := &billingdomain.BillingEvent{
		Provider:        providerName,
		ProviderEventID: envelope.ID,
		RawPayload:      payload,
	}

	switch envelope.Type {
	case "checkout.session.completed":
		var object checkoutSessionObject
		if err := json.Unmarshal(envelope.Data.Object, &object); err != nil {
			return nil, fmt.Errorf("%w: %v", billingdomain.ErrInvalidPayload, err)
		}
		event.Type = billingdomain.EventTypeCheckoutCompleted
		event.UserID = object.Metadata["user_id"]
		event.CustomerID = object.Customer
		event.SubscriptionID = object.Subscription
		if event.UserID == "" {
			return nil, billingdomain.ErrMissingUserMetadata
		}
		if event.CustomerID == "" {
			return nil, billingdomain.ErrInvalidEvent
		}
		return event, nil

	case "customer.subscription.updated", "customer.subscription.deleted":
		var object subscriptionObject
		if err := json.Unmarshal(envelope.Data.Object, &object); err != nil {
			return nil, fmt.Errorf("%w: %v", billingdomain.ErrInvalidPayload, err)
		}
		if envelope.Type == "customer.subscription.deleted" {
			event.Type = billingdomain.EventTypeSubscriptionDeleted
		} else {
			event.Type = billingdomain.EventTypeSubscriptionUpdated
		}
		event.CustomerID = object.Customer
		event.SubscriptionID = object.ID
		event.Status = object.Status
		event.PeriodStart = unixPtr(object.CurrentPeriodStart)
		event.PeriodEnd = unixPtr(object.CurrentPeriodEnd)
		event.CancelAt = unixPtr(object.CancelAt)
		event.CanceledAt = unixPtr(object.CanceledAt)
		if event.CustomerID == "" {
			return nil, billingdomain.ErrInvalidEvent
		}
		return event, nil
	}

	return nil, billingdomain.ErrEventIgnored
}

// FetchSubscription retrieves the provider's full view of a subscription,
// including the price lookup key that decides the plan type.
func (a *Adapter) FetchSubscription(_ context.Context, subscriptionID string) (*billingdomain.SubscriptionDetail, error) {
	if a.sc == nil {
		return nil, billingdomain.ErrProviderDisabled
	}
	sub, err := a.sc.Subscriptions.Get(subscriptionID, nil)
	if err != nil {
		return nil, err
	}
	detail := &billingdomain.SubscriptionDetail{
		ID:          sub.ID,
		Status:      string(sub.Status),
		PeriodStart: unixPtr(sub.CurrentPeriodStart),
		PeriodEnd:   unixPtr(sub.CurrentPeriodEnd),
		CancelAt:    unixPtr(sub.CancelAt),
		CanceledAt:  unixPtr(sub.CanceledAt),
	}
	if sub.Customer != nil {
		detail.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		detail.PriceLookupKey = sub.Items.Data[0].Price.LookupKey
	}
	return detail, nil
}

// NewCheckoutSession creates a hosted checkout session for the given price.
// The user id travels in the session metadata so the completion webhook can
// bind the resulting customer back to an account.
func (a *Adapter) NewCheckoutSession(_ context.Context, req billingdomain.CheckoutSessionRequest) (billingdomain.CheckoutSession, error) {
	if a.sc == nil {
		return billingdomain.CheckoutSession{}, billingdomain.ErrProviderDisabled
	}

	mode := stripe.CheckoutSessionModePayment
	price, err := a.sc.Prices.Get(req.PriceID, nil)
	if err != nil {
		return billingdomain.CheckoutSession{}, err
	}
	if price.Recurring != nil {
		mode = stripe.CheckoutSessionModeSubscription
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = a.successURL
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = a.cancelURL
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Mode:       stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(req.PriceID),
			Quantity: stripe.Int64(1),
		}},
		ClientReferenceID: stripe.String(req.UserID),
		Metadata: map[string]string{
			"user_id": req.UserID,
		},
	}
	sess, err := a.sc.CheckoutSessions.New(params)
	if err != nil {
		return billingdomain.CheckoutSession{}, err
	}
	return billingdomain.CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// NewPortalSession creates a billing portal session for an existing customer.
func (a *Adapter) NewPortalSession(_ context.Context, customerID, returnURL string) (billingdomain.PortalSession, error) {
	if a.sc == nil {
		return billingdomain.PortalSession{}, billingdomain.ErrProviderDisabled
	}
	sess, err := a.sc.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
	if err != nil {
		return billingdomain.PortalSession{}, err
	}
	return billingdomain.PortalSession{URL: sess.URL}, nil
}

func unixPtr(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

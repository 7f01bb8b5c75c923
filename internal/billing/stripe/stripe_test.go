package stripe

import (
	"context"
	"net/http"
	"testing"
	"time"

	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	"github.com/disenolab/cotiza/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter() *Adapter {
	return New(config.Config{})
}

func TestParse_CheckoutSessionCompleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"customer": "cus_123",
			"subscription": "sub_123",
			"metadata": {"user_id": "user-1"}
		}}
	}`)

	event, err := newTestAdapter().Parse(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, billingdomain.EventTypeCheckoutCompleted, event.Type)
	assert.Equal(t, "evt_1", event.ProviderEventID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "cus_123", event.CustomerID)
	assert.Equal(t, "sub_123", event.SubscriptionID)
}

func TestParse_CheckoutWithoutUserMetadata(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"customer": "cus_123", "metadata": {}}}
	}`)

	_, err := newTestAdapter().Parse(context.Background(), payload)
	assert.ErrorIs(t, err, billingdomain.ErrMissingUserMetadata)
}

func TestParse_SubscriptionUpdated(t *testing.T) {
	payload := []byte(`{
		"id": "evt_2",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_123",
			"customer": "cus_123",
			"status": "past_due",
			"current_period_start": 1754006400,
			"current_period_end": 1756684800,
			"cancel_at": 0,
			"canceled_at": 0
		}}
	}`)

	event, err := newTestAdapter().Parse(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, billingdomain.EventTypeSubscriptionUpdated, event.Type)
	assert.Equal(t, "past_due", event.Status)
	require.NotNil(t, event.PeriodStart)
	assert.Equal(t, time.Unix(1754006400, 0).UTC(), *event.PeriodStart)
	assert.Nil(t, event.CancelAt)
	assert.Nil(t, event.CanceledAt)
}

func TestParse_SubscriptionDeleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_3",
		"type": "customer.subscription.deleted",
		"data": {"object": {
			"id": "sub_123",
			"customer": "cus_123",
			"status": "canceled",
			"canceled_at": 1756684800
		}}
	}`)

	event, err := newTestAdapter().Parse(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, billingdomain.EventTypeSubscriptionDeleted, event.Type)
	assert.Equal(t, "canceled", event.Status)
	require.NotNil(t, event.CanceledAt)
}

func TestParse_UnhandledTypeIsIgnored(t *testing.T) {
	payload := []byte(`{"id": "evt_4", "type": "invoice.paid", "data": {"object": {}}}`)

	_, err := newTestAdapter().Parse(context.Background(), payload)
	assert.ErrorIs(t, err, billingdomain.ErrEventIgnored)
}

func TestParse_MalformedPayload(t *testing.T) {
	_, err := newTestAdapter().Parse(context.Background(), []byte(`not json`))
	assert.ErrorIs(t, err, billingdomain.ErrInvalidPayload)

	_, err = newTestAdapter().Parse(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, billingdomain.ErrInvalidPayload)
}

func TestVerify_FailsClosedWithoutSecret(t *testing.T) {
	err := newTestAdapter().Verify(context.Background(), []byte(`{}`), http.Header{})
	assert.ErrorIs(t, err, billingdomain.ErrProviderDisabled)
}

func TestVerify_RejectsBadSignature(t *testing.T) {
	adapter := New(config.Config{StripeWebhookSecret: "whsec_test"})

	headers := http.Header{}
	headers.Set("Stripe-Signature", "t=1,v1=deadbeef")

	err := adapter.Verify(context.Background(), []byte(`{}`), headers)
	assert.ErrorIs(t, err, billingdomain.ErrInvalidSignature)
}

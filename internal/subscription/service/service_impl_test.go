package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	subscriptiondomain "github.com/disenolab/cotiza/internal/subscription/domain"
	"github.com/disenolab/cotiza/internal/subscription/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSubscriptionTest(t *testing.T) (*gorm.DB, subscriptiondomain.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subscriptiondomain.Record{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return db, svc
}

func checkoutRequest() subscriptiondomain.ApplyCheckoutRequest {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return subscriptiondomain.ApplyCheckoutRequest{
		UserID:               "user-1",
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_123",
		PlanType:             subscriptiondomain.PlanMonthly,
		Status:               subscriptiondomain.StatusActive,
		CurrentPeriodStart:   &start,
		CurrentPeriodEnd:     &end,
	}
}

func TestApplyCheckout_CreatesRecord(t *testing.T) {
	_, svc := setupSubscriptionTest(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyCheckout(ctx, checkoutRequest()))

	record, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "cus_123", record.StripeCustomerID)
	assert.Equal(t, subscriptiondomain.PlanMonthly, record.PlanType)

	active, err := svc.IsEntitled(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestApplyCheckout_ReplayIsIdempotent(t *testing.T) {
	db, svc := setupSubscriptionTest(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyCheckout(ctx, checkoutRequest()))
	require.NoError(t, svc.ApplyCheckout(ctx, checkoutRequest()))

	var count int64
	db.Model(&subscriptiondomain.Record{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApplyProviderUpdate_MutatesExistingRecord(t *testing.T) {
	_, svc := setupSubscriptionTest(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyCheckout(ctx, checkoutRequest()))

	canceledAt := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.ApplyProviderUpdate(ctx, subscriptiondomain.ApplyProviderUpdateRequest{
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_123",
		Status:               "canceled",
		CanceledAt:           &canceledAt,
	}))

	record, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, record, "cancellation must keep the row")
	assert.Equal(t, "canceled", record.Status)
	// The user binding and purchased plan survive provider updates.
	require.NotNil(t, record.UserID)
	assert.Equal(t, "user-1", *record.UserID)
	assert.Equal(t, subscriptiondomain.PlanMonthly, record.PlanType)

	active, err := svc.IsEntitled(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestApplyProviderUpdate_BeforeCheckoutStoresPlaceholder(t *testing.T) {
	db, svc := setupSubscriptionTest(t)
	ctx := context.Background()

	// Out-of-order delivery: the update arrives first.
	require.NoError(t, svc.ApplyProviderUpdate(ctx, subscriptiondomain.ApplyProviderUpdateRequest{
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_123",
		Status:               subscriptiondomain.StatusActive,
	}))

	var count int64
	db.Model(&subscriptiondomain.Record{}).Count(&count)
	require.Equal(t, int64(1), count)

	// The checkout completes the placeholder instead of inserting a second row.
	require.NoError(t, svc.ApplyCheckout(ctx, checkoutRequest()))

	db.Model(&subscriptiondomain.Record{}).Count(&count)
	assert.Equal(t, int64(1), count)

	record, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "cus_123", record.StripeCustomerID)
	assert.Equal(t, subscriptiondomain.PlanMonthly, record.PlanType)
}

func TestIsEntitled_StatusTable(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{subscriptiondomain.StatusActive, true},
		{subscriptiondomain.StatusTrialing, true},
		{"past_due", false},
		{"canceled", false},
		{"unpaid", false},
		{"incomplete", false},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			_, svc := setupSubscriptionTest(t)
			ctx := context.Background()

			req := checkoutRequest()
			req.Status = tc.status
			require.NoError(t, svc.ApplyCheckout(ctx, req))

			active, err := svc.IsEntitled(ctx, "user-1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, active)
		})
	}
}

func TestIsEntitled_NoRecord(t *testing.T) {
	_, svc := setupSubscriptionTest(t)

	active, err := svc.IsEntitled(context.Background(), "user-never-paid")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestEntitlement_View(t *testing.T) {
	_, svc := setupSubscriptionTest(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyCheckout(ctx, checkoutRequest()))

	view, err := svc.Entitlement(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, view.Active)
	assert.Equal(t, subscriptiondomain.PlanMonthly, view.PlanType)
	assert.Equal(t, subscriptiondomain.StatusActive, view.Status)
	require.NotNil(t, view.CurrentPeriodEnd)
}

func TestApplyCheckout_Validation(t *testing.T) {
	_, svc := setupSubscriptionTest(t)
	ctx := context.Background()

	req := checkoutRequest()
	req.UserID = ""
	assert.ErrorIs(t, svc.ApplyCheckout(ctx, req), subscriptiondomain.ErrInvalidUser)

	req = checkoutRequest()
	req.StripeCustomerID = ""
	assert.ErrorIs(t, svc.ApplyCheckout(ctx, req), subscriptiondomain.ErrInvalidCustomer)

	req = checkoutRequest()
	req.Status = ""
	assert.ErrorIs(t, svc.ApplyCheckout(ctx, req), subscriptiondomain.ErrInvalidStatus)
}

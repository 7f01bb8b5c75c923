package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/disenolab/cotiza/internal/client/domain"
	"github.com/disenolab/cotiza/internal/config"
	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	pricingservice "github.com/disenolab/cotiza/internal/pricing/service"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	"github.com/disenolab/cotiza/internal/quote/repository"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	ratetablerepository "github.com/disenolab/cotiza/internal/ratetable/repository"
	ratetableservice "github.com/disenolab/cotiza/internal/ratetable/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupQuoteTest(t *testing.T) quotedomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ratetabledomain.CustomTable{},
		&clientdomain.Client{},
		&quotedomain.Quote{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	rateSvc := ratetableservice.NewService(ratetableservice.Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Defaults: config.StaticPricingDefaultsHolder(config.DefaultPricingDefaults()),
		Repo:     ratetablerepository.Provide(),
	})

	pricingSvc := pricingservice.NewService(pricingservice.Params{Log: zap.NewNop()})

	return NewService(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       repository.Provide(),
		PricingSvc: pricingSvc,
		RateSvc:    rateSvc,
	})
}

func logotipoSelection() pricingdomain.Selection {
	return pricingdomain.Selection{
		Category:   "identidad",
		ServiceID:  "logotipo",
		Complexity: pricingdomain.ComplexityPremium,
		Urgency:    pricingdomain.UrgencyEstandar,
		Rights:     pricingdomain.RightsPequena,
		Scope:      pricingdomain.ScopePersonal,
		Expertise:  pricingdomain.ExpertiseMid,
		Quantity:   1,
	}
}

func TestCreateQuote_PricesAndTotals(t *testing.T) {
	svc := setupQuoteTest(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		OwnerID:    "user-1",
		Selections: []pricingdomain.Selection{logotipoSelection()},
	})
	require.NoError(t, err)

	assert.Equal(t, quotedomain.QuoteStatusDraft, quote.Status)
	assert.Equal(t, int64(20000), quote.TotalMXN)
	assert.Equal(t, int64(1000), quote.TotalUSD)

	items := quote.LineItems.Data()
	require.Len(t, items, 1)
	assert.Equal(t, "Logotipo", items[0].Name)
	assert.Equal(t, int64(20000), items[0].FinalPrice)
}

func TestCreateQuote_Validation(t *testing.T) {
	svc := setupQuoteTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		Selections: []pricingdomain.Selection{logotipoSelection()},
	})
	assert.ErrorIs(t, err, quotedomain.ErrInvalidOwner)

	_, err = svc.Create(ctx, quotedomain.CreateQuoteRequest{OwnerID: "user-1"})
	assert.ErrorIs(t, err, quotedomain.ErrMissingItems)
}

func TestUpdateQuote_RecomputesTotals(t *testing.T) {
	svc := setupQuoteTest(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		OwnerID:    "user-1",
		Selections: []pricingdomain.Selection{logotipoSelection()},
	})
	require.NoError(t, err)

	discounts := quotedomain.DiscountConfig{ClientType: quotedomain.ClientVIP}
	updated, err := svc.Update(ctx, quotedomain.UpdateQuoteRequest{
		OwnerID:   "user-1",
		QuoteID:   quote.ID.String(),
		Discounts: &discounts,
	})
	require.NoError(t, err)

	// 20000 * 0.90
	assert.Equal(t, int64(18000), updated.TotalMXN)
	assert.Equal(t, int64(900), updated.TotalUSD)
}

func TestUpdateQuote_RepricesSelections(t *testing.T) {
	svc := setupQuoteTest(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		OwnerID:    "user-1",
		Selections: []pricingdomain.Selection{logotipoSelection()},
	})
	require.NoError(t, err)

	sel := logotipoSelection()
	sel.Quantity = 2
	selections := []pricingdomain.Selection{sel}

	updated, err := svc.Update(ctx, quotedomain.UpdateQuoteRequest{
		OwnerID:    "user-1",
		QuoteID:    quote.ID.String(),
		Selections: &selections,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40000), updated.TotalMXN)
	require.Len(t, updated.LineItems.Data(), 1)
	assert.Equal(t, 2, updated.LineItems.Data()[0].Quantity)
}

func TestUpdateQuote_StatusTransitionsAreFree(t *testing.T) {
	svc := setupQuoteTest(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		OwnerID:    "user-1",
		Selections: []pricingdomain.Selection{logotipoSelection()},
	})
	require.NoError(t, err)

	// accepted straight back to draft is allowed
	for _, status := range []quotedomain.QuoteStatus{
		quotedomain.QuoteStatusAccepted,
		quotedomain.QuoteStatusDraft,
		quotedomain.QuoteStatusRejected,
	} {
		statusCopy := status
		updated, err := svc.Update(ctx, quotedomain.UpdateQuoteRequest{
			OwnerID: "user-1",
			QuoteID: quote.ID.String(),
			Status:  &statusCopy,
		})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	bad := quotedomain.QuoteStatus("archived")
	_, err = svc.Update(ctx, quotedomain.UpdateQuoteRequest{
		OwnerID: "user-1",
		QuoteID: quote.ID.String(),
		Status:  &bad,
	})
	assert.ErrorIs(t, err, quotedomain.ErrInvalidStatus)
}

func TestGetQuote_ScopedToOwner(t *testing.T) {
	svc := setupQuoteTest(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		OwnerID:    "user-1",
		Selections: []pricingdomain.Selection{logotipoSelection()},
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-2", quote.ID.String())
	assert.ErrorIs(t, err, quotedomain.ErrQuoteNotFound)
}

func TestDeleteQuote(t *testing.T) {
	svc := setupQuoteTest(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		OwnerID:    "user-1",
		Selections: []pricingdomain.Selection{logotipoSelection()},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1", quote.ID.String()))

	_, err = svc.Get(ctx, "user-1", quote.ID.String())
	assert.ErrorIs(t, err, quotedomain.ErrQuoteNotFound)

	summaries, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

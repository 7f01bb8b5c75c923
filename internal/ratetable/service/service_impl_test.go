package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/disenolab/cotiza/internal/config"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	"github.com/disenolab/cotiza/internal/ratetable/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRateTableTest(t *testing.T) ratetabledomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ratetabledomain.CustomTable{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Defaults: config.StaticPricingDefaultsHolder(config.DefaultPricingDefaults()),
		Repo:     repository.Provide(),
	})
}

func TestEffective_AutoInitializesFromDefaults(t *testing.T) {
	svc := setupRateTableTest(t)

	table, err := svc.Effective(context.Background(), "user-1")
	require.NoError(t, err)

	price, ok := table.ResolvePrice("identidad", "logotipo")
	require.True(t, ok)
	assert.Equal(t, 8000.0, price)
	assert.Equal(t, "Logotipo", table.ResolveLabel("identidad", "logotipo"))

	// The custom copy is seeded, not just the fallback.
	assert.Equal(t, 8000.0, table.Custom["identidad"]["logotipo"])
}

func TestEffective_RequiresOwner(t *testing.T) {
	svc := setupRateTableTest(t)

	_, err := svc.Effective(context.Background(), "  ")
	assert.ErrorIs(t, err, ratetabledomain.ErrInvalidOwner)
}

func TestUpdate_OverridesPrice(t *testing.T) {
	svc := setupRateTableTest(t)

	updated, err := svc.Update(context.Background(), "user-1", ratetabledomain.UpdateTableRequest{
		Prices: ratetabledomain.Table{"identidad": {"logotipo": 12000}},
	})
	require.NoError(t, err)

	price, ok := updated.ResolvePrice("identidad", "logotipo")
	require.True(t, ok)
	assert.Equal(t, 12000.0, price)

	// A service missing from the custom table falls through to defaults.
	price, ok = updated.ResolvePrice("web", "landing")
	require.True(t, ok)
	assert.Equal(t, 10000.0, price)
}

func TestUpdate_RejectsNegativePrice(t *testing.T) {
	svc := setupRateTableTest(t)

	_, err := svc.Update(context.Background(), "user-1", ratetabledomain.UpdateTableRequest{
		Prices: ratetabledomain.Table{"identidad": {"logotipo": -1}},
	})
	assert.ErrorIs(t, err, ratetabledomain.ErrInvalidTable)
}

func TestUpdate_RejectsEmptyTable(t *testing.T) {
	svc := setupRateTableTest(t)

	_, err := svc.Update(context.Background(), "user-1", ratetabledomain.UpdateTableRequest{})
	assert.ErrorIs(t, err, ratetabledomain.ErrInvalidTable)
}

func TestReset_RestoresDefaults(t *testing.T) {
	svc := setupRateTableTest(t)

	_, err := svc.Update(context.Background(), "user-1", ratetabledomain.UpdateTableRequest{
		Prices: ratetabledomain.Table{"identidad": {"logotipo": 99999}},
	})
	require.NoError(t, err)

	reset, err := svc.Reset(context.Background(), "user-1")
	require.NoError(t, err)

	price, ok := reset.ResolvePrice("identidad", "logotipo")
	require.True(t, ok)
	assert.Equal(t, 8000.0, price)
}

func TestUpdate_IsolatedPerOwner(t *testing.T) {
	svc := setupRateTableTest(t)

	_, err := svc.Update(context.Background(), "user-1", ratetabledomain.UpdateTableRequest{
		Prices: ratetabledomain.Table{"identidad": {"logotipo": 12000}},
	})
	require.NoError(t, err)

	other, err := svc.Effective(context.Background(), "user-2")
	require.NoError(t, err)

	price, ok := other.ResolvePrice("identidad", "logotipo")
	require.True(t, ok)
	assert.Equal(t, 8000.0, price)
}

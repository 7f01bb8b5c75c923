package service

import (
	"testing"

	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	"github.com/stretchr/testify/assert"
)

func items(prices ...int64) []pricingdomain.LineItem {
	out := make([]pricingdomain.LineItem, 0, len(prices))
	for _, p := range prices {
		out = append(out, pricingdomain.LineItem{
			FinalPrice:    p,
			FinalPriceUSD: p / pricingdomain.ExchangeRate,
		})
	}
	return out
}

func TestAggregate_NoAdjustments(t *testing.T) {
	totals := Aggregate(items(8000, 2000), quotedomain.DiscountConfig{})

	assert.Equal(t, int64(10000), totals.MXN)
	assert.Equal(t, int64(500), totals.USD)
}

func TestAggregate_DiscountsApplySequentially(t *testing.T) {
	totals := Aggregate(items(8000), quotedomain.DiscountConfig{
		VolumeDiscount: quotedomain.VolumeTwoThree,
		ClientType:     quotedomain.ClientVIP,
	})

	// 8000 * 0.90 * 0.90 = 6480, not 8000 * 0.80
	assert.Equal(t, int64(6480), totals.MXN)
	assert.Equal(t, int64(324), totals.USD)
}

func TestAggregate_MaintenanceSurchargeOncePerQuote(t *testing.T) {
	totals := Aggregate(items(5000, 5000), quotedomain.DiscountConfig{
		Maintenance: quotedomain.MaintMensual,
	})

	// Surcharge hits the subtotal once, not each line item.
	assert.Equal(t, int64(12000), totals.MXN)
	assert.Equal(t, int64(600), totals.USD)
}

func TestAggregate_AllTermsTogether(t *testing.T) {
	totals := Aggregate(items(10000), quotedomain.DiscountConfig{
		VolumeDiscount: quotedomain.VolumeSixPlus,
		ClientType:     quotedomain.ClientRecurrent,
		Maintenance:    quotedomain.MaintAnual,
	})

	// 10000 * 0.80 * 0.95 * 1.10 = 8360
	assert.Equal(t, int64(8360), totals.MXN)
	assert.Equal(t, int64(418), totals.USD)
}

func TestAggregate_UnknownTiersAreNeutral(t *testing.T) {
	totals := Aggregate(items(8000), quotedomain.DiscountConfig{
		VolumeDiscount: "mystery",
		ClientType:     "mystery",
		Maintenance:    "mystery",
	})

	assert.Equal(t, int64(8000), totals.MXN)
}

func TestAggregate_EmptyQuote(t *testing.T) {
	totals := Aggregate(nil, quotedomain.DiscountConfig{})

	assert.Equal(t, int64(0), totals.MXN)
	assert.Equal(t, int64(0), totals.USD)
}

func TestAggregate_USDTracksItemSumWithinOneUnit(t *testing.T) {
	// Item USD values round individually; the quote USD derives from the MXN
	// total. With no adjustments the two paths differ by at most one unit.
	lineItems := []pricingdomain.LineItem{
		{FinalPrice: 1010, FinalPriceUSD: 51},
		{FinalPrice: 1010, FinalPriceUSD: 51},
	}

	totals := Aggregate(lineItems, quotedomain.DiscountConfig{})

	var itemSum int64
	for _, item := range lineItems {
		itemSum += item.FinalPriceUSD
	}
	assert.Equal(t, int64(2020), totals.MXN)
	assert.InDelta(t, float64(itemSum), float64(totals.USD), 1)
}

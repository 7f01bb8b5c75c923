package service

import (
	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	"github.com/shopspring/decimal"
)

// Whole-quote commercial terms. Discounts and the maintenance surcharge apply
// once to the subtotal, never per line item. Unknown tiers are neutral.
var (
	volumeDiscounts = map[string]decimal.Decimal{
		quotedomain.VolumeNone:     decimal.Zero,
		quotedomain.VolumeTwoThree: decimal.NewFromFloat(0.10),
		quotedomain.VolumeFourFive: decimal.NewFromFloat(0.15),
		quotedomain.VolumeSixPlus:  decimal.NewFromFloat(0.20),
	}
	clientDiscounts = map[string]decimal.Decimal{
		quotedomain.ClientNormal:    decimal.Zero,
		quotedomain.ClientRecurrent: decimal.NewFromFloat(0.05),
		quotedomain.ClientVIP:       decimal.NewFromFloat(0.10),
	}
	maintenanceFees = map[string]decimal.Decimal{
		quotedomain.MaintenanceNone: decimal.Zero,
		quotedomain.MaintMensual:    decimal.NewFromFloat(0.20),
		quotedomain.MaintTrimestral: decimal.NewFromFloat(0.15),
		quotedomain.MaintAnual:      decimal.NewFromFloat(0.10),
	}
)

// Aggregate totals the line items and applies the whole-quote terms. The MXN
// subtotal is the single source: total USD is derived from the MXN total with
// the same rounding as per-item USD, so the two display paths can diverge by
// at most one unit.
func Aggregate(items []pricingdomain.LineItem, discounts quotedomain.DiscountConfig) quotedomain.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromInt(item.FinalPrice))
	}

	one := decimal.NewFromInt(1)
	total := subtotal.
		Mul(one.Sub(rate(volumeDiscounts, discounts.VolumeDiscount))).
		Mul(one.Sub(rate(clientDiscounts, discounts.ClientType))).
		Mul(one.Add(rate(maintenanceFees, discounts.Maintenance)))

	mxn := total.Round(0).IntPart()
	usd := decimal.NewFromInt(mxn).
		Div(decimal.NewFromInt(pricingdomain.ExchangeRate)).
		Round(0).
		IntPart()

	return quotedomain.Totals{MXN: mxn, USD: usd}
}

func rate(table map[string]decimal.Decimal, tier string) decimal.Decimal {
	if r, ok := table[tier]; ok {
		return r
	}
	return decimal.Zero
}

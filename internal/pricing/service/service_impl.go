package service

import (
	"context"

	"github.com/disenolab/cotiza/internal/observability/metrics"
	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Canonical factor tables. The product historically shipped two slightly
// divergent expertise tables; the stored-quote variant (0.8/1.0/1.5/2.0) is
// canonical, see DESIGN.md.
var (
	complexityFactors = map[string]decimal.Decimal{
		pricingdomain.ComplexitySimple:   decimal.NewFromFloat(1.0),
		pricingdomain.ComplexityModerado: decimal.NewFromFloat(1.5),
		pricingdomain.ComplexityComplejo: decimal.NewFromFloat(2.0),
		pricingdomain.ComplexityPremium:  decimal.NewFromFloat(2.5),
	}
	urgencyFactors = map[string]decimal.Decimal{
		pricingdomain.UrgencyEstandar:  decimal.NewFromFloat(1.0),
		pricingdomain.UrgencyRapido:    decimal.NewFromFloat(1.5),
		pricingdomain.UrgencyUrgente:   decimal.NewFromFloat(2.0),
		pricingdomain.UrgencyInmediato: decimal.NewFromFloat(2.5),
	}
	rightsFactors = map[string]decimal.Decimal{
		pricingdomain.RightsPequena:     decimal.NewFromFloat(1.0),
		pricingdomain.RightsProfesional: decimal.NewFromFloat(1.5),
		pricingdomain.RightsEmpresarial: decimal.NewFromFloat(2.0),
		pricingdomain.RightsCorporativo: decimal.NewFromFloat(2.5),
	}
	scopeFactors = map[string]decimal.Decimal{
		pricingdomain.ScopePersonal:      decimal.NewFromFloat(1.0),
		pricingdomain.ScopeLocal:         decimal.NewFromFloat(1.5),
		pricingdomain.ScopeNacional:      decimal.NewFromFloat(2.0),
		pricingdomain.ScopeInternacional: decimal.NewFromFloat(2.5),
	}
	expertiseFactors = map[string]decimal.Decimal{
		pricingdomain.ExpertiseJunior: decimal.NewFromFloat(0.8),
		pricingdomain.ExpertiseMid:    decimal.NewFromFloat(1.0),
		pricingdomain.ExpertiseSenior: decimal.NewFromFloat(1.5),
		pricingdomain.ExpertiseExpert: decimal.NewFromFloat(2.0),
	}

	// Standard delivery hints per urgency tier. Informational only, never
	// part of the price math.
	deliveryDays = map[string]int{
		pricingdomain.UrgencyEstandar:  14,
		pricingdomain.UrgencyRapido:    7,
		pricingdomain.UrgencyUrgente:   3,
		pricingdomain.UrgencyInmediato: 1,
	}
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewService(p Params) pricingdomain.Service {
	return &Service{
		log:     p.Log.Named("pricing.service"),
		metrics: p.Metrics,
	}
}

// Price computes a line item for the selection. It never returns an error: a
// rate table miss prices zero, and any internal failure degrades to the
// sentinel error item so quote assembly is never blocked.
func (s *Service) Price(ctx context.Context, selection pricingdomain.Selection, table ratetabledomain.Effective) (item pricingdomain.LineItem) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("pricing degraded to sentinel item",
				zap.String("category", selection.Category),
				zap.String("service_id", selection.ServiceID),
				zap.Any("panic", r),
			)
			item = errorItem(selection)
		}
	}()

	quantity := selection.Quantity
	if quantity < 1 {
		quantity = 1
	}

	basePrice, found := table.ResolvePrice(selection.Category, selection.ServiceID)
	if !found {
		s.metrics.RecordRateLookupMiss(selection.Category, selection.ServiceID)
		s.log.Warn("rate table miss, pricing zero",
			zap.String("category", selection.Category),
			zap.String("service_id", selection.ServiceID),
		)
	}

	complexity := factor(complexityFactors, selection.Complexity)
	urgency := factor(urgencyFactors, selection.Urgency)
	rights := factor(rightsFactors, selection.Rights)
	scope := factor(scopeFactors, selection.Scope)
	expertise := factor(expertiseFactors, selection.Expertise)

	raw := decimal.NewFromFloat(basePrice).
		Mul(complexity).
		Mul(urgency).
		Mul(rights).
		Mul(scope).
		Mul(expertise).
		Mul(decimal.NewFromInt(int64(quantity)))

	finalPrice := raw.Round(0).IntPart()
	finalPriceUSD := roundUSD(finalPrice)

	return pricingdomain.LineItem{
		Category:      selection.Category,
		ServiceID:     selection.ServiceID,
		Name:          table.ResolveLabel(selection.Category, selection.ServiceID),
		Complexity:    selection.Complexity,
		Urgency:       selection.Urgency,
		Rights:        selection.Rights,
		Scope:         selection.Scope,
		Expertise:     selection.Expertise,
		Quantity:      quantity,
		BasePrice:     basePrice,
		DeliveryDays:  deliveryDays[selection.Urgency],
		FinalPrice:    finalPrice,
		FinalPriceUSD: finalPriceUSD,
		Breakdown: pricingdomain.Breakdown{
			BasePrice:     basePrice,
			Complexity:    complexity.InexactFloat64(),
			Urgency:       urgency.InexactFloat64(),
			Rights:        rights.InexactFloat64(),
			Scope:         scope.InexactFloat64(),
			Expertise:     expertise.InexactFloat64(),
			Quantity:      quantity,
			FinalPrice:    finalPrice,
			FinalPriceUSD: finalPriceUSD,
		},
	}
}

// Reprice re-runs the full multiplier pipeline with the new quantity.
func (s *Service) Reprice(ctx context.Context, item pricingdomain.LineItem, quantity int, table ratetabledomain.Effective) pricingdomain.LineItem {
	return s.Price(ctx, pricingdomain.Selection{
		Category:   item.Category,
		ServiceID:  item.ServiceID,
		Complexity: item.Complexity,
		Urgency:    item.Urgency,
		Rights:     item.Rights,
		Scope:      item.Scope,
		Expertise:  item.Expertise,
		Quantity:   quantity,
	}, table)
}

func factor(table map[string]decimal.Decimal, tier string) decimal.Decimal {
	if f, ok := table[tier]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

func roundUSD(mxn int64) int64 {
	return decimal.NewFromInt(mxn).
		Div(decimal.NewFromInt(pricingdomain.ExchangeRate)).
		Round(0).
		IntPart()
}

func errorItem(selection pricingdomain.Selection) pricingdomain.LineItem {
	quantity := selection.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return pricingdomain.LineItem{
		Category:  selection.Category,
		ServiceID: selection.ServiceID,
		Name:      pricingdomain.ErrorItemName,
		Quantity:  quantity,
		Breakdown: pricingdomain.Breakdown{
			Complexity: 1,
			Urgency:    1,
			Rights:     1,
			Scope:      1,
			Expertise:  1,
			Quantity:   quantity,
		},
	}
}

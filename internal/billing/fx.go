package billing

import (
	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	"github.com/disenolab/cotiza/internal/billing/repository"
	"github.com/disenolab/cotiza/internal/billing/service"
	stripeadapter "github.com/disenolab/cotiza/internal/billing/stripe"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(
		stripeadapter.New,
		func(a *stripeadapter.Adapter) billingdomain.Adapter { return a },
		func(a *stripeadapter.Adapter) billingdomain.ProviderClient { return a },
	),
	fx.Provide(service.NewService),
)

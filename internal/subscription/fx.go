package subscription

import (
	"github.com/disenolab/cotiza/internal/subscription/repository"
	"github.com/disenolab/cotiza/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

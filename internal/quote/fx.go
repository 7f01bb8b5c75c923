package quote

import (
	"github.com/disenolab/cotiza/internal/quote/repository"
	"github.com/disenolab/cotiza/internal/quote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quote.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

package ratetable

import (
	"github.com/disenolab/cotiza/internal/ratetable/repository"
	"github.com/disenolab/cotiza/internal/ratetable/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ratetable.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/disenolab/cotiza/internal/billing"
	"github.com/disenolab/cotiza/internal/client"
	"github.com/disenolab/cotiza/internal/config"
	"github.com/disenolab/cotiza/internal/migration"
	"github.com/disenolab/cotiza/internal/observability"
	"github.com/disenolab/cotiza/internal/pricing"
	"github.com/disenolab/cotiza/internal/quote"
	"github.com/disenolab/cotiza/internal/ratetable"
	"github.com/disenolab/cotiza/internal/server"
	"github.com/disenolab/cotiza/internal/subscription"
	"github.com/disenolab/cotiza/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		ratetable.Module,
		pricing.Module,
		quote.Module,
		client.Module,
		subscription.Module,
		billing.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

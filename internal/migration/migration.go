// Package migration creates the schema on startup so the service is usable
// out of the box for local and self-hosted environments.
package migration

import (
	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	clientdomain "github.com/disenolab/cotiza/internal/client/domain"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	subscriptiondomain "github.com/disenolab/cotiza/internal/subscription/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&ratetabledomain.CustomTable{},
		&clientdomain.Client{},
		&quotedomain.Quote{},
		&subscriptiondomain.Record{},
		&billingdomain.EventRecord{},
	)
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

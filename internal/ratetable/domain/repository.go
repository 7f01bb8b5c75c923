package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID string) (*CustomTable, error)
	Insert(ctx context.Context, db *gorm.DB, table *CustomTable) error
	Save(ctx context.Context, db *gorm.DB, table *CustomTable) error
}

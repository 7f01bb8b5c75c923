package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, quote *Quote) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID string, id snowflake.ID) (*Quote, error)
	List(ctx context.Context, db *gorm.DB, ownerID string) ([]QuoteSummary, error)
	Save(ctx context.Context, db *gorm.DB, quote *Quote) error
	Delete(ctx context.Context, db *gorm.DB, ownerID string, id snowflake.ID) error
}

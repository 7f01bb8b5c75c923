package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// UpsertByCustomer performs a single conditional write keyed by
	// stripe_customer_id: the sole concurrency boundary for webhook-driven
	// mutation. The listed columns are overwritten on conflict
	// (last-write-wins); omitted columns keep their stored value.
	UpsertByCustomer(ctx context.Context, db *gorm.DB, record *Record, columns []string) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID string) (*Record, error)
	FindByCustomerID(ctx context.Context, db *gorm.DB, customerID string) (*Record, error)
}

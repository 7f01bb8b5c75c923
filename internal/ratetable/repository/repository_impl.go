package repository

import (
	"context"
	"errors"

	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ratetabledomain.Repository {
	return &repo{}
}

func (r *repo) FindByOwner(ctx context.Context, db *gorm.DB, ownerID string) (*ratetabledomain.CustomTable, error) {
	var table ratetabledomain.CustomTable
	err := db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, table *ratetabledomain.CustomTable) error {
	return db.WithContext(ctx).Create(table).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, table *ratetabledomain.CustomTable) error {
	return db.WithContext(ctx).Save(table).Error
}

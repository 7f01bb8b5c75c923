package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() quotedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, quote *quotedomain.Quote) error {
	return db.WithContext(ctx).Create(quote).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, ownerID string, id snowflake.ID) (*quotedomain.Quote, error) {
	var quote quotedomain.Quote
	err := db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID string) ([]quotedomain.QuoteSummary, error) {
	var summaries []quotedomain.QuoteSummary
	err := db.WithContext(ctx).
		Table("quotes").
		Select("quotes.*, COALESCE(clients.name, '') AS client_name, COALESCE(clients.email, '') AS client_email").
		Joins("LEFT JOIN clients ON clients.id = quotes.client_id").
		Where("quotes.owner_id = ?", ownerID).
		Order("quotes.created_at DESC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, quote *quotedomain.Quote) error {
	return db.WithContext(ctx).Save(quote).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, ownerID string, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&quotedomain.Quote{}).Error
}

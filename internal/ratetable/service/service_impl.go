package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/disenolab/cotiza/internal/config"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	"github.com/disenolab/cotiza/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Defaults *config.PricingDefaultsHolder
	Repo     ratetabledomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	defaults *config.PricingDefaultsHolder
	repo     ratetabledomain.Repository
}

func NewService(p Params) ratetabledomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("ratetable.service"),
		genID:    p.GenID,
		defaults: p.Defaults,
		repo:     p.Repo,
	}
}

func (s *Service) Effective(ctx context.Context, ownerID string) (ratetabledomain.Effective, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return ratetabledomain.Effective{}, ratetabledomain.ErrInvalidOwner
	}

	record, err := s.repo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return ratetabledomain.Effective{}, err
	}
	if record == nil {
		record, err = s.initFromDefaults(ctx, ownerID)
		if err != nil {
			return ratetabledomain.Effective{}, err
		}
	}

	return s.effectiveFrom(record), nil
}

func (s *Service) Update(ctx context.Context, ownerID string, req ratetabledomain.UpdateTableRequest) (ratetabledomain.Effective, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return ratetabledomain.Effective{}, ratetabledomain.ErrInvalidOwner
	}
	if len(req.Prices) == 0 {
		return ratetabledomain.Effective{}, ratetabledomain.ErrInvalidTable
	}
	for _, services := range req.Prices {
		for _, price := range services {
			if price < 0 {
				return ratetabledomain.Effective{}, ratetabledomain.ErrInvalidTable
			}
		}
	}

	record, err := s.repo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return ratetabledomain.Effective{}, err
	}
	if record == nil {
		record, err = s.initFromDefaults(ctx, ownerID)
		if err != nil {
			return ratetabledomain.Effective{}, err
		}
	}

	record.Prices = datatypes.NewJSONType(req.Prices.Clone())
	if req.Labels != nil {
		record.Labels = datatypes.NewJSONType(req.Labels.Clone())
	}
	record.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, s.db, record); err != nil {
		return ratetabledomain.Effective{}, err
	}

	return s.effectiveFrom(record), nil
}

func (s *Service) Reset(ctx context.Context, ownerID string) (ratetabledomain.Effective, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return ratetabledomain.Effective{}, ratetabledomain.ErrInvalidOwner
	}

	defaults := s.defaults.Get()
	record, err := s.repo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return ratetabledomain.Effective{}, err
	}
	if record == nil {
		record, err = s.initFromDefaults(ctx, ownerID)
		if err != nil {
			return ratetabledomain.Effective{}, err
		}
		return s.effectiveFrom(record), nil
	}

	record.Prices = datatypes.NewJSONType(ratetabledomain.Table(defaults.Tables).Clone())
	record.Labels = datatypes.NewJSONType(ratetabledomain.Labels(defaults.Labels).Clone())
	record.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, s.db, record); err != nil {
		return ratetabledomain.Effective{}, err
	}

	return s.effectiveFrom(record), nil
}

// initFromDefaults seeds an account's custom table as a copy of the system
// defaults. A concurrent first read may win the insert; the stored row is
// re-read in that case.
func (s *Service) initFromDefaults(ctx context.Context, ownerID string) (*ratetabledomain.CustomTable, error) {
	defaults := s.defaults.Get()
	now := time.Now().UTC()
	record := &ratetabledomain.CustomTable{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		Prices:    datatypes.NewJSONType(ratetabledomain.Table(defaults.Tables).Clone()),
		Labels:    datatypes.NewJSONType(ratetabledomain.Labels(defaults.Labels).Clone()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return s.repo.FindByOwner(ctx, s.db, ownerID)
		}
		return nil, err
	}

	s.log.Info("custom rate table initialized", zap.String("owner_id", ownerID))
	return record, nil
}

func (s *Service) effectiveFrom(record *ratetabledomain.CustomTable) ratetabledomain.Effective {
	defaults := s.defaults.Get()
	return ratetabledomain.Effective{
		Custom:        record.Prices.Data(),
		CustomLabels:  record.Labels.Data(),
		Defaults:      defaults.Tables,
		DefaultLabels: defaults.Labels,
	}
}

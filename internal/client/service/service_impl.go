package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/disenolab/cotiza/internal/client/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) clientdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, ownerID string, req clientdomain.UpsertClientRequest) (clientdomain.Client, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return clientdomain.Client{}, clientdomain.ErrInvalidOwner
	}
	if strings.TrimSpace(req.Name) == "" {
		return clientdomain.Client{}, clientdomain.ErrMissingName
	}

	now := time.Now().UTC()
	client := clientdomain.Client{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Company:   strings.TrimSpace(req.Company),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return clientdomain.Client{}, err
	}
	return client, nil
}

func (s *Service) Get(ctx context.Context, ownerID, clientID string) (clientdomain.Client, error) {
	client, err := s.load(ctx, ownerID, clientID)
	if err != nil {
		return clientdomain.Client{}, err
	}
	return *client, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]clientdomain.Client, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, clientdomain.ErrInvalidOwner
	}
	var clients []clientdomain.Client
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

func (s *Service) Update(ctx context.Context, ownerID, clientID string, req clientdomain.UpsertClientRequest) (clientdomain.Client, error) {
	client, err := s.load(ctx, ownerID, clientID)
	if err != nil {
		return clientdomain.Client{}, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return clientdomain.Client{}, clientdomain.ErrMissingName
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Email = strings.TrimSpace(req.Email)
	client.Company = strings.TrimSpace(req.Company)
	client.Phone = strings.TrimSpace(req.Phone)
	client.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(client).Error; err != nil {
		return clientdomain.Client{}, err
	}
	return *client, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, clientID string) error {
	client, err := s.load(ctx, ownerID, clientID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(client).Error
}

func (s *Service) load(ctx context.Context, ownerID, clientID string) (*clientdomain.Client, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, clientdomain.ErrInvalidOwner
	}
	id, err := snowflake.ParseString(strings.TrimSpace(clientID))
	if err != nil {
		return nil, clientdomain.ErrInvalidClient
	}

	var client clientdomain.Client
	if err := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clientdomain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

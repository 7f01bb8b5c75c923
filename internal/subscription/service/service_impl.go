package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	subscriptiondomain "github.com/disenolab/cotiza/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  subscriptiondomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  subscriptiondomain.Repository
}

func NewService(p Params) subscriptiondomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("subscription.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) ApplyCheckout(ctx context.Context, req subscriptiondomain.ApplyCheckoutRequest) error {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return subscriptiondomain.ErrInvalidUser
	}
	customerID := strings.TrimSpace(req.StripeCustomerID)
	if customerID == "" {
		return subscriptiondomain.ErrInvalidCustomer
	}
	if strings.TrimSpace(req.Status) == "" {
		return subscriptiondomain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	record := subscriptiondomain.Record{
		ID:                   s.genID.Generate(),
		UserID:               &userID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: strings.TrimSpace(req.StripeSubscriptionID),
		PlanType:             req.PlanType,
		Status:               req.Status,
		CurrentPeriodStart:   req.CurrentPeriodStart,
		CurrentPeriodEnd:     req.CurrentPeriodEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// Also completes a placeholder row left by an update-before-checkout
	// delivery: user_id is written here and only here.
	err := s.repo.UpsertByCustomer(ctx, s.db, &record, []string{
		"user_id", "stripe_subscription_id", "plan_type", "status",
		"current_period_start", "current_period_end", "updated_at",
	})
	if err != nil {
		return err
	}

	s.log.Info("subscription checkout applied",
		zap.String("user_id", userID),
		zap.String("customer_id", customerID),
		zap.String("plan_type", string(req.PlanType)),
		zap.String("status", req.Status),
	)
	return nil
}

func (s *Service) ApplyProviderUpdate(ctx context.Context, req subscriptiondomain.ApplyProviderUpdateRequest) error {
	customerID := strings.TrimSpace(req.StripeCustomerID)
	if customerID == "" {
		return subscriptiondomain.ErrInvalidCustomer
	}
	if strings.TrimSpace(req.Status) == "" {
		return subscriptiondomain.ErrInvalidStatus
	}

	existing, err := s.repo.FindByCustomerID(ctx, s.db, customerID)
	if err != nil {
		return err
	}
	if existing == nil {
		s.log.Warn("provider update before checkout, storing placeholder",
			zap.String("customer_id", customerID),
			zap.String("status", req.Status),
		)
	}

	now := time.Now().UTC()
	record := subscriptiondomain.Record{
		ID:                   s.genID.Generate(),
		StripeCustomerID:     customerID,
		StripeSubscriptionID: strings.TrimSpace(req.StripeSubscriptionID),
		Status:               req.Status,
		CurrentPeriodStart:   req.CurrentPeriodStart,
		CurrentPeriodEnd:     req.CurrentPeriodEnd,
		CancelAt:             req.CancelAt,
		CanceledAt:           req.CanceledAt,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// user_id and plan_type are deliberately absent from the update set so a
	// provider update can never unbind a user or change the purchased plan.
	return s.repo.UpsertByCustomer(ctx, s.db, &record, []string{
		"stripe_subscription_id", "status", "current_period_start",
		"current_period_end", "cancel_at", "canceled_at", "updated_at",
	})
}

func (s *Service) Get(ctx context.Context, userID string) (*subscriptiondomain.Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, subscriptiondomain.ErrInvalidUser
	}
	return s.repo.FindByUserID(ctx, s.db, userID)
}

func (s *Service) Entitlement(ctx context.Context, userID string) (subscriptiondomain.Entitlement, error) {
	record, err := s.Get(ctx, userID)
	if err != nil {
		return subscriptiondomain.Entitlement{}, err
	}
	if record == nil {
		return subscriptiondomain.Entitlement{}, nil
	}
	return subscriptiondomain.Entitlement{
		Active:           subscriptiondomain.IsEntitled(record),
		PlanType:         record.PlanType,
		Status:           record.Status,
		CurrentPeriodEnd: record.CurrentPeriodEnd,
		CancelAt:         record.CancelAt,
	}, nil
}

func (s *Service) IsEntitled(ctx context.Context, userID string) (bool, error) {
	record, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return subscriptiondomain.IsEntitled(record), nil
}

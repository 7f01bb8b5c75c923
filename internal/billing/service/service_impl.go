package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	"github.com/disenolab/cotiza/internal/config"
	"github.com/disenolab/cotiza/internal/observability/metrics"
	subscriptiondomain "github.com/disenolab/cotiza/internal/subscription/domain"
	"github.com/disenolab/cotiza/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg             config.Config
	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Repo            billingdomain.Repository
	Adapter         billingdomain.Adapter
	Provider        billingdomain.ProviderClient
	SubscriptionSvc subscriptiondomain.Service
	Metrics         *metrics.Metrics
}

type Service struct {
	cfg      config.Config
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     billingdomain.Repository
	adapter  billingdomain.Adapter
	provider billingdomain.ProviderClient
	subSvc   subscriptiondomain.Service
	metrics  *metrics.Metrics
}

func NewService(p Params) billingdomain.Service {
	return &Service{
		cfg:      p.Cfg,
		db:       p.DB,
		log:      p.Log.Named("billing.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		adapter:  p.Adapter,
		provider: p.Provider,
		subSvc:   p.SubscriptionSvc,
		metrics:  p.Metrics,
	}
}

// IngestWebhook is the single entry point for provider events. Every event is
// verified, stored once by provider event id, applied to the subscription
// record, then marked processed. Redelivery of a processed event stops at the
// stored record, so each event mutates state at most once.
func (s *Service) IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	if err := s.adapter.Verify(ctx, payload, headers); err != nil {
		s.metrics.RecordWebhookEvent("unknown", "rejected")
		return err
	}

	event, err := s.adapter.Parse(ctx, payload)
	if err != nil {
		s.metrics.RecordWebhookEvent("unknown", "ignored")
		return err
	}

	record := &billingdomain.EventRecord{
		ID:              s.genID.Generate(),
		Provider:        event.Provider,
		ProviderEventID: event.ProviderEventID,
		EventType:       event.Type,
		Payload:         datatypes.JSON(event.RawPayload),
		ReceivedAt:      time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		if !db.IsDuplicateKeyErr(err) {
			return err
		}
		existing, err := s.repo.FindByProviderEventID(ctx, s.db, event.Provider, event.ProviderEventID)
		if err != nil {
			return err
		}
		if existing.ProcessedAt != nil {
			s.log.Info("provider event replayed",
				zap.String("provider_event_id", event.ProviderEventID),
				zap.String("event_type", event.Type),
			)
			s.metrics.RecordWebhookEvent(event.Type, "replayed")
			return billingdomain.ErrEventAlreadyProcessed
		}
		// A prior delivery stored the event but failed to apply it. Retry
		// the apply under the stored id.
		record = existing
	}

	if err := s.apply(ctx, event); err != nil {
		s.metrics.RecordWebhookEvent(event.Type, "failed")
		return err
	}

	if err := s.repo.MarkProcessed(ctx, s.db, record.ID, time.Now().UTC()); err != nil {
		return err
	}
	s.metrics.RecordWebhookEvent(event.Type, "applied")
	return nil
}

func (s *Service) apply(ctx context.Context, event *billingdomain.BillingEvent) error {
	switch event.Type {
	case billingdomain.EventTypeCheckoutCompleted:
		return s.applyCheckout(ctx, event)
	case billingdomain.EventTypeSubscriptionUpdated, billingdomain.EventTypeSubscriptionDeleted:
		return s.subSvc.ApplyProviderUpdate(ctx, subscriptiondomain.ApplyProviderUpdateRequest{
			StripeCustomerID:     event.CustomerID,
			StripeSubscriptionID: event.SubscriptionID,
			Status:               event.Status,
			CurrentPeriodStart:   event.PeriodStart,
			CurrentPeriodEnd:     event.PeriodEnd,
			CancelAt:             event.CancelAt,
			CanceledAt:           event.CanceledAt,
		})
	}
	return billingdomain.ErrEventIgnored
}

// applyCheckout binds the user from the checkout metadata to the provider
// customer. A recurring purchase is completed with the provider's full view
// of the new subscription; a one-time purchase has no subscription to fetch
// and becomes an active lifetime record.
func (s *Service) applyCheckout(ctx context.Context, event *billingdomain.BillingEvent) error {
	req := subscriptiondomain.ApplyCheckoutRequest{
		UserID:           event.UserID,
		StripeCustomerID: event.CustomerID,
		PlanType:         subscriptiondomain.PlanLifetime,
		Status:           subscriptiondomain.StatusActive,
	}

	if event.SubscriptionID != "" {
		detail, err := s.provider.FetchSubscription(ctx, event.SubscriptionID)
		if err != nil {
			return err
		}
		req.StripeSubscriptionID = detail.ID
		req.PlanType = s.planType(detail.PriceLookupKey)
		req.Status = detail.Status
		req.CurrentPeriodStart = detail.PeriodStart
		req.CurrentPeriodEnd = detail.PeriodEnd
		if detail.CustomerID != "" {
			req.StripeCustomerID = detail.CustomerID
		}
	}

	return s.subSvc.ApplyCheckout(ctx, req)
}

func (s *Service) planType(priceLookupKey string) subscriptiondomain.PlanType {
	if priceLookupKey == s.cfg.StripeMonthlyLookupKey {
		return subscriptiondomain.PlanMonthly
	}
	return subscriptiondomain.PlanLifetime
}

func (s *Service) CreateCheckoutSession(ctx context.Context, req billingdomain.CheckoutSessionRequest) (billingdomain.CheckoutSession, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.PriceID = strings.TrimSpace(req.PriceID)
	if req.UserID == "" || req.PriceID == "" {
		return billingdomain.CheckoutSession{}, billingdomain.ErrInvalidRequest
	}
	return s.provider.NewCheckoutSession(ctx, req)
}

func (s *Service) CreatePortalSession(ctx context.Context, req billingdomain.PortalSessionRequest) (billingdomain.PortalSession, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return billingdomain.PortalSession{}, billingdomain.ErrInvalidRequest
	}
	record, err := s.subSvc.Get(ctx, userID)
	if err != nil {
		return billingdomain.PortalSession{}, err
	}
	if record == nil || record.StripeCustomerID == "" {
		return billingdomain.PortalSession{}, billingdomain.ErrNoCustomer
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = s.cfg.PortalReturnURL
	}
	return s.provider.NewPortalSession(ctx, record.StripeCustomerID, returnURL)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       quotedomain.Repository
	PricingSvc pricingdomain.Service
	RateSvc    ratetabledomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       quotedomain.Repository
	pricingSvc pricingdomain.Service
	rateSvc    ratetabledomain.Service
}

func NewService(p Params) quotedomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("quote.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		pricingSvc: p.PricingSvc,
		rateSvc:    p.RateSvc,
	}
}

func (s *Service) Create(ctx context.Context, req quotedomain.CreateQuoteRequest) (quotedomain.Quote, error) {
	ownerID := strings.TrimSpace(req.OwnerID)
	if ownerID == "" {
		return quotedomain.Quote{}, quotedomain.ErrInvalidOwner
	}
	if len(req.Selections) == 0 {
		return quotedomain.Quote{}, quotedomain.ErrMissingItems
	}

	clientID, err := parseOptionalID(req.ClientID)
	if err != nil {
		return quotedomain.Quote{}, quotedomain.ErrInvalidClient
	}

	table, err := s.rateSvc.Effective(ctx, ownerID)
	if err != nil {
		return quotedomain.Quote{}, err
	}

	items := s.priceAll(ctx, req.Selections, table)
	totals := Aggregate(items, req.Discounts)

	now := time.Now().UTC()
	quote := quotedomain.Quote{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		ClientID:  clientID,
		Status:    quotedomain.QuoteStatusDraft,
		LineItems: datatypes.NewJSONType(items),
		Discounts: datatypes.NewJSONType(req.Discounts),
		TotalMXN:  totals.MXN,
		TotalUSD:  totals.USD,
		Currency:  "MXN",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &quote); err != nil {
		return quotedomain.Quote{}, err
	}

	s.log.Info("quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("owner_id", ownerID),
		zap.Int("items", len(items)),
		zap.Int64("total_mxn", totals.MXN),
	)
	return quote, nil
}

func (s *Service) Get(ctx context.Context, ownerID, quoteID string) (quotedomain.Quote, error) {
	quote, err := s.load(ctx, ownerID, quoteID)
	if err != nil {
		return quotedomain.Quote{}, err
	}
	return *quote, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]quotedomain.QuoteSummary, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, quotedomain.ErrInvalidOwner
	}
	return s.repo.List(ctx, s.db, ownerID)
}

// Update recomputes totals on every mutation. Status is free-form metadata:
// any status may follow any other.
func (s *Service) Update(ctx context.Context, req quotedomain.UpdateQuoteRequest) (quotedomain.Quote, error) {
	quote, err := s.load(ctx, req.OwnerID, req.QuoteID)
	if err != nil {
		return quotedomain.Quote{}, err
	}

	if req.Status != nil {
		if !quotedomain.ValidStatus(*req.Status) {
			return quotedomain.Quote{}, quotedomain.ErrInvalidStatus
		}
		quote.Status = *req.Status
	}
	if req.ClientID != nil {
		clientID, err := parseOptionalID(*req.ClientID)
		if err != nil {
			return quotedomain.Quote{}, quotedomain.ErrInvalidClient
		}
		quote.ClientID = clientID
	}
	if req.Discounts != nil {
		quote.Discounts = datatypes.NewJSONType(*req.Discounts)
	}
	if req.Selections != nil {
		if len(*req.Selections) == 0 {
			return quotedomain.Quote{}, quotedomain.ErrMissingItems
		}
		table, err := s.rateSvc.Effective(ctx, quote.OwnerID)
		if err != nil {
			return quotedomain.Quote{}, err
		}
		quote.LineItems = datatypes.NewJSONType(s.priceAll(ctx, *req.Selections, table))
	}

	totals := Aggregate(quote.LineItems.Data(), quote.Discounts.Data())
	quote.TotalMXN = totals.MXN
	quote.TotalUSD = totals.USD
	quote.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, quote); err != nil {
		return quotedomain.Quote{}, err
	}
	return *quote, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, quoteID string) error {
	quote, err := s.load(ctx, ownerID, quoteID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, quote.OwnerID, quote.ID)
}

func (s *Service) priceAll(ctx context.Context, selections []pricingdomain.Selection, table ratetabledomain.Effective) []pricingdomain.LineItem {
	items := make([]pricingdomain.LineItem, 0, len(selections))
	for _, selection := range selections {
		items = append(items, s.pricingSvc.Price(ctx, selection, table))
	}
	return items
}

func (s *Service) load(ctx context.Context, ownerID, quoteID string) (*quotedomain.Quote, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, quotedomain.ErrInvalidOwner
	}
	id, err := snowflake.ParseString(strings.TrimSpace(quoteID))
	if err != nil {
		return nil, quotedomain.ErrInvalidQuote
	}

	quote, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, quotedomain.ErrQuoteNotFound
	}
	return quote, nil
}

func parseOptionalID(raw string) (*snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

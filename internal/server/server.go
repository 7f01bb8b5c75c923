// Package server wires the HTTP surface over the domain services.
package server

import (
	"context"
	"net/http"
	"time"

	billingdomain "github.com/disenolab/cotiza/internal/billing/domain"
	clientdomain "github.com/disenolab/cotiza/internal/client/domain"
	"github.com/disenolab/cotiza/internal/config"
	obslogger "github.com/disenolab/cotiza/internal/observability/logger"
	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	"github.com/disenolab/cotiza/internal/providers/pdf"
	quotedomain "github.com/disenolab/cotiza/internal/quote/domain"
	ratetabledomain "github.com/disenolab/cotiza/internal/ratetable/domain"
	subscriptiondomain "github.com/disenolab/cotiza/internal/subscription/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(pdf.New),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug: cfg.Debug(),
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config) *gin.Engine {
	return NewEngine(cfg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	pricingSvc      pricingdomain.Service
	rateSvc         ratetabledomain.Service
	quoteSvc        quotedomain.Service
	clientSvc       clientdomain.Service
	subscriptionSvc subscriptiondomain.Service
	billingSvc      billingdomain.Service
	pdfProvider     pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	PricingSvc      pricingdomain.Service
	RateSvc         ratetabledomain.Service
	QuoteSvc        quotedomain.Service
	ClientSvc       clientdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	BillingSvc      billingdomain.Service
	PDFProvider     pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		pricingSvc:      p.PricingSvc,
		rateSvc:         p.RateSvc,
		quoteSvc:        p.QuoteSvc,
		clientSvc:       p.ClientSvc,
		subscriptionSvc: p.SubscriptionSvc,
		billingSvc:      p.BillingSvc,
		pdfProvider:     p.PDFProvider,
	}

	svc.registerAPIRoutes()
	svc.registerWebhookRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")
	v1.Use(s.UserRequired())

	v1.POST("/pricing/price", s.PriceSelection)
	v1.POST("/pricing/aggregate", s.AggregateItems)

	v1.GET("/rate-table", s.GetRateTable)
	v1.PUT("/rate-table", s.UpdateRateTable)
	v1.DELETE("/rate-table", s.ResetRateTable)

	v1.GET("/clients", s.ListClients)
	v1.POST("/clients", s.CreateClient)
	v1.GET("/clients/:id", s.GetClient)
	v1.PUT("/clients/:id", s.UpdateClient)
	v1.DELETE("/clients/:id", s.DeleteClient)

	v1.GET("/quotes", s.ListQuotes)
	v1.GET("/quotes/:id", s.GetQuote)
	v1.GET("/quotes/:id/proposal", s.GetQuoteProposal)

	gated := v1.Group("")
	gated.Use(s.EntitlementRequired())
	gated.POST("/quotes", s.CreateQuote)
	gated.PUT("/quotes/:id", s.UpdateQuote)
	gated.DELETE("/quotes/:id", s.DeleteQuote)

	v1.POST("/billing/checkout", s.CreateCheckoutSession)
	v1.POST("/billing/portal", s.CreatePortalSession)
	v1.GET("/billing/subscription", s.GetSubscription)
}

func (s *Server) registerWebhookRoutes() {
	s.engine.POST("/webhooks/stripe", s.HandleStripeWebhook)
}

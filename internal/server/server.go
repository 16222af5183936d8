// Package server exposes the HTTP API for the back-office tool.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	brandingdomain "github.com/smallbiznis/docbill/internal/branding/domain"
	"github.com/smallbiznis/docbill/internal/clock"
	"github.com/smallbiznis/docbill/internal/config"
	customerdomain "github.com/smallbiznis/docbill/internal/customer/domain"
	"github.com/smallbiznis/docbill/internal/events"
	invoicedomain "github.com/smallbiznis/docbill/internal/invoice/domain"
	"github.com/smallbiznis/docbill/internal/mailer"
	"github.com/smallbiznis/docbill/internal/observability/logger"
	proposaldomain "github.com/smallbiznis/docbill/internal/proposal/domain"
	reportdomain "github.com/smallbiznis/docbill/internal/report/domain"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(RunHTTP),
)

// NewEngine builds the gin engine with request logging and recovery.
func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	engine.Use(gin.Recovery())
	return engine
}

type ServerParam struct {
	fx.In

	Cfg    config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Clock  clock.Clock
	Outbox *events.Outbox
	Mailer mailer.Mailer

	CustomerSvc customerdomain.Service
	ProposalSvc proposaldomain.Service
	InvoiceSvc  invoicedomain.Service
	BrandingSvc brandingdomain.Service
	ReportSvc   reportdomain.Service
}

type Server struct {
	cfg    config.Config
	log    *zap.Logger
	db     *gorm.DB
	clock  clock.Clock
	outbox *events.Outbox
	mailer mailer.Mailer

	customerSvc customerdomain.Service
	proposalSvc proposaldomain.Service
	invoiceSvc  invoicedomain.Service
	brandingSvc brandingdomain.Service
	reportSvc   reportdomain.Service

	loc *time.Location
}

func NewServer(p ServerParam) *Server {
	loc, err := time.LoadLocation(p.Cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		loc:         loc,
		db:          p.DB,
		clock:       p.Clock,
		outbox:      p.Outbox,
		mailer:      p.Mailer,
		customerSvc: p.CustomerSvc,
		proposalSvc: p.ProposalSvc,
		invoiceSvc:  p.InvoiceSvc,
		brandingSvc: p.BrandingSvc,
		reportSvc:   p.ReportSvc,
	}
}

func RegisterRoutes(engine *gin.Engine, s *Server) {
	engine.GET("/healthz", s.Healthz)

	api := engine.Group("/api")

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomer)
	api.PUT("/customers/:id", s.UpdateCustomer)

	api.POST("/proposals", s.CreateProposal)
	api.GET("/proposals", s.ListProposals)
	api.GET("/proposals/:ref", s.GetProposal)
	api.POST("/proposals/:ref/close", s.CloseProposal)
	api.POST("/proposals/:ref/convert", s.ConvertProposal)
	api.GET("/proposals/:ref/pdf", s.ProposalPDF)
	api.POST("/proposals/:ref/email", s.EmailProposal)

	api.POST("/invoices", s.SaveInvoice)
	api.PUT("/invoices/:ref", s.SaveInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:ref", s.GetInvoice)
	api.POST("/invoices/:ref/paid", s.ToggleInvoicePaid)
	api.PUT("/invoices/:ref/internal-cost", s.SetInvoiceInternalCost)
	api.GET("/invoices/:ref/pdf", s.InvoicePDF)
	api.POST("/invoices/:ref/email", s.EmailInvoice)

	api.GET("/branding", s.GetBranding)
	api.PUT("/branding", s.UpdateBranding)

	api.GET("/reports/ytd", s.YearToDateReport)
}

// Healthz reports liveness and database reachability.
func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener on fx startup and drains it on stop.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

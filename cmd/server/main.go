package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/billcraft/backend/internal/application/billing"
	reportapp "github.com/billcraft/backend/internal/application/report"
	"github.com/billcraft/backend/internal/infrastructure/auth"
	"github.com/billcraft/backend/internal/infrastructure/cache"
	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/billcraft/backend/internal/infrastructure/logger"
	"github.com/billcraft/backend/internal/infrastructure/persistence"
	"github.com/billcraft/backend/internal/infrastructure/telemetry"
	"github.com/billcraft/backend/internal/interfaces/http/handler"
	"github.com/billcraft/backend/internal/interfaces/http/middleware"
	"github.com/billcraft/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting billcraft backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if err := telemetry.RegisterGormTracing(db.DB, cfg.Database.DBName); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	reportCache, err := cache.NewReportCache(cfg.Cache, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize report cache", zap.Error(err))
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	reportReader := persistence.NewGormReportReader(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Auth services
	identityService := auth.NewIdentityService(cfg.Identity)
	signedLinkService := auth.NewSignedLinkService(cfg.SignedLink)

	// Application services
	clientService := billingapp.NewClientService(clientRepo)
	quoteService := billingapp.NewQuoteService(quoteRepo, clientRepo, txScope)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, clientRepo, txScope, signedLinkService)
	paymentService := billingapp.NewPaymentService(invoiceRepo, txScope)
	reportService := reportapp.NewService(reportReader, reportCache, cfg.Cache.ReportTTL, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			Client:  handler.NewClientHandler(clientService),
			Quote:   handler.NewQuoteHandler(quoteService),
			Invoice: handler.NewInvoiceHandler(invoiceService),
			Payment: handler.NewPaymentHandler(paymentService),
			Report:  handler.NewReportHandler(reportService),
			Public:  handler.NewPublicHandler(signedLinkService, invoiceService, billingapp.NewHTMLRenderer()),
		},
		Identity: middleware.IdentityMiddlewareConfig{
			Identity:        identityService,
			AllowDevHeaders: cfg.App.Env != "production",
			Logger:          log,
		},
		Logger:      log,
		ServiceName: cfg.App.Name,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// Package router wires the HTTP surface: authenticated ledger routes behind
// the identity middleware and the public signed-link download outside it.
package router

import (
	"net/http"

	"github.com/billcraft/backend/internal/infrastructure/logger"
	"github.com/billcraft/backend/internal/interfaces/http/handler"
	"github.com/billcraft/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Handlers bundles the per-resource handlers the router wires up
type Handlers struct {
	Client  *handler.ClientHandler
	Quote   *handler.QuoteHandler
	Invoice *handler.InvoiceHandler
	Payment *handler.PaymentHandler
	Report  *handler.ReportHandler
	Public  *handler.PublicHandler
}

// Config holds router dependencies
type Config struct {
	Handlers Handlers
	Identity middleware.IdentityMiddlewareConfig
	Logger   *zap.Logger
	// ServiceName labels HTTP spans; tracing is a no-op unless a real
	// tracer provider has been installed globally.
	ServiceName string
}

// New builds the gin engine with all routes and middleware registered
func New(cfg Config) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(otelgin.Middleware(cfg.ServiceName))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// Public signed-link surface; the token is the credential.
	api.GET("/invoices/public/:id/download.pdf", cfg.Handlers.Public.Download)

	authed := api.Group("")
	authed.Use(middleware.IdentityMiddleware(cfg.Identity))

	clients := authed.Group("/clients")
	{
		clients.POST("", cfg.Handlers.Client.Create)
		clients.GET("", cfg.Handlers.Client.List)
		clients.GET("/:id", cfg.Handlers.Client.Get)
		clients.DELETE("/:id", cfg.Handlers.Client.Delete)
	}

	quotes := authed.Group("/quotes")
	{
		quotes.POST("", cfg.Handlers.Quote.Create)
		quotes.GET("", cfg.Handlers.Quote.List)
		quotes.GET("/:id", cfg.Handlers.Quote.Get)
		quotes.DELETE("/:id", cfg.Handlers.Quote.Delete)
		quotes.POST("/:id/send", cfg.Handlers.Quote.Send)
		quotes.POST("/:id/accept", cfg.Handlers.Quote.Accept)
		quotes.POST("/:id/reject", cfg.Handlers.Quote.Reject)
	}

	invoices := authed.Group("/invoices")
	{
		invoices.POST("", cfg.Handlers.Invoice.Create)
		invoices.GET("", cfg.Handlers.Invoice.List)
		invoices.POST("/from_quote/:quote_id", cfg.Handlers.Invoice.CreateFromQuote)
		invoices.GET("/:id", cfg.Handlers.Invoice.Get)
		invoices.DELETE("/:id", cfg.Handlers.Invoice.Delete)
		invoices.POST("/:id/send", cfg.Handlers.Invoice.Send)
		invoices.POST("/:id/cancel", cfg.Handlers.Invoice.Cancel)
		invoices.GET("/:id/lines", cfg.Handlers.Invoice.Lines)
		invoices.POST("/:id/lines", cfg.Handlers.Invoice.AddLine)
		invoices.DELETE("/:id/lines/:line_id", cfg.Handlers.Invoice.RemoveLine)
		invoices.POST("/:id/recalc", cfg.Handlers.Invoice.Recalc)
		invoices.POST("/:id/signed_link", cfg.Handlers.Invoice.SignedLink)
	}

	payments := authed.Group("/payments")
	{
		payments.POST("/:invoice_id", cfg.Handlers.Payment.Apply)
		payments.GET("/:invoice_id", cfg.Handlers.Payment.List)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/status", cfg.Handlers.Report.StatusBreakdown)
		reports.GET("/monthly", cfg.Handlers.Report.MonthlyRevenue)
	}

	return engine
}

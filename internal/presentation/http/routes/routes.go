package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/pos-terminal/internal/config"
	domainRepo "github.com/sangkips/pos-terminal/internal/domain/repository"
	"github.com/sangkips/pos-terminal/internal/presentation/http/handler"
	"github.com/sangkips/pos-terminal/internal/presentation/http/middleware"
	"github.com/sangkips/pos-terminal/pkg/utils"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Session *handler.SessionHandler
	Catalog *handler.CatalogHandler
	Payment *handler.PaymentHandler
	Ticket  *handler.TicketHandler
	Cash    *handler.CashHandler
	Alert   *handler.AlertHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Terminals       middleware.TerminalResolver
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Registry        *prometheus.Registry
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	if deps.Registry != nil && deps.Cfg.Metrics.Enabled {
		router.Use(middleware.NewHTTPMetrics(deps.Registry).Middleware())
		router.GET(deps.Cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimiter := middleware.NewTerminalRateLimiter(
		middleware.RateLimiterConfigFromWindow(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
	)

	v1 := router.Group("/api/v1")
	{
		// Login is limited per client IP
		v1.POST("/auth/login", rateLimiter.Middleware(), h.Auth.Login)

		// The websocket authenticates with its own query token
		v1.GET("/ws/alerts", h.Alert.Stream)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Terminals))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/logout", h.Auth.Logout)

	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}

	pos := protected.Group("/pos")
	registerDocumentRoutes(pos, h)
	registerCatalogRoutes(pos, h)
	registerPaymentRoutes(pos, h)
	registerTicketRoutes(pos, h, deps)

	pos.GET("/cash", h.Cash.Balance)
	pos.POST("/cash/close", h.Cash.Close)

	pos.GET("/alert", h.Alert.Active)
	pos.DELETE("/alert", h.Alert.Dismiss)
}

func registerDocumentRoutes(pos *gin.RouterGroup, h *Handlers) {
	doc := pos.Group("/document")
	{
		doc.GET("", h.Session.Current)
		doc.POST("/new", h.Session.NewSale)
		doc.PUT("/type", h.Session.SetDocumentType)
		doc.POST("/revalidate", h.Session.RevalidateStock)
		doc.PUT("/customer", h.Session.SelectCustomer)
		doc.PUT("/vendor", h.Session.SelectVendor)
		doc.PUT("/note", h.Session.SetGeneralNote)
		doc.PUT("/extra-fields", h.Session.SetExtraFields)
		doc.PUT("/fel", h.Session.SetFEL)

		doc.POST("/lines", h.Session.AddLine)
		doc.PUT("/lines/:index/quantity", h.Session.SetQuantity)
		doc.PUT("/lines/:index/discount", h.Session.SetDiscount)
		doc.PUT("/lines/:index/subtotal", h.Session.SetSubtotal)
		doc.PUT("/lines/:index/note", h.Session.SetLineNote)
		doc.DELETE("/lines/:index", h.Session.RemoveLine)
	}
}

func registerCatalogRoutes(pos *gin.RouterGroup, h *Handlers) {
	pos.GET("/products", h.Catalog.SearchProducts)
	pos.GET("/customers", h.Catalog.SearchCustomers)
	pos.GET("/vendors", h.Catalog.Vendors)
	pos.GET("/payment-methods", h.Catalog.PaymentMethods)
}

func registerPaymentRoutes(pos *gin.RouterGroup, h *Handlers) {
	payments := pos.Group("/payments")
	{
		payments.GET("", h.Payment.Open)
		payments.POST("", h.Payment.Add)
		payments.DELETE("/:index", h.Payment.Remove)
	}
}

func registerTicketRoutes(pos *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	pos.POST("/finalize", idempotency, h.Ticket.Finalize)
	pos.POST("/suspend", idempotency, h.Ticket.Suspend)

	tickets := pos.Group("/tickets")
	{
		tickets.GET("/suspended", h.Ticket.ListSuspended)
		tickets.GET("/history", h.Ticket.ListHistory)
		tickets.GET("/last", h.Ticket.Last)
		tickets.POST("/last/print", h.Ticket.Reprint)
		tickets.POST("/:id/resume", h.Ticket.Resume)
	}
}

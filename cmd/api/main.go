package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "github.com/sangkips/pos-terminal/docs"
	"github.com/sangkips/pos-terminal/internal/application/service"
	"github.com/sangkips/pos-terminal/internal/config"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	domainRepo "github.com/sangkips/pos-terminal/internal/domain/repository"
	"github.com/sangkips/pos-terminal/internal/infrastructure/backend"
	"github.com/sangkips/pos-terminal/internal/infrastructure/cache"
	"github.com/sangkips/pos-terminal/internal/infrastructure/database"
	"github.com/sangkips/pos-terminal/internal/infrastructure/repository"
	"github.com/sangkips/pos-terminal/internal/infrastructure/websocket"
	"github.com/sangkips/pos-terminal/internal/presentation/http/handler"
	"github.com/sangkips/pos-terminal/internal/presentation/http/routes"
	"github.com/sangkips/pos-terminal/pkg/debounce"
	"github.com/sangkips/pos-terminal/pkg/printer"
	"github.com/sangkips/pos-terminal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// @title           POS Terminal API
// @version         1.0
// @description     Cashier terminal session API in front of the billing backend.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Drafts and idempotency keys live in Postgres when enabled, otherwise
	// in memory for a standalone terminal
	var (
		draftRepo       domainRepo.DraftRepository
		idempotencyRepo domainRepo.IdempotencyRepository
	)
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		draftRepo = repository.NewDraftRepository(db)
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	} else {
		log.Println("Database disabled, drafts are kept in memory")
		draftRepo = repository.NewMemoryDraftRepository()
		idempotencyRepo = repository.NewMemoryIdempotencyRepository()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.App.Name)
	backendClient := backend.NewClient(cfg.Backend, registry)
	hub := websocket.NewHub()

	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	defaultType, err := enum.ParseDocumentType(cfg.POS.DefaultDocumentType)
	if err != nil {
		log.Printf("Warning: %v, defaulting to invoice", err)
		defaultType = enum.DocumentTypeInvoice
	}

	// Initialize services
	alertService := service.NewAlertService(cfg.POS.AlertDismissAfter, hub)
	catalogService := service.NewCatalogService(backendClient, cache.NewCatalogCache(cfg.Backend.CatalogTTL))
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width)
	authService := service.NewAuthService(backendClient, jwtManager, catalogService)
	searchService := service.NewSearchService(backendClient, debounce.New(cfg.POS.SearchDebounce), alertService)
	cashService := service.NewCashService(backendClient, alertService)
	sessionService := service.NewSessionService(
		backendClient,
		draftRepo,
		service.NewStockValidator(backendClient, cfg.POS.StockConcurrency),
		catalogService,
		alertService,
		printerService,
		service.SessionOptions{
			StockValidation: cfg.POS.StockValidation,
			ExtraFields:     cfg.POS.ExtraFields,
			PriceTiers:      cfg.POS.PriceTiers,
			OrdersEnabled:   cfg.POS.OrdersEnabled,
			DefaultType:     defaultType,
			AutoPrint:       cfg.Printer.AutoPrint,
		},
	)

	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Session: handler.NewSessionHandler(sessionService),
		Catalog: handler.NewCatalogHandler(searchService, catalogService),
		Payment: handler.NewPaymentHandler(sessionService),
		Ticket:  handler.NewTicketHandler(sessionService),
		Cash:    handler.NewCashHandler(cashService),
		Alert:   handler.NewAlertHandler(alertService, hub, jwtManager, authService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Terminals:       authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Registry:        registry,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := idempotencyRepo.DeleteExpired(gctx); err != nil {
					log.Printf("Failed to purge idempotency keys: %v", err)
				}
			}
		}
	})
	g.Go(func() error {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, backend: %s", cfg.App.Env, cfg.Backend.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Server stopped")
}

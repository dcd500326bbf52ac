package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/quotedesk/quotedesk/internal/app"
	"github.com/quotedesk/quotedesk/internal/auth"
	"github.com/quotedesk/quotedesk/internal/customers"
	"github.com/quotedesk/quotedesk/internal/dashboard"
	"github.com/quotedesk/quotedesk/internal/invoices"
	"github.com/quotedesk/quotedesk/internal/observability"
	"github.com/quotedesk/quotedesk/internal/platform/cache"
	"github.com/quotedesk/quotedesk/internal/platform/db"
	"github.com/quotedesk/quotedesk/internal/products"
	"github.com/quotedesk/quotedesk/internal/render"
	"github.com/quotedesk/quotedesk/internal/sequence"
	"github.com/quotedesk/quotedesk/internal/users"
	"github.com/quotedesk/quotedesk/report"
)

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Warn("load .env", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	if cfg.AutoMigrate {
		if err := db.Migrate(cfg.PGDSN); err != nil {
			logger.Error("apply migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	var store sequence.Store = sequence.NewPGStore(dbpool)
	if cfg.SequenceBackend == app.SequenceRedis {
		store = sequence.NewRedisStore(redisClient)
	}
	allocator := sequence.NewAllocator(store, metrics)
	logger.Info("sequence backend", slog.String("backend", cfg.SequenceBackend))

	userService := users.NewService(users.NewRepository(dbpool))
	tokens := auth.NewTokenStore(redisClient, cfg.TokenTTL)
	authHandler := auth.NewHandler(logger, auth.NewService(userService, tokens))
	usersHandler := users.NewHandler(logger, userService)

	customerRepo := customers.NewRepository(dbpool)
	customersHandler := customers.NewHandler(logger, customers.NewService(customerRepo))

	productRepo := products.NewRepository(dbpool)
	productsHandler := products.NewHandler(logger, products.NewService(productRepo))

	dashboardCache := cache.NewVersioned(redisClient, "dashboard", cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboard.NewRepository(dbpool), allocator, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	gotenberg := report.NewClient(cfg.GotenbergURL, cfg.GotenbergTimeout)
	if page, ok := report.PaperSize(cfg.DocumentPaper); ok {
		gotenberg = gotenberg.WithPage(page)
	}
	renderer, err := render.New(render.Company{
		Name:         cfg.CompanyName,
		AddressLines: cfg.CompanyAddress,
		Phone:        cfg.CompanyPhone,
		Email:        cfg.CompanyEmail,
		Tagline:      cfg.CompanyTagline,
		PaymentTerms: cfg.CompanyPaymentTerms,
	}, render.NewMoney(cfg.CurrencySymbol, cfg.DocumentLocale), gotenberg, metrics)
	if err != nil {
		logger.Error("parse document template", slog.Any("error", err))
		os.Exit(1)
	}

	builder := invoices.NewBuilder(allocator, customerRepo, productRepo)
	invoiceService := invoices.NewService(invoices.NewRepository(dbpool), builder, dashboardCache, logger)
	invoicesHandler := invoices.NewHandler(logger, invoiceService, renderer)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Tokens:           tokens,
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		CustomersHandler: customersHandler,
		ProductsHandler:  productsHandler,
		InvoicesHandler:  invoicesHandler,
		DashboardHandler: dashboardHandler,
		Metrics:          metrics,
		Readiness: map[string]app.Pinger{
			"postgres":  dbpool,
			"redis":     redisPinger{client: redisClient},
			"gotenberg": gotenberg,
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

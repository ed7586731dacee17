package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront-backend/internal/auth"
	"storefront-backend/internal/cache"
	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/logger"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/server"
	"storefront-backend/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log, cfg.Environment.Name)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	repos, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	if err := repos.Products.Seed(ctx); err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}

	var productCache cache.ProductCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, product cache will miss until it recovers", zap.Error(err))
		}
		productCache = cache.NewRedisCache(rdb)
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe, nil)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)

	var uploader client.ImageUploader
	if cfg.Cloudinary.Name != "" {
		uploader, err = client.NewCloudinaryClient(&cfg.Cloudinary)
		if err != nil {
			log.Warn("cloudinary disabled", zap.Error(err))
			uploader = nil
		}
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	settings := service.CheckoutSettings{
		FrontendURL: cfg.Checkout.FrontendURL,
		Currency:    cfg.Checkout.Currency,
		DeliveryFee: cfg.Checkout.DeliveryFee,
	}

	catalog := service.NewCatalogService(repos.Products, productCache, log)
	payments := service.NewPaymentOrchestrator(repos.Orders, repos.Accounts, stripeClient, razorpayClient, settings, m, log)
	services := server.Services{
		Accounts: service.NewAccountService(repos.Accounts, tokens, uploader, service.AdminCredentials{
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
		}),
		Carts:    service.NewCartService(repos.Accounts, catalog),
		Catalog:  catalog,
		Orders:   service.NewOrderService(repos.Orders, repos.Accounts, catalog, payments, settings, m, log),
		Payments: payments,
	}

	// Init HTTP server
	srv := server.NewServer(services, server.Options{
		Tokens:     tokens,
		AdminEmail: cfg.Auth.AdminEmail,
		Metrics:    m,
		Gatherer:   registry,
		Log:        log,
	})

	serverAddr := cfg.HTTP.Addr()
	log.Info("starting HTTP server", zap.String("addr", serverAddr), zap.String("store", cfg.Store.Driver))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
}

// openStore connects the configured backend and returns its repositories
// along with a function that releases the connection.
func openStore(ctx context.Context, storeCfg config.Store) (*repository.Repositories, func(), error) {
	switch storeCfg.Driver {
	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := client.ConnectMongoDB(connectCtx, storeCfg.MongoURI, storeCfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Client().Disconnect(disconnectCtx)
		}

		repos, err := repository.NewMongoRepositories(connectCtx, db)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return repos, closeFn, nil

	case "mysql", "sqlite":
		db, err := client.InitGormClient(storeCfg.Driver, storeCfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewGormRepositories(db), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", storeCfg.Driver)
	}
}

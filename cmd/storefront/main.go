package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"FurniStore/internal/api"
	"FurniStore/internal/auth"
	"FurniStore/internal/catalog"
	"FurniStore/internal/config"
	"FurniStore/internal/storage"
	"FurniStore/internal/store"
	"FurniStore/pkg/kit"
)

const (
	service     = "storefront"
	openTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	kv, closer, err := storage.Open(ctx, cfg.StorageDriver, cfg.StorageDir, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	st, err := store.New(ctx, store.Options{
		Catalog:      cat,
		Storage:      kv,
		Log:          log,
		Metrics:      store.NewCollector(reg),
		PasswordCost: cfg.BcryptCost,
		KeepOrders:   !cfg.ResetOrdersOnStart,
	})
	if err != nil {
		return err
	}

	log.Info("storage ready",
		zap.String("driver", cfg.StorageDriver),
		zap.Int("products", len(cat.Products())),
	)

	s := &api.Server{
		Log:           log,
		Store:         st,
		JWT:           auth.NewTokenMaker(cfg.JWTSecret),
		TokenTTL:      cfg.TokenTTL,
		CheckoutDelay: cfg.CheckoutDelay,
	}

	h := api.NewHandler(s, api.HTTPDeps{
		Log:               log,
		Service:           service,
		Registry:          reg,
		MetricsEnabled:    cfg.MetricsToken != "",
		MetricsToken:      cfg.MetricsToken,
		LoginPerMin:       cfg.LoginRatePerMin,
		RegisterPerMin:    cfg.RegisterRatePerMin,
		TrustForwardedFor: cfg.TrustForwardedFor,
	})

	return kit.RunHTTPServer(context.Background(), cfg.Addr(), h, log)
}

func loadCatalog(path string) (*catalog.MemStore, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

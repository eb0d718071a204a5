package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/artvista/marketplace/internal/catalog/app"
	"github.com/artvista/marketplace/internal/catalog/infra/seed"
	"github.com/artvista/marketplace/internal/httpapi"
	identitykv "github.com/artvista/marketplace/internal/identity/infra/kvrepo"
	"github.com/artvista/marketplace/internal/identity/infra/sms"
	"github.com/artvista/marketplace/internal/notify"
	"github.com/artvista/marketplace/pkg/config"
	"github.com/artvista/marketplace/pkg/kvstore"
	"github.com/artvista/marketplace/pkg/logger"
	"github.com/artvista/marketplace/pkg/shutdown"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Service: "artvista-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		log.Error("api exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	repo, err := seed.Load()
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}

	directory := identitykv.NewDirectory(store, log)
	if err := directory.Seed(ctx, repo.Identities()); err != nil {
		return fmt.Errorf("seed identity directory: %w", err)
	}

	srv := httpapi.NewServer(httpapi.Options{
		Log:        log,
		Store:      store,
		Directory:  directory,
		Sender:     sms.NewSimulatedSender(log, cfg.SimLatency),
		Events:     notify.NewLogSink(log),
		Catalog:    app.NewService(repo),
		OTPTTL:     cfg.OTPTTL,
		SimLatency: cfg.SimLatency,
		CORSOrigin: cfg.CORSOrigin,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", httpServer.Addr, "store", cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(cfg config.Config) (kvstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		return kvstore.NewMemory(), func() {}, nil
	case "file", "":
		s, err := kvstore.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "postgres":
		s, err := kvstore.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

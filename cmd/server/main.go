package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"organledger/internal/access"
	"organledger/internal/coordinator"
	ledger "organledger/internal/ledger/sqlite"
	logistics "organledger/internal/logistics/service"
	logisticsstore "organledger/internal/logistics/store"
	match "organledger/internal/match/service"
	matchstore "organledger/internal/match/store"
	"organledger/internal/platform/config"
	"organledger/internal/platform/httpserver"
	"organledger/internal/platform/logger"
	"organledger/internal/platform/metrics"
	recipient "organledger/internal/recipient/service"
	recipientstore "organledger/internal/recipient/store"
	httptransport "organledger/internal/transport/http"
	"organledger/pkg/domain"
)

// main wires configuration, registries, the access guard, and the HTTP
// surface, then runs the server until a shutdown signal arrives. Business
// logic lives in the registry services and the coordinator.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat)
	if err := run(log, cfg); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, cfg config.Server) error {
	matchStore := matchstore.NewInMemory()
	recipientStore := recipientstore.NewInMemory()
	logisticsStore := logisticsstore.NewInMemory()

	m := metrics.New()
	owner := domain.Principal(cfg.Owner)
	coordOpts := []coordinator.Option{coordinator.WithLogger(log), coordinator.WithMetrics(m)}

	var store *ledger.Store
	if cfg.DBPath != "" {
		var err error
		store, err = ledger.NewStore(cfg.DBPath, matchStore, recipientStore, logisticsStore)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		persisted, err := store.Load(context.Background())
		if err != nil {
			return err
		}
		// A persisted owner outranks the configured one: ownership
		// transfers must survive restarts.
		if !persisted.Zero() {
			owner = persisted
		}
		coordOpts = append(coordOpts, coordinator.WithCommitter(store))
		log.Info("ledger attached", "path", store.Path())
	}

	guard := access.NewGuard(owner)
	if store != nil {
		store.BindGuard(guard)
	}

	coord := coordinator.New(
		guard,
		match.New(matchStore, match.WithLogger(log), match.WithMetrics(m)),
		recipient.New(recipientStore, recipient.WithLogger(log), recipient.WithMetrics(m)),
		logistics.New(logisticsStore, logistics.WithLogger(log), logistics.WithMetrics(m)),
		coordOpts...,
	)

	router := httptransport.NewRouter(httptransport.NewHandler(coord, log), log, m)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting organledger", "addr", cfg.Addr, "owner", string(guard.Owner()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("organledger stopped")
	return nil
}

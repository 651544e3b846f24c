// Package app wires configuration, storage, services, and transport into
// a running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres"
	exchangerepo "github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres/exchange"
	profilerepo "github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres/profile"
	reviewrepo "github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres/review"
	"github.com/skillswap-ke/skillswap-backend/internal/auth"
	"github.com/skillswap-ke/skillswap-backend/internal/config"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
	exchangesvc "github.com/skillswap-ke/skillswap-backend/internal/service/exchange"
	matchingsvc "github.com/skillswap-ke/skillswap-backend/internal/service/matching"
	profilesvc "github.com/skillswap-ke/skillswap-backend/internal/service/profile"
	reputationsvc "github.com/skillswap-ke/skillswap-backend/internal/service/reputation"
	"github.com/skillswap-ke/skillswap-backend/internal/transport/middleware"
	"github.com/skillswap-ke/skillswap-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the services, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	profiles := profilerepo.New(pool)
	exchanges := exchangerepo.New(pool)
	reviews := reviewrepo.New(pool)

	bus := events.NewBus(logger, cfg.Events.BufferSize)
	defer bus.Close()
	go logEvents(ctx, logger, bus.Subscribe())

	exchangeSvc := exchangesvc.NewService(logger, exchanges, profiles, txManager, bus, cfg.Exchange.MaxActivePerUser, cfg.Exchange.DefaultDeadline)
	reputationSvc := reputationsvc.NewService(logger, reviews, profiles, exchanges, txManager, bus)
	matchingSvc := matchingsvc.NewService(logger, profiles)
	profileSvc := profilesvc.NewService(logger, profiles, reviews)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Exchanges:          rest.NewExchangeHandler(exchangeSvc, logger),
		Profiles:           rest.NewProfileHandler(profileSvc, matchingSvc, logger),
		Reviews:            rest.NewReviewHandler(reputationSvc, logger),
		Admin:              rest.NewAdminHandler(reputationSvc, exchangeSvc, profileSvc, logger),
		Health:             rest.NewHealthHandler(pool, BuildVersion()),
		Auth: middleware.Chain(
			middleware.Auth(jwtManager),
			middleware.Activity(profileSvc),
		),
		RateLimiter:        rateLimiter,
		CORS:               cfg.CORS,
		Log:                logger,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// logEvents drains the bus so lifecycle activity shows up in the
// structured log even with no other subscribers attached.
func logEvents(ctx context.Context, logger *slog.Logger, ch <-chan events.Event) {
	log := logger.With("component", "event_log")
	for e := range ch {
		log.InfoContext(ctx, "event",
			slog.String("type", string(e.Type)),
			slog.String("actor_id", e.ActorID.String()),
			slog.String("exchange_id", e.ExchangeID.String()),
		)
	}
}

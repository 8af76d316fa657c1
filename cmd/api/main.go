// Command api serves the marketplace over HTTP.
//
// @title                       Marketplace API
// @version                     1.0
// @description                 Mock marketplace with role-based views, a global chat room and direct messages.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cosmicchronic/marketplace/internal/api"
	"github.com/cosmicchronic/marketplace/internal/core/service"
	"github.com/cosmicchronic/marketplace/internal/infrastructure/config"
	"github.com/cosmicchronic/marketplace/internal/infrastructure/db/memory"
	mongodb "github.com/cosmicchronic/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/cosmicchronic/marketplace/internal/infrastructure/db/redis"
	"github.com/cosmicchronic/marketplace/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "marketplace: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel))

	repos, checks, cleanup, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	market := service.NewMarketplace(repos, logger.Component("marketplace"))
	if err := market.Reset(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	auth := service.NewAuthService(market, cfg.JWTSecret, cfg.TokenTTL)

	e := api.NewRouter(api.Deps{
		Marketplace:     market,
		Auth:            auth,
		JWTSecret:       cfg.JWTSecret,
		Log:             logger.Component("http"),
		ReadinessChecks: checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreBackend).
			Str("sessions", cfg.SessionBackend).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

type readinessCheck = func(ctx context.Context) error

// buildRepositories opens the configured backends. The returned cleanup
// closes whatever was opened.
func buildRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.Repositories, map[string]readinessCheck, func(), error) {
	var repos service.Repositories
	var closers []func()
	checks := make(map[string]readinessCheck)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return repos, nil, func() {}, err
		}
		closers = append(closers, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		})
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

		users := mongodb.NewUserRepository(db)
		products := mongodb.NewProductRepository(db)
		chat := mongodb.NewChatRepository(db)
		dms := mongodb.NewDirectMessageRepository(db)
		for name, ensure := range map[string]func(context.Context) error{
			"users":    users.EnsureIndexes,
			"products": products.EnsureIndexes,
			"chat":     chat.EnsureIndexes,
			"dms":      dms.EnsureIndexes,
		} {
			if err := ensure(ctx); err != nil {
				cleanup()
				return repos, nil, func() {}, fmt.Errorf("ensure %s indexes: %w", name, err)
			}
		}
		repos.Users, repos.Products, repos.Chat, repos.DirectMessages = users, products, chat, dms
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo store ready")
	default:
		repos.Users = memory.NewUserRepository()
		repos.Products = memory.NewProductRepository()
		repos.Chat = memory.NewChatRepository()
		repos.DirectMessages = memory.NewDirectMessageRepository()
	}

	switch cfg.SessionBackend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			cleanup()
			return repos, nil, func() {}, err
		}
		closers = append(closers, func() { _ = client.Close() })
		checks["redis"] = redisdb.ReadinessCheck(client)
		repos.Sessions = redisdb.NewSessionStore(client, cfg.TokenTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis session store ready")
	default:
		repos.Sessions = memory.NewSessionStore()
	}

	return repos, checks, cleanup, nil
}

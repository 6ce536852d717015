package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/acmedash/internal/authz"
	"github.com/dropDatabas3/acmedash/internal/cache"
	"github.com/dropDatabas3/acmedash/internal/config"
	"github.com/dropDatabas3/acmedash/internal/email"
	"github.com/dropDatabas3/acmedash/internal/http/handlers"
	"github.com/dropDatabas3/acmedash/internal/http/router"
	"github.com/dropDatabas3/acmedash/internal/http/server"
	"github.com/dropDatabas3/acmedash/internal/metrics"
	"github.com/dropDatabas3/acmedash/internal/observability/logger"
	"github.com/dropDatabas3/acmedash/internal/session"
	"github.com/dropDatabas3/acmedash/internal/store/core"
	"github.com/dropDatabas3/acmedash/internal/store/memory"
	"github.com/dropDatabas3/acmedash/internal/store/pg"
)

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.App.LogLevel,
				ServiceName: "acmedash",
			})
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// ---- cache ----
			cacheClient, err := cache.New(cache.Config{
				Kind:       cfg.Cache.Kind,
				Prefix:     cfg.Cache.Prefix,
				Addr:       cfg.Cache.Redis.Addr,
				Password:   cfg.Cache.Redis.Password,
				DB:         cfg.Cache.Redis.DB,
				DefaultTTL: cfg.CacheDefaultTTL(),
			})
			if err != nil {
				return fmt.Errorf("cache: %w", err)
			}
			defer func() { _ = cacheClient.Close() }()

			// ---- store ----
			repo, err := openRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer repo.Close()
			logger.L().Info("store ready", logger.Component(cfg.Storage.Driver))

			// ---- sesiones ----
			sessStore := session.NewStore(cacheClient, cfg.SessionTTL())
			var sources session.Multi
			if cfg.Auth.JWTSecret != "" {
				sources = append(sources, session.NewJWTSource([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTIssuer))
			} else {
				logger.L().Warn("jwt secret vacío: bearer tokens deshabilitados")
			}
			sources = append(sources, session.NewCookieSource(sessStore, cfg.Auth.Session.CookieName))

			resolver := authz.NewResolver(session.ContextProvider{})

			// ---- email ----
			var sender email.Sender = email.NopSender{}
			if cfg.Email.Enabled {
				sender = email.NewSMTP(email.Config{
					Host:     cfg.Email.Host,
					Port:     cfg.Email.Port,
					Username: cfg.Email.Username,
					Password: cfg.Email.Password,
					From:     cfg.Email.From,
				})
			}

			// ---- http ----
			if err := metrics.Register(nil); err != nil {
				return fmt.Errorf("metrics: %w", err)
			}
			h := handlers.New(handlers.Deps{
				Repo:       repo,
				Cache:      cacheClient,
				Sender:     sender,
				SummaryTTL: cfg.SummaryTTL(),
			})
			handler := router.New(router.Deps{
				Handlers: h,
				Resolver: resolver,
				Sessions: sources,
			})

			return server.Run(ctx, server.Config{Addr: cfg.Server.Addr}, handler)
		},
	}
}

// openRepository abre el store según storage.driver.
func openRepository(ctx context.Context, cfg *config.Config) (core.Repository, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return pg.New(ctx, cfg.Storage.DSN, pg.Config{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MinConns:        cfg.Storage.Postgres.MinConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		})
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
}

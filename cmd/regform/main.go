package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/regform/modules/account"
	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/config"
	"github.com/dmitrymomot/regform/pkg/httpserver"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/pg"
	"github.com/dmitrymomot/regform/pkg/ratelimiter"
	"github.com/dmitrymomot/regform/pkg/redis"
)

func main() {
	var cfg settings
	config.MustLoad(&cfg.App)
	config.MustLoad(&cfg.HTTP)
	config.MustLoad(&cfg.ClientIP)
	config.MustLoad(&cfg.Registration)
	config.MustLoad(&cfg.Account)
	config.MustLoad(&cfg.RateLimit)
	config.MustLoad(&cfg.Postgres)
	config.MustLoad(&cfg.Redis)

	log := newLogger(cfg.App)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg settings, log *slog.Logger) error {
	ready := &drain{}

	ips, err := clientip.NewResolver(cfg.ClientIP)
	if err != nil {
		return fmt.Errorf("client ip: %w", err)
	}

	var accounts account.Storage = account.NewMemoryStorage()
	if cfg.Postgres.Enabled() {
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()

		if err := pg.Migrate(ctx, pool, cfg.Postgres, account.Migrations, account.MigrationsDir, log); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		accounts = account.NewPGStorage(pool)
		ready.deps = append(ready.deps, pg.Healthcheck(pool))
	} else {
		log.Warn("PG_CONN_URL not set, accounts are kept in memory", logger.Component("main"))
	}

	var store ratelimiter.Store
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()

		store = ratelimiter.NewRedisStore(client, cfg.App.AppName+":ratelimit")
		ready.deps = append(ready.deps, redis.Healthcheck(client))
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		store = mem
	}

	limiter, err := ratelimiter.NewBucket(store, cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	signup := account.NewService(accounts,
		account.WithLogger(log),
		account.WithBcryptCost(cfg.Account.BcryptCost),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithDrainHook(ready.stop),
	)

	return srv.Run(ctx, newRouter(cfg, log, ready, ips,
		registration.WithOnSubmit(signup.Register),
		registration.WithLimiter(limiter),
	))
}

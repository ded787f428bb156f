package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/dmitrymomot/anihub/pkg/config"
	"github.com/dmitrymomot/anihub/pkg/mongo"
	"github.com/dmitrymomot/anihub/pkg/pg"
	"github.com/dmitrymomot/anihub/pkg/redis"
	"github.com/dmitrymomot/anihub/svc/auth"
	"github.com/dmitrymomot/anihub/svc/auth/memory"
	authmongo "github.com/dmitrymomot/anihub/svc/auth/mongo"
	authpg "github.com/dmitrymomot/anihub/svc/auth/postgres"
	authredis "github.com/dmitrymomot/anihub/svc/auth/redis"
)

const (
	driverPostgres  = "postgres"
	driverMongo     = "mongo"
	driverMemory    = "memory"
	tokenStoreRedis = "redis"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type storageConfig struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	// TokenStore moves verification tokens to another backend. Empty keeps
	// them next to the accounts.
	TokenStore string `env:"TOKEN_STORE"`
	// AutoMigrate applies pending Postgres migrations on serve.
	AutoMigrate bool `env:"PG_AUTO_MIGRATE" envDefault:"true"`
}

// storage is the set of backends selected by storageConfig.
type storage struct {
	accounts auth.AccountRepository
	tokens   auth.TokenStorage
	probes   []func(context.Context) error
	closers  []func(context.Context) error
}

// pruner reports whether the token backend needs explicit cleanup.
func (s *storage) pruner() (auth.TokenPruner, bool) {
	p, ok := s.tokens.(auth.TokenPruner)
	return p, ok
}

func (s *storage) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i](ctx))
	}
	return errors.Join(errs...)
}

func openStorage(ctx context.Context, cfg storageConfig, log *slog.Logger) (*storage, error) {
	s := &storage{}

	switch cfg.Driver {
	case driverPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, oops.Code("CONFIG_INVALID").With("driver", cfg.Driver).Wrap(err)
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.Driver).Wrap(err)
		}
		s.closers = append(s.closers, func(context.Context) error { pool.Close(); return nil })
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, authpg.Migrations(), log); err != nil {
				_ = s.Close(ctx)
				return nil, oops.Code("MIGRATION_FAILED").Wrap(err)
			}
		}
		s.accounts = authpg.NewAccountRepository(pool)
		s.tokens = authpg.NewTokenStorage(pool)
		s.probes = append(s.probes, pg.Healthcheck(pool))

	case driverMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, oops.Code("CONFIG_INVALID").With("driver", cfg.Driver).Wrap(err)
		}
		db, err := mongo.NewDatabase(ctx, mongoCfg)
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.Driver).Wrap(err)
		}
		client := db.Client()
		s.closers = append(s.closers, client.Disconnect)
		if err := authmongo.EnsureIndexes(ctx, db); err != nil {
			_ = s.Close(ctx)
			return nil, oops.Code("MIGRATION_FAILED").With("driver", cfg.Driver).Wrap(err)
		}
		s.accounts = authmongo.NewAccountRepository(db)
		s.tokens = authmongo.NewTokenStorage(db)
		s.probes = append(s.probes, mongo.Healthcheck(client))

	case driverMemory:
		log.WarnContext(ctx, "using in-memory storage, data is lost on restart")
		s.accounts = memory.NewAccountStore()
		s.tokens = memory.NewTokenStore()

	default:
		return nil, oops.Code("CONFIG_INVALID").With("driver", cfg.Driver).Wrap(ErrUnknownDriver)
	}

	switch cfg.TokenStore {
	case "":
	case tokenStoreRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			_ = s.Close(ctx)
			return nil, oops.Code("CONFIG_INVALID").With("token_store", cfg.TokenStore).Wrap(err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			_ = s.Close(ctx)
			return nil, oops.Code("REDIS_CONNECT_FAILED").Wrap(err)
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		s.tokens = authredis.NewTokenStorage(client)
		s.probes = append(s.probes, redis.Healthcheck(client))
	default:
		_ = s.Close(ctx)
		return nil, oops.Code("CONFIG_INVALID").With("token_store", cfg.TokenStore).Wrap(ErrUnknownDriver)
	}

	return s, nil
}

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/treeoracle"
	"github.com/aretw0/treeoracle/internal/config"
	"github.com/aretw0/treeoracle/pkg/adapters/badger"
	"github.com/aretw0/treeoracle/pkg/adapters/file"
	"github.com/aretw0/treeoracle/pkg/adapters/memory"
	"github.com/aretw0/treeoracle/pkg/adapters/redis"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/observability"
	"github.com/aretw0/treeoracle/pkg/persistence/middleware"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/aretw0/treeoracle/pkg/registry"
)

// CloseFunc releases resources held by a store.
type CloseFunc func() error

// NewStore builds the sample store selected by cfg, wrapped so that every call
// is logged and malformed samples are refused before they are persisted.
func NewStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (ports.SampleStore, CloseFunc, error) {
	store, closeFn, err := newBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	// Alphabets do not depend on the logical inputs.
	return middleware.Chain(store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(registry.Default(0, 1)),
	), closeFn, nil
}

func newBackend(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (ports.SampleStore, CloseFunc, error) {
	nop := func() error { return nil }

	switch cfg.Kind {
	case "", "memory":
		return memory.NewStore(), nop, nil
	case "file":
		logger.Debug("using file store", "dir", cfg.Dir)
		return file.New(cfg.Dir), nop, nil
	case "badger":
		store, err := badger.Open(cfg.Dir, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using badger store", "dir", cfg.Dir)
		return store, store.Close, nil
	case "redis":
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis store at %s unreachable: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("using redis store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

// NewOracle creates an Oracle configured from cfg.
// Debug logging adds per-event log hooks on top of hooks.
func NewOracle(cfg *config.Config, store ports.SampleStore, logger *slog.Logger, hooks domain.Hooks) *treeoracle.Oracle {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = observability.Chain(hooks, observability.LogHooks(logger))
	}

	opts := []treeoracle.Option{
		treeoracle.WithLogger(logger),
		treeoracle.WithSeed(cfg.Seed),
		treeoracle.WithWorkers(cfg.Workers),
		treeoracle.WithMaxSteps(cfg.MaxSteps),
		treeoracle.WithLogicalInputs(cfg.Logical.X, cfg.Logical.Y),
		treeoracle.WithHooks(hooks),
	}
	if store != nil {
		opts = append(opts, treeoracle.WithStore(store))
	}
	return treeoracle.New(opts...)
}

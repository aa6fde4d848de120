package bootstrap

import (
	"context"
	"log/slog"

	"shareit/internal/infra/cache"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"go.uber.org/fx"
)

type SearchStore interface {
	queries.SearchCache
	commands.SearchInvalidator
}

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewSearchStore,
		func(s SearchStore) queries.SearchCache { return s },
		func(s SearchStore) commands.SearchInvalidator { return s },
	),
)

// NewSearchStore falls back to a no-op cache when REDIS_ADDR is unset.
func NewSearchStore(lc fx.Lifecycle, cfg config.Config) SearchStore {
	if !cfg.Redis.Enabled() {
		return cache.NoopSearchCache{}
	}
	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				slog.Warn("redis unreachable, search results will not be cached until it recovers", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewSearchCache(client, cfg.Redis.SearchCacheTTL)
}

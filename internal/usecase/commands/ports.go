package commands

import (
	"context"
	"log/slog"
)

// SearchInvalidator drops cached search results after catalogue writes.
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}

type BookingMetrics interface {
	BookingCreated()
	BookingDecided(status string)
}

// Runs after commit; a failed invalidation only leaves results stale until TTL.
func invalidateSearch(ctx context.Context, inv SearchInvalidator) {
	if err := inv.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "search cache invalidation failed", "error", err.Error())
	}
}

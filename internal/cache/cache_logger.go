package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of
// propagating failures; a stale entry expires by TTL anyway.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging instead of propagating failures.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateTitle drops a title's detail entry and every title listing; a
// review write changes the computed rating, so review repositories call this
// too.
func InvalidateTitle(ctx context.Context, cm *CacheManager, titleID uint) {
	SafeDelete(ctx, cm.Title, fmt.Sprintf("id:%d", titleID))
	SafeInvalidatePattern(ctx, cm.Title, "list:*")
}

// InvalidateCatalog drops every cached category/genre listing.
func InvalidateCatalog(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Catalog, "*")
}

// InvalidateUser drops a user's cached record under both lookup keys.
func InvalidateUser(ctx context.Context, cm *CacheManager, id uint, username string) {
	SafeDelete(ctx, cm.User,
		fmt.Sprintf("id:%d", id),
		fmt.Sprintf("username:%s", username))
}

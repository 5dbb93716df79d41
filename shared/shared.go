package shared

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"tourbook/shared/cache"
	"tourbook/shared/dto"
)

const cacheKeySeparator = ":"

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

func FilterByID(id any, fieldID string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
			},
		},
	}
}

// BuildCacheKey joins the application name, an entity prefix and the parts,
// e.g. "tourbook:booking_request:42".
func BuildCacheKey(appName, prefix string, parts ...any) string {
	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, appName, prefix)

	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}

	return strings.Join(segments, cacheKeySeparator)
}

// InvalidateCaches deletes keys in the background. A failure only means a stale
// read until the TTL runs out, so it is logged and never returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, keys ...string) {
	ctx = context.WithoutCancel(ctx)

	go func() {
		for _, key := range keys {
			if err := redisCache.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache")
			}
		}
	}()
}

package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	directoryport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/directory"
)

// usersCacheKey is the single cache entry for the directory listing
const usersCacheKey = "directory:users"

// CachedGateway decorates a directory Gateway with Redis caching. The
// directory changes rarely and the opening form hits it on every page load,
// so a short TTL takes most of the traffic off the external service.
type CachedGateway struct {
	inner  directoryport.Gateway
	rdb    *redis.Client
	ttl    time.Duration
	logger coreport.Logger
}

// Compile-time check that CachedGateway implements the Gateway interface
var _ directoryport.Gateway = (*CachedGateway)(nil)

// NewCachedGateway decorates a Gateway with Redis caching.
// If ttl is 0 or negative, it defaults to 5 minutes.
func NewCachedGateway(rdb *redis.Client, ttl time.Duration, inner directoryport.Gateway, logger coreport.Logger) *CachedGateway {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedGateway{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchUsers retrieves directory users, checking the cache first and falling
// back to the directory service on a miss.
func (c *CachedGateway) FetchUsers(ctx context.Context) ([]entity.DirectoryUser, error) {
	// Bypass caching entirely if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchUsers(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, usersCacheKey).Bytes(); err == nil && len(b) > 0 {
		var out []entity.DirectoryUser
		if err := json.Unmarshal(b, &out); err == nil {
			c.logger.Debug("Directory users served from cache", map[string]any{
				"count": len(out),
			})
			return out, nil
		}
		// Delete corrupted cache entry
		if err := c.rdb.Del(ctx, usersCacheKey).Err(); err != nil {
			c.logger.Warn("Failed to drop corrupted directory cache entry", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// 2) Fall back to the directory service
	out, err := c.inner.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, usersCacheKey, b, c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache directory users", map[string]any{
				"error": err.Error(),
			})
		}
	}

	return out, nil
}

package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
)

// BoundaryKey is the redis key holding the cached geofence of a site.
func BoundaryKey(siteID string) string {
	return fmt.Sprintf("securefront:site:%s:boundary", siteID)
}

type cachedBoundary struct {
	AgencyID string      `json:"agencyId"`
	Name     string      `json:"name"`
	Boundary []geo.Point `json:"boundary"`
}

type redisBoundaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *redisBoundaryCache) Get(ctx context.Context, siteID string) (site.Site, bool) {
	raw, err := c.client.Get(ctx, BoundaryKey(siteID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Boundary cache read failed", "site_id", siteID, "error", err)
		}
		return site.Site{}, false
	}

	var entry cachedBoundary
	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.Warn("Boundary cache entry is corrupt", "site_id", siteID, "error", err)
		return site.Site{}, false
	}
	return site.Site{ID: siteID, AgencyID: entry.AgencyID, Name: entry.Name, Boundary: entry.Boundary}, true
}

func (c *redisBoundaryCache) Set(ctx context.Context, st site.Site) {
	raw, err := json.Marshal(cachedBoundary{AgencyID: st.AgencyID, Name: st.Name, Boundary: st.Boundary})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, BoundaryKey(st.ID), raw, c.ttl).Err(); err != nil {
		slog.Warn("Boundary cache write failed", "site_id", st.ID, "error", err)
	}
}

func (c *redisBoundaryCache) Invalidate(ctx context.Context, siteID string) {
	if err := c.client.Del(ctx, BoundaryKey(siteID)).Err(); err != nil {
		slog.Warn("Boundary cache invalidation failed", "site_id", siteID, "error", err)
	}
}

func NewRedisBoundaryCache(client *redis.Client, ttl time.Duration) site.BoundaryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisBoundaryCache{client: client, ttl: ttl}
}

// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"gastro-triage/internal/common/logger"
)

const cacheKey = "triage:catalog:document"

// Source is anything that can produce a catalog snapshot.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// CachedSource wraps a Source with a Redis cache of the serialized catalog
// document, so restarts and periodic reloads do not hammer the database.
// Cache-aside: a hit rebuilds the snapshot from the cached document, a miss
// falls through to the inner source and populates the cache best-effort.
type CachedSource struct {
	inner  Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedSource wires the cache layer. A zero ttl disables expiry.
func NewCachedSource(inner Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{inner: inner, redis: rdb, ttl: ttl, logger: log}
}

// Load returns the cached catalog when present, otherwise loads from the
// inner source. Cache failures are never fatal: the database remains the
// source of truth.
func (c *CachedSource) Load(ctx context.Context) (*Snapshot, error) {
	if val, err := c.redis.Get(ctx, cacheKey).Result(); err == nil {
		var doc Document
		if err := json.Unmarshal([]byte(val), &doc); err == nil {
			if snap, err := Build(doc.Symptoms, doc.Diseases, doc.Relations, c.logger); err == nil {
				return snap, nil
			}
		}
		c.logger.Warn("cached catalog document unusable, reloading from source", nil)
	}

	snap, err := c.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	doc := Document{
		Symptoms:  snap.Symptoms(),
		Diseases:  snap.Diseases(),
		Relations: allRelations(snap),
	}
	if data, err := json.Marshal(doc); err == nil {
		if err := c.redis.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("failed to cache catalog document", map[string]interface{}{
				"error": err,
			})
		}
	}

	return snap, nil
}

// Invalidate drops the cached document so the next Load hits the source.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, cacheKey).Err()
}

func allRelations(s *Snapshot) []Relation {
	var out []Relation
	for _, id := range s.MatchableDiseaseIDs() {
		out = append(out, s.Relations(id)...)
	}
	return out
}

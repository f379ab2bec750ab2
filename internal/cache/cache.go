// Package cache keeps read-through copies of movie aggregates in Redis.
//
// The cache is best effort: Redis errors are logged and treated as misses,
// never surfaced to callers. A nil *MovieCache is valid and caches nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "rental:movie:"

// DefaultTTL applies when NewMovieCache is given a non-positive ttl.
const DefaultTTL = 5 * time.Minute

type MovieCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    zerolog.Logger
}

// NewMovieCache returns nil when client is nil.
func NewMovieCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *MovieCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MovieCache{
		client: client,
		ttl:    ttl,
		log:    logger.With().Str("component", "movie_cache").Logger(),
	}
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// Get returns the cached movie and whether it was present.
func (c *MovieCache) Get(ctx context.Context, id int64) (model.Movie, bool) {
	if c == nil {
		return model.Movie{}, false
	}

	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Movie{}, false
	}
	if err != nil {
		c.log.Warn().Err(err).Int64("movie_id", id).Msg("cache read failed")
		return model.Movie{}, false
	}

	var m model.Movie
	if err := json.Unmarshal(raw, &m); err != nil {
		c.log.Warn().Err(err).Int64("movie_id", id).Msg("dropping undecodable cache entry")
		c.Invalidate(ctx, id)
		return model.Movie{}, false
	}
	return m, true
}

func (c *MovieCache) Set(ctx context.Context, m model.Movie) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(m)
	if err != nil {
		c.log.Warn().Err(err).Int64("movie_id", m.ID).Msg("cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key(m.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int64("movie_id", m.ID).Msg("cache write failed")
	}
}

func (c *MovieCache) Invalidate(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("movie_id", id).Msg("cache invalidate failed")
	}
}

// InvalidateAll drops every cached movie. Renaming an actor or director
// changes the aggregates that embed them.
func (c *MovieCache) InvalidateAll(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Int("keys", len(keys)).Msg("cache invalidate failed")
	}
}

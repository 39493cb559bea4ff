// Package cache keeps the public session listing in Redis.
//
// Entries are keyed by a global version number. Any write that changes what a
// listing would return bumps the version, which orphans every cached listing at
// once; orphans expire on their own TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/logging"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

const versionKey = "sessions:version"

const defaultTTL = 30 * time.Second

// SessionCache is safe to use with a nil client, in which case every lookup misses.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionCache constructs a SessionCache.
func NewSessionCache(rdb *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionCache{rdb: rdb, ttl: ttl}
}

func (c *SessionCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *SessionCache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Key builds the cache key for a listing at the given version.
func Key(version int64, f model.SessionFilter) string {
	center := f.CenterID
	if center == "" {
		center = "all"
	}
	day := "all"
	if start, _, ok := f.DayBounds(); ok {
		day = start.Format(time.DateOnly)
	}
	return fmt.Sprintf("sessions:v%d:%s:%s", version, center, day)
}

// Get returns the cached listing for f. Any Redis failure is a miss.
func (c *SessionCache) Get(ctx context.Context, f model.SessionFilter) ([]model.Session, bool) {
	if !c.enabled() {
		return nil, false
	}
	log := logging.FromContext(ctx)

	v, err := c.version(ctx)
	if err != nil {
		log.WithError(err).Debug("session cache: read version")
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, Key(v, f)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Debug("session cache: read listing")
		}
		return nil, false
	}

	var sessions []model.Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		log.WithError(err).Warn("session cache: corrupt entry")
		return nil, false
	}
	return sessions, true
}

// Set stores a listing under the current version.
func (c *SessionCache) Set(ctx context.Context, f model.SessionFilter, sessions []model.Session) {
	if !c.enabled() {
		return
	}
	log := logging.FromContext(ctx)

	v, err := c.version(ctx)
	if err != nil {
		log.WithError(err).Debug("session cache: read version")
		return
	}
	payload, err := json.Marshal(sessions)
	if err != nil {
		log.WithError(err).Warn("session cache: encode listing")
		return
	}
	if err := c.rdb.Set(ctx, Key(v, f), payload, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("session cache: store listing")
	}
}

// Invalidate drops every cached listing by bumping the version.
func (c *SessionCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("session cache: bump version")
	}
}

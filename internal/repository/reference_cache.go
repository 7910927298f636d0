package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"cargo-entry-service/internal/party"
)

// Cache TTL constants
const (
	PartyListCacheTTL = 5 * time.Minute
)

const partyListKey = "cargoentry:reference:parties"

// ReferenceCache is a read-through Redis cache for backend reference lists.
// A nil Redis client degrades gracefully to always-miss.
type ReferenceCache struct {
	redis *redis.Client
}

// NewReferenceCache creates a reference cache. client may be nil.
func NewReferenceCache(client *redis.Client) *ReferenceCache {
	return &ReferenceCache{redis: client}
}

// GetParties returns the cached party list, or ok=false on a miss.
func (c *ReferenceCache) GetParties(ctx context.Context) ([]party.Record, bool) {
	if c.redis == nil {
		return nil, false
	}
	val, err := c.redis.Get(ctx, partyListKey).Result()
	if err != nil {
		return nil, false
	}
	var records []party.Record
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		return nil, false
	}
	return records, true
}

// SetParties caches the party list.
func (c *ReferenceCache) SetParties(ctx context.Context, records []party.Record) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	c.redis.Set(ctx, partyListKey, data, PartyListCacheTTL)
}

// InvalidateParties drops the cached party list.
func (c *ReferenceCache) InvalidateParties(ctx context.Context) {
	if c.redis == nil {
		return
	}
	c.redis.Del(ctx, partyListKey)
}

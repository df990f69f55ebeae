package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sowmiya2022/clinical-bert-api/internal/domain/service"
)

const keyPrefix = "assertion:prediction:"

// ResultCache stores single-sentence predictions in Redis keyed by a hash
// of the normalized sentence. All methods treat cache errors as misses so
// the caller never fails because of the cache.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a ResultCache backed by the given client.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached prediction for a sentence, or (nil, false) on a
// miss or any cache failure.
func (c *ResultCache) Get(ctx context.Context, sentence string) (*service.Prediction, bool) {
	// both redis.Nil and an unreachable cache count as a miss
	val, err := c.client.Get(ctx, cacheKey(sentence)).Result()
	if err != nil {
		return nil, false
	}

	var pred service.Prediction
	if err := json.Unmarshal([]byte(val), &pred); err != nil {
		return nil, false
	}

	return &pred, true
}

// Set stores a prediction with the configured TTL. Failures are dropped.
func (c *ResultCache) Set(ctx context.Context, sentence string, pred *service.Prediction) {
	val, err := json.Marshal(pred)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(sentence), val, c.ttl).Err()
}

func cacheKey(sentence string) string {
	sum := sha256.Sum256([]byte(sentence))
	return keyPrefix + hex.EncodeToString(sum[:])
}

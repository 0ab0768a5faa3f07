package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides idempotency checks backed by Redis.
type DedupChecker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client redis.UniversalClient) *DedupChecker {
	return &DedupChecker{client: client, ttl: dedupTTL}
}

// MarkIfNew atomically records key and reports whether it was absent.
// Keys expire after dedupTTL.
func (d *DedupChecker) MarkIfNew(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, "dedup:"+key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup mark: %w", err)
	}
	return ok, nil
}

// Package cache stores the last-edited assumption set per user so an
// in-progress model survives a page reload. Entries are opaque JSON blobs
// under a fixed per-user key; nothing derived is ever cached.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avelier/forecast-service/internal/engine"
	"github.com/redis/go-redis/v9"
)

// ErrNoDraft is returned when a user has no cached draft.
var ErrNoDraft = errors.New("no draft found")

// draftTTL keeps abandoned drafts from accumulating forever.
const draftTTL = 30 * 24 * time.Hour

// DraftCache is a thin wrapper over redis for draft storage.
type DraftCache struct {
	rdb *redis.Client
}

// NewDraftCache creates a draft cache over the given redis client.
func NewDraftCache(rdb *redis.Client) *DraftCache {
	return &DraftCache{rdb: rdb}
}

func draftKey(userID int64) string {
	return fmt.Sprintf("draft:%d", userID)
}

// Save stores the user's current assumption set verbatim, replacing any
// previous draft.
func (c *DraftCache) Save(ctx context.Context, userID int64, a engine.AssumptionSet) error {
	blob, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}
	if err := c.rdb.Set(ctx, draftKey(userID), blob, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

// Load restores the user's last saved draft.
func (c *DraftCache) Load(ctx context.Context, userID int64) (*engine.AssumptionSet, error) {
	blob, err := c.rdb.Get(ctx, draftKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	var a engine.AssumptionSet
	if err := json.Unmarshal(blob, &a); err != nil {
		return nil, fmt.Errorf("failed to deserialize draft: %w", err)
	}
	return &a, nil
}

// Clear removes the user's draft, if any.
func (c *DraftCache) Clear(ctx context.Context, userID int64) error {
	if err := c.rdb.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

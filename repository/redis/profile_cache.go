package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

type profileCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewProfileCache creates a Redis-backed profile cache. A cache miss is
// reported as (nil, nil); callers fall through to the primary store.
func NewProfileCache(client *redislib.Client, ttl time.Duration) repository.ProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &profileCache{
		client: client,
		prefix: "profile:",
		ttl:    ttl,
	}
}

func (c *profileCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	result, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(result), &user); err != nil {
		// Corrupt entry: drop it and treat as a miss.
		_ = c.client.Del(ctx, c.key(userID)).Err()
		return nil, nil
	}
	return &user, nil
}

func (c *profileCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(user.ID), payload, c.ttl).Err()
}

func (c *profileCache) Evict(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *profileCache) key(id string) string {
	return fmt.Sprintf("%s%s", c.prefix, id)
}

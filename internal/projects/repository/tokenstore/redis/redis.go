package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore remembers revoked token ids until the tokens would have expired anyway.
type TokenStore struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) TokenStore {
	return TokenStore{
		rdb: rdb,
	}
}

func key(tokenID string) string {
	return "revoked:" + tokenID
}

func (ts TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := ts.rdb.Set(ctx, key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("set error: %w", err)
	}

	return nil
}

func (ts TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := ts.rdb.Get(ctx, key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("get error: %w", err)
	}

	return true, nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/parameterrepo"
	"github.com/redis/go-redis/v9"
)

// ParameterCache keeps the currently valid parameter per key.
type ParameterCache struct {
	rdb     *redis.Client
	expTime time.Duration
}

func New(rdb *redis.Client, expTime time.Duration) ParameterCache {
	return ParameterCache{
		rdb:     rdb,
		expTime: expTime,
	}
}

func key(k string) string {
	return "parameter:" + k
}

// SetParameter caches p no longer than until it stops being valid.
func (pc ParameterCache) SetParameter(ctx context.Context, p models.Parameter) error {
	exp := pc.expTime

	if p.ValidTo != nil {
		left := time.Until(*p.ValidTo)
		if left <= 0 {
			return nil
		}

		if exp == 0 || left < exp {
			exp = left
		}
	}

	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := pc.rdb.Set(ctx, key(p.Key), b, exp).Err(); err != nil {
		return fmt.Errorf("set error: %w", err)
	}

	return nil
}

func (pc ParameterCache) GetParameter(ctx context.Context, k string) (models.Parameter, error) {
	b, err := pc.rdb.Get(ctx, key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Parameter{}, parameterrepo.ErrNotFound
	} else if err != nil {
		return models.Parameter{}, fmt.Errorf("get error: %w", err)
	}

	var p models.Parameter

	if err := json.Unmarshal(b, &p); err != nil {
		return models.Parameter{}, fmt.Errorf("unmarshal error: %w", err)
	}

	return p, nil
}

func (pc ParameterCache) DeleteParameter(ctx context.Context, k string) error {
	if err := pc.rdb.Del(ctx, key(k)).Err(); err != nil {
		return fmt.Errorf("del error: %w", err)
	}

	return nil
}

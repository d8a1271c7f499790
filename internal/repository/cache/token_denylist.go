package cache

import (
	"context"
	"errors"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

type tokenDenylist struct {
	client *goredis.Client
	mem    *memStore
	now    func() time.Time
}

// NewTokenDenylist records revoked token ids until the token would have expired anyway.
func NewTokenDenylist(client *goredis.Client) domain.TokenDenylist {
	return &tokenDenylist{client: client, mem: newMemStore(), now: time.Now}
}

func (d *tokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	key := redis.Key("revoked", tokenID)
	if d.client != nil {
		return d.client.Set(ctx, key, "1", ttl).Err()
	}
	d.mem.set(key, []byte("1"), ttl)
	return nil
}

func (d *tokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := redis.Key("revoked", tokenID)
	if d.client != nil {
		err := d.client.Get(ctx, key).Err()
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
	_, ok := d.mem.get(key)
	return ok, nil
}

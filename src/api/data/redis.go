package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// TokenStore tracks revoked JWT IDs until their natural expiry.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

func (s *TokenStore) IsRevoked(ctx context.Context, jti string) bool {
	n, err := s.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		log.Printf("revocation check failed for %s: %v", jti, err)
		return false
	}
	return n > 0
}

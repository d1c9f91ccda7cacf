package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/redissvc"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found or expired")

const refreshKeyPrefix = "auth:refresh:"

// RefreshStore keeps refresh tokens in Redis keyed by an opaque token value.
// Expiry is handled by the key TTL, so there is no cleanup loop.
type RefreshStore struct {
	rdb *redis.Client
	ctx context.Context
	ttl time.Duration
}

func NewRefreshStore(rs *redissvc.RedisService, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rs.Rdb(), ctx: rs.Ctx(), ttl: ttl}
}

// Issue creates a refresh token bound to the username.
func (s *RefreshStore) Issue(username string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(s.ctx, refreshKeyPrefix+token, username, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate returns the username the token was issued to.
func (s *RefreshStore) Validate(token string) (string, error) {
	username, err := s.rdb.Get(s.ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenNotFound
	}
	return username, err
}

// Revoke invalidates the token. Revoking an unknown token is not an error.
func (s *RefreshStore) Revoke(token string) error {
	return s.rdb.Del(s.ctx, refreshKeyPrefix+token).Err()
}

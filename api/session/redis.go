package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"toolbox/api/database"
	"toolbox/api/models"
)

const (
	imageKeyPrefix = "session:image:"
	lockKeyPrefix  = "session:lock:"
	unlockTimeout  = 2 * time.Second
)

// RedisStore keeps images as JSON documents in Redis so several API
// instances can share sessions.
type RedisStore struct {
	cache  *database.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(cache *database.Cache, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl, logger: logger}
}

func (s *RedisStore) Put(ctx context.Context, key Key, img *models.UploadedImage) error {
	data, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("marshal image: %w", err)
	}
	return s.cache.Set(ctx, imageKeyPrefix+key.String(), data, s.ttl)
}

func (s *RedisStore) Get(ctx context.Context, key Key) (*models.UploadedImage, error) {
	data, err := s.cache.Get(ctx, imageKeyPrefix+key.String())
	if errors.Is(err, database.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var img models.UploadedImage
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("unmarshal image: %w", err)
	}
	return &img, nil
}

func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	return s.cache.Del(ctx, imageKeyPrefix+key.String())
}

func (s *RedisStore) Lock(ctx context.Context, key Key, ttl time.Duration) (func(), error) {
	lockKey := lockKeyPrefix + key.String()
	token := uuid.New().String()

	ok, err := s.cache.SetNX(ctx, lockKey, token, ttl)
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}

	return func() {
		// the request context may already be cancelled
		unlockCtx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		defer cancel()
		if err := s.cache.DelIfEquals(unlockCtx, lockKey, token); err != nil {
			// the lock stays held until its TTL lapses
			s.logger.Error("Failed to release session lock",
				zap.String("key", lockKey),
				zap.Duration("ttl", ttl),
				zap.Error(err),
			)
		}
	}, nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	themesCacheKey        = "themes:all"
	platformStatsCacheKey = "stats:platform"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func (r *cacheRepository) GetThemes(ctx context.Context) ([]*domain.Theme, error) {
	data, err := r.Get(ctx, themesCacheKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var themes []*domain.Theme
	if err := json.Unmarshal(data, &themes); err != nil {
		r.logger.Error("Failed to unmarshal themes from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal themes: %w", err)
	}

	return themes, nil
}

func (r *cacheRepository) SetThemes(ctx context.Context, themes []*domain.Theme, ttl time.Duration) error {
	data, err := json.Marshal(themes)
	if err != nil {
		r.logger.Error("Failed to marshal themes", zap.Error(err))
		return fmt.Errorf("marshal themes: %w", err)
	}

	return r.Set(ctx, themesCacheKey, data, ttl)
}

func (r *cacheRepository) GetPlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	data, err := r.Get(ctx, platformStatsCacheKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var stats domain.PlatformStats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal platform stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal platform stats: %w", err)
	}

	return &stats, nil
}

func (r *cacheRepository) SetPlatformStats(ctx context.Context, stats *domain.PlatformStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal platform stats", zap.Error(err))
		return fmt.Errorf("marshal platform stats: %w", err)
	}

	return r.Set(ctx, platformStatsCacheKey, data, ttl)
}

func (r *cacheRepository) InvalidatePlatformStats(ctx context.Context) error {
	return r.Delete(ctx, platformStatsCacheKey)
}

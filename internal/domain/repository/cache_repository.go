package repository

import (
	"context"
	"time"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// CacheRepository is the read-side cache. A nil result with a nil error is
// a cache miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetThemes(ctx context.Context) ([]*domain.Theme, error)
	SetThemes(ctx context.Context, themes []*domain.Theme, ttl time.Duration) error

	GetPlatformStats(ctx context.Context) (*domain.PlatformStats, error)
	SetPlatformStats(ctx context.Context, stats *domain.PlatformStats, ttl time.Duration) error
	InvalidatePlatformStats(ctx context.Context) error
}

package usecase

import (
	"context"
	"time"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"go.uber.org/zap"
)

// ThemeUseCase serves the sector reference data, cache first.
type ThemeUseCase struct {
	themeRepo repository.ThemeRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewThemeUseCase(
	themeRepo repository.ThemeRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ThemeUseCase {
	return &ThemeUseCase{
		themeRepo: themeRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetThemes returns all themes, using the cache when possible.
func (uc *ThemeUseCase) GetThemes(ctx context.Context) ([]*domain.Theme, error) {
	cached, err := uc.cacheRepo.GetThemes(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Themes fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get themes from cache", zap.Error(err))
	}

	themes, err := uc.themeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetThemes(ctx, themes, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache themes", zap.Error(err))
	}

	return themes, nil
}

// ResolveTheme maps a slug to its theme, falling back to the synthetic
// "other" entry for unknown or empty slugs. The "other" slug itself is
// synthetic and resolves without a lookup.
func (uc *ThemeUseCase) ResolveTheme(ctx context.Context, slug string) (domain.Theme, error) {
	if slug == "" || slug == domain.DefaultThemeSlug {
		return domain.OtherTheme(), nil
	}

	themes, err := uc.GetThemes(ctx)
	if err != nil {
		return domain.OtherTheme(), err
	}

	for _, theme := range themes {
		if theme.Slug == slug {
			return *theme, nil
		}
	}

	return domain.OtherTheme(), nil
}

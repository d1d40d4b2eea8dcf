package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"go.uber.org/zap"
)

// FavoriteUseCase manages visitor bookmarks.
type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	companyRepo  repository.CompanyRepository
	logger       *zap.Logger
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	companyRepo repository.CompanyRepository,
	logger *zap.Logger,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		companyRepo:  companyRepo,
		logger:       logger,
	}
}

// Add bookmarks a company; re-adding is a no-op.
func (uc *FavoriteUseCase) Add(ctx context.Context, userID, companyID uuid.UUID) error {
	if _, err := uc.companyRepo.GetByID(ctx, companyID); err != nil {
		return err
	}
	return uc.favoriteRepo.Add(ctx, userID, companyID)
}

// Remove drops a bookmark.
func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, companyID uuid.UUID) error {
	return uc.favoriteRepo.Remove(ctx, userID, companyID)
}

// List returns the caller's bookmarks.
func (uc *FavoriteUseCase) List(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	return uc.favoriteRepo.ListByUser(ctx, userID)
}

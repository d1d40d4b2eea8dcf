package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

type FavoriteRepository interface {
	// Add is idempotent: re-adding an existing pairing is a no-op.
	Add(ctx context.Context, userID, companyID uuid.UUID) error
	Remove(ctx context.Context, userID, companyID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error)
}

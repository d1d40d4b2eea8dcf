package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)

	// Upsert inserts or updates by ID; used by the invite flow which may
	// re-run after a partial failure.
	Upsert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

package repository

import (
	"context"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// ThemeRepository reads the immutable sector reference data.
type ThemeRepository interface {
	List(ctx context.Context) ([]*domain.Theme, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Theme, error)
}

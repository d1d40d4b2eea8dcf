package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"go.uber.org/zap"
)

type favoriteRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFavoriteRepository(db *DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, companyID uuid.UUID) error {
	// ON CONFLICT keeps re-adding idempotent.
	query := `
		INSERT INTO favorites (id, user_id, company_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, company_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), userID, companyID); err != nil {
		r.logger.Error("Failed to add favorite",
			zap.String("user_id", userID.String()),
			zap.String("company_id", companyID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, companyID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND company_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, companyID); err != nil {
		r.logger.Error("Failed to remove favorite",
			zap.String("user_id", userID.String()),
			zap.String("company_id", companyID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	query := `
		SELECT id, user_id, company_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list favorites", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var favorites []*domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.CompanyID, &f.CreatedAt); err != nil {
			continue
		}
		favorites = append(favorites, &f)
	}

	return favorites, nil
}

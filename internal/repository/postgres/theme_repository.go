package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"go.uber.org/zap"
)

type themeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewThemeRepository(db *DB) repository.ThemeRepository {
	return &themeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *themeRepository) List(ctx context.Context) ([]*domain.Theme, error) {
	query := `SELECT id, name, slug, icon, color, created_at FROM themes ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list themes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var themes []*domain.Theme
	for rows.Next() {
		var t domain.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Icon, &t.Color, &t.CreatedAt); err != nil {
			continue
		}
		themes = append(themes, &t)
	}

	return themes, nil
}

func (r *themeRepository) GetBySlug(ctx context.Context, slug string) (*domain.Theme, error) {
	query := `SELECT id, name, slug, icon, color, created_at FROM themes WHERE slug = $1`

	var t domain.Theme
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&t.ID, &t.Name, &t.Slug, &t.Icon, &t.Color, &t.CreatedAt)
	if err == sql.ErrNoRows {
		// Unknown slugs resolve to the synthetic fallback so directory
		// grouping never fails on stale company data.
		fallback := domain.OtherTheme()
		return &fallback, nil
	}
	if err != nil {
		r.logger.Error("Failed to get theme by slug", zap.String("slug", slug), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &t, nil
}

package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"go.uber.org/zap"
)

type photoRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPhotoRepository(db *DB) repository.PhotoRepository {
	return &photoRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *photoRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyPhoto, error) {
	query := `
		SELECT id, company_id, photo_url, order_index, created_at
		FROM company_photos
		WHERE company_id = $1
		ORDER BY order_index
	`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		r.logger.Error("Failed to list company photos", zap.String("company_id", companyID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var photos []*domain.CompanyPhoto
	for rows.Next() {
		var p domain.CompanyPhoto
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.PhotoURL, &p.OrderIndex, &p.CreatedAt); err != nil {
			continue
		}
		photos = append(photos, &p)
	}

	return photos, nil
}

func (r *photoRepository) ListByCompanies(ctx context.Context, companyIDs []uuid.UUID) (map[uuid.UUID][]*domain.CompanyPhoto, error) {
	result := make(map[uuid.UUID][]*domain.CompanyPhoto, len(companyIDs))
	if len(companyIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(companyIDs))
	for i, id := range companyIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, company_id, photo_url, order_index, created_at
		FROM company_photos
		WHERE company_id = ANY($1)
		ORDER BY company_id, order_index
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to list photos by companies", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.CompanyPhoto
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.PhotoURL, &p.OrderIndex, &p.CreatedAt); err != nil {
			continue
		}
		result[p.CompanyID] = append(result[p.CompanyID], &p)
	}

	return result, nil
}

func (r *photoRepository) Add(ctx context.Context, photo *domain.CompanyPhoto) error {
	query := `
		INSERT INTO company_photos (id, company_id, photo_url, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		photo.ID, photo.CompanyID, photo.PhotoURL, photo.OrderIndex,
	).Scan(&photo.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to add company photo", zap.String("company_id", photo.CompanyID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM company_photos WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete company photo", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrCompanyNotFound
	}

	return nil
}

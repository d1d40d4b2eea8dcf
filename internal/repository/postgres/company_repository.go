package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"go.uber.org/zap"
)

const companyColumns = `
	id, user_id, name, description, address, city, postal_code,
	latitude, longitude, logo_url, banner_url, siret, max_capacity,
	themes, safety_measures, equipment_provided, equipment_required,
	pmr_accessible, contact_name, contact_email, contact_phone,
	status, created_at, updated_at
`

type companyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCompanyRepository(db *DB) repository.CompanyRepository {
	return &companyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func scanCompany(row interface{ Scan(...interface{}) error }) (*domain.Company, error) {
	var c domain.Company
	var themes pq.StringArray
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.Address, &c.City, &c.PostalCode,
		&c.Latitude, &c.Longitude, &c.LogoURL, &c.BannerURL, &c.Siret, &c.MaxCapacity,
		&themes, &c.SafetyMeasures, &c.EquipmentProvided, &c.EquipmentRequired,
		&c.PMRAccessible, &c.ContactName, &c.ContactEmail, &c.ContactPhone,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Themes = []string(themes)
	return &c, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrCompanyNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get company by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return company, nil
}

func (r *companyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1`

	company, err := scanCompany(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, errors.ErrCompanyNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get company by user ID", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return company, nil
}

func (r *companyRepository) ListByStatus(ctx context.Context, status domain.CompanyStatus) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list companies", zap.String("status", string(status)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			r.logger.Error("Failed to scan company", zap.Error(err))
			continue
		}
		companies = append(companies, company)
	}

	return companies, nil
}

func (r *companyRepository) CountByStatus(ctx context.Context, status domain.CompanyStatus) (int, error) {
	query := `SELECT COUNT(*) FROM companies`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error("Failed to count companies", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return count, nil
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (
			id, user_id, name, description, address, city, postal_code,
			latitude, longitude, logo_url, banner_url, siret, max_capacity,
			themes, safety_measures, equipment_provided, equipment_required,
			pmr_accessible, contact_name, contact_email, contact_phone, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		company.ID, company.UserID, company.Name, company.Description,
		company.Address, company.City, company.PostalCode,
		company.Latitude, company.Longitude, company.LogoURL, company.BannerURL,
		company.Siret, company.MaxCapacity, pq.Array(company.Themes),
		company.SafetyMeasures, company.EquipmentProvided, company.EquipmentRequired,
		company.PMRAccessible, company.ContactName, company.ContactEmail,
		company.ContactPhone, company.Status,
	).Scan(&company.CreatedAt, &company.UpdatedAt)

	if isUniqueViolation(err, "companies_siret_key") {
		return errors.ErrSiretConflict
	}
	if err != nil {
		r.logger.Error("Failed to create company", zap.String("name", company.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	query := `
		UPDATE companies SET
			name = $2, description = $3, address = $4, city = $5, postal_code = $6,
			latitude = $7, longitude = $8, logo_url = $9, banner_url = $10,
			siret = $11, max_capacity = $12, themes = $13, safety_measures = $14,
			equipment_provided = $15, equipment_required = $16, pmr_accessible = $17,
			contact_name = $18, contact_email = $19, contact_phone = $20,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		company.ID, company.Name, company.Description, company.Address,
		company.City, company.PostalCode, company.Latitude, company.Longitude,
		company.LogoURL, company.BannerURL, company.Siret, company.MaxCapacity,
		pq.Array(company.Themes), company.SafetyMeasures, company.EquipmentProvided,
		company.EquipmentRequired, company.PMRAccessible, company.ContactName,
		company.ContactEmail, company.ContactPhone,
	)
	if isUniqueViolation(err, "companies_siret_key") {
		return errors.ErrSiretConflict
	}
	if err != nil {
		r.logger.Error("Failed to update company", zap.String("id", company.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrCompanyNotFound
	}

	return nil
}

func (r *companyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CompanyStatus) error {
	query := `UPDATE companies SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update company status",
			zap.String("id", id.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrCompanyNotFound
	}

	return nil
}

func (r *companyRepository) LinkUser(ctx context.Context, companyID, userID uuid.UUID) error {
	query := `UPDATE companies SET user_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, companyID, userID)
	if err != nil {
		r.logger.Error("Failed to link user to company",
			zap.String("company_id", companyID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrCompanyNotFound
	}

	return nil
}

func (r *companyRepository) SiretExists(ctx context.Context, siret string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE siret = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, siret, excludeID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check SIRET", zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return exists, nil
}

func (r *companyRepository) UserLinked(ctx context.Context, userID, excludeCompanyID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE user_id = $1 AND id <> $2)`

	var linked bool
	if err := r.db.QueryRowContext(ctx, query, userID, excludeCompanyID).Scan(&linked); err != nil {
		r.logger.Error("Failed to check user link", zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return linked, nil
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Slots, photos and favorites cascade via foreign keys.
	query := `DELETE FROM companies WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete company", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrCompanyNotFound
	}

	return nil
}

// isUniqueViolation matches a unique constraint failure on the named
// constraint. The pgx stdlib driver surfaces SQLSTATE 23505 in the error
// text.
func isUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") && strings.Contains(msg, constraint)
}

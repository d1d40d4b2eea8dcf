package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"go.uber.org/zap"
)

type settingsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSettingsRepository(db *DB) repository.SettingsRepository {
	return &settingsRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *settingsRepository) GetExportMapping(ctx context.Context) (domain.ExportMapping, error) {
	query := `SELECT value FROM admin_settings WHERE key = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, domain.ExportMappingKey).Scan(&raw)
	if err == sql.ErrNoRows {
		// No saved mapping yet; the caller falls back to an empty one.
		return domain.ExportMapping{}, nil
	}
	if err != nil {
		r.logger.Error("Failed to get export mapping", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	var mapping domain.ExportMapping
	if err := json.Unmarshal(raw, &mapping); err != nil {
		r.logger.Error("Failed to unmarshal export mapping", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return mapping, nil
}

func (r *settingsRepository) SaveExportMapping(ctx context.Context, mapping domain.ExportMapping) error {
	raw, err := json.Marshal(mapping)
	if err != nil {
		r.logger.Error("Failed to marshal export mapping", zap.Error(err))
		return errors.ErrInternalServer
	}

	query := `
		INSERT INTO admin_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, domain.ExportMappingKey, raw); err != nil {
		r.logger.Error("Failed to save export mapping", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

package repository

import (
	"context"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// SettingsRepository persists admin configuration records, currently only
// the DataGouv export mapping. The mapping is stored as one row and must
// reload exactly as saved.
type SettingsRepository interface {
	GetExportMapping(ctx context.Context) (domain.ExportMapping, error)
	SaveExportMapping(ctx context.Context, mapping domain.ExportMapping) error
}

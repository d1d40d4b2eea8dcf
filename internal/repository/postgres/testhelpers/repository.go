package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewCompanyRepositoryForTest creates a company repository with test database and logger
func NewCompanyRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CompanyRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewCompanyRepository(pgDB)
}

// NewSlotRepositoryForTest creates a slot repository with test database and logger
func NewSlotRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.SlotRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewSlotRepository(pgDB)
}

// NewBookingRepositoryForTest creates a booking repository with test database and logger
func NewBookingRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.BookingRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewBookingRepository(pgDB)
}

// NewUserRepositoryForTest creates a user repository with test database and logger
func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewUserRepository(pgDB)
}

// NewSettingsRepositoryForTest creates a settings repository with test database and logger
func NewSettingsRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.SettingsRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewSettingsRepository(pgDB)
}

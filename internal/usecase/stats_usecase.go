package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"go.uber.org/zap"
)

// TopCompaniesLimit is the size of the admin ranking.
const TopCompaniesLimit = 5

// StatsUseCase computes the admin platform overview, cache first.
type StatsUseCase struct {
	companyRepo repository.CompanyRepository
	slotRepo    repository.SlotRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	cacheRepo   repository.CacheRepository
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewStatsUseCase(
	companyRepo repository.CompanyRepository,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		companyRepo: companyRepo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		cacheRepo:   cacheRepo,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// GetPlatformStats returns the platform overview, using the cache when
// possible.
func (uc *StatsUseCase) GetPlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	cached, err := uc.cacheRepo.GetPlatformStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Platform stats fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get platform stats from cache", zap.Error(err))
	}

	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetPlatformStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache platform stats", zap.Error(err))
	}

	return stats, nil
}

// RefreshPlatformStats recomputes the overview and replaces the cache.
func (uc *StatsUseCase) RefreshPlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetPlatformStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache refreshed platform stats", zap.Error(err))
	}

	return stats, nil
}

func (uc *StatsUseCase) compute(ctx context.Context) (*domain.PlatformStats, error) {
	approved, err := uc.companyRepo.CountByStatus(ctx, domain.CompanyApproved)
	if err != nil {
		return nil, err
	}
	pending, err := uc.companyRepo.CountByStatus(ctx, domain.CompanyPending)
	if err != nil {
		return nil, err
	}
	students, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	slots, err := uc.slotRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := uc.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := uc.companyRepo.ListByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	slotsByID := make(map[uuid.UUID]*domain.TimeSlot, len(slots))
	for _, slot := range slots {
		slotsByID[slot.ID] = slot
	}
	companiesByID := make(map[uuid.UUID]*domain.Company, len(companies))
	for _, company := range companies {
		companiesByID[company.ID] = company
	}

	confirmedVisits := 0
	for _, booking := range bookings {
		if booking.Status == domain.BookingConfirmed {
			confirmedVisits++
		}
	}

	return &domain.PlatformStats{
		TotalCompanies:     approved,
		TotalStudents:      students,
		TotalVisits:        confirmedVisits,
		PendingValidations: pending,
		TopCompanies:       domain.TopCompanies(bookings, slotsByID, companiesByID, TopCompaniesLimit),
		LastUpdated:        time.Now(),
	}, nil
}

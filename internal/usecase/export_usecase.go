package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
	"go.uber.org/zap"
)

// ExportUseCase manages the DataGouv column mapping and renders the CSV.
type ExportUseCase struct {
	settingsRepo repository.SettingsRepository
	companyRepo  repository.CompanyRepository
	photoRepo    repository.PhotoRepository
	slotRepo     repository.SlotRepository
	bookingRepo  repository.BookingRepository
	logger       *zap.Logger
}

func NewExportUseCase(
	settingsRepo repository.SettingsRepository,
	companyRepo repository.CompanyRepository,
	photoRepo repository.PhotoRepository,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	logger *zap.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		settingsRepo: settingsRepo,
		companyRepo:  companyRepo,
		photoRepo:    photoRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// GetMapping loads the stored mapping; empty when never saved.
func (uc *ExportUseCase) GetMapping(ctx context.Context) (domain.ExportMapping, error) {
	return uc.settingsRepo.GetExportMapping(ctx)
}

// SaveMapping replaces the stored mapping. It must round-trip exactly, so
// the caller gets the saved value back.
func (uc *ExportUseCase) SaveMapping(ctx context.Context, req dto.SaveExportMappingRequest) (domain.ExportMapping, error) {
	if err := uc.settingsRepo.SaveExportMapping(ctx, req.Mapping); err != nil {
		return nil, err
	}
	return req.Mapping, nil
}

// GenerateCSV renders the export: one row per slot of every approved
// company, columns filled per the stored mapping.
func (uc *ExportUseCase) GenerateCSV(ctx context.Context) (*dto.ExportResponse, error) {
	mapping, err := uc.settingsRepo.GetExportMapping(ctx)
	if err != nil {
		return nil, err
	}

	companies, err := uc.companyRepo.ListByStatus(ctx, domain.CompanyApproved)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(companies))
	companiesByID := make(map[uuid.UUID]*domain.Company, len(companies))
	for i, company := range companies {
		ids[i] = company.ID
		companiesByID[company.ID] = company
	}

	photosByCompany, err := uc.photoRepo.ListByCompanies(ctx, ids)
	if err != nil {
		uc.logger.Warn("Failed to load photos for export", zap.Error(err))
		photosByCompany = map[uuid.UUID][]*domain.CompanyPhoto{}
	}

	slotsByCompany, err := uc.slotRepo.ListByCompanies(ctx, ids)
	if err != nil {
		return nil, err
	}

	var slotIDs []uuid.UUID
	for _, slots := range slotsByCompany {
		for _, slot := range slots {
			slotIDs = append(slotIDs, slot.ID)
		}
	}
	bookingsBySlot, err := uc.bookingRepo.ListBySlots(ctx, slotIDs)
	if err != nil {
		return nil, err
	}

	var rows []domain.ExportRow
	for _, company := range companies {
		for _, slot := range slotsByCompany[company.ID] {
			rows = append(rows, domain.ExportRow{
				Slot:    slot,
				Company: companiesByID[slot.CompanyID],
				Photos:  photosByCompany[slot.CompanyID],
				Stats:   domain.ComputeSlotBookingStats(bookingsBySlot[slot.ID]),
			})
		}
	}

	now := time.Now()
	data := domain.BuildCSV(mapping, rows)

	uc.logger.Info("DataGouv export generated",
		zap.Int("rows", len(rows)),
		zap.Int("bytes", len(data)))

	return &dto.ExportResponse{
		Filename:    fmt.Sprintf("export-datagouv-%s.csv", now.Format("2006-01-02")),
		ContentType: "text/csv; charset=utf-8",
		Data:        data,
		RowCount:    len(rows),
		GeneratedAt: now,
	}, nil
}

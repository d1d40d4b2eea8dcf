package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
	"go.uber.org/zap"
)

// SlotUseCase owns the time slot lifecycle for company accounts.
type SlotUseCase struct {
	slotRepo    repository.SlotRepository
	companyRepo repository.CompanyRepository
	logger      *zap.Logger
}

func NewSlotUseCase(
	slotRepo repository.SlotRepository,
	companyRepo repository.CompanyRepository,
	logger *zap.Logger,
) *SlotUseCase {
	return &SlotUseCase{
		slotRepo:    slotRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Create opens a new slot for the company. The seat counter starts at
// capacity.
func (uc *SlotUseCase) Create(ctx context.Context, companyID uuid.UUID, req dto.SlotRequest) (*domain.TimeSlot, error) {
	if _, err := uc.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	start, end, err := parseSlotWindow(req)
	if err != nil {
		return nil, err
	}

	slot := &domain.TimeSlot{
		ID:                       uuid.New(),
		CompanyID:                companyID,
		StartDatetime:            start,
		EndDatetime:              end,
		Capacity:                 req.Capacity,
		AvailableSpots:           req.Capacity,
		VisitType:                req.VisitType,
		Description:              req.Description,
		SpecificInstructions:     req.SpecificInstructions,
		RequiresManualValidation: req.RequiresManualValidation,
		Status:                   domain.SlotOpen,
	}

	if err := uc.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	uc.logger.Info("Slot created",
		zap.String("id", slot.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.Int("capacity", slot.Capacity))

	return slot, nil
}

// Update edits a slot. Ownership must already be established by the
// caller; a capacity change preserves the registered count.
func (uc *SlotUseCase) Update(ctx context.Context, slotID uuid.UUID, req dto.SlotRequest) (*domain.TimeSlot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseSlotWindow(req)
	if err != nil {
		return nil, err
	}

	registered := slot.Registered()

	slot.StartDatetime = start
	slot.EndDatetime = end
	slot.Capacity = req.Capacity
	slot.AvailableSpots = req.Capacity - registered
	if slot.AvailableSpots < 0 {
		slot.AvailableSpots = 0
	}
	switch {
	case slot.Status == domain.SlotFull && slot.AvailableSpots > 0:
		slot.Status = domain.SlotOpen
	case slot.Status == domain.SlotOpen && slot.AvailableSpots == 0:
		slot.Status = domain.SlotFull
	}
	slot.VisitType = req.VisitType
	slot.Description = req.Description
	slot.SpecificInstructions = req.SpecificInstructions
	slot.RequiresManualValidation = req.RequiresManualValidation

	if err := uc.slotRepo.Update(ctx, slot); err != nil {
		return nil, err
	}

	return slot, nil
}

// Cancel marks a slot cancelled without deleting history.
func (uc *SlotUseCase) Cancel(ctx context.Context, slotID uuid.UUID) (*domain.TimeSlot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	slot.Status = domain.SlotCancelled
	if err := uc.slotRepo.Update(ctx, slot); err != nil {
		return nil, err
	}

	return slot, nil
}

// Delete removes a slot; refused while pending or confirmed bookings still
// reference it.
func (uc *SlotUseCase) Delete(ctx context.Context, slotID uuid.UUID) error {
	return uc.slotRepo.Delete(ctx, slotID)
}

// GetByID fetches one slot.
func (uc *SlotUseCase) GetByID(ctx context.Context, slotID uuid.UUID) (*domain.TimeSlot, error) {
	return uc.slotRepo.GetByID(ctx, slotID)
}

// ListByCompany fetches the company's slots ordered by start time.
func (uc *SlotUseCase) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.TimeSlot, error) {
	return uc.slotRepo.ListByCompany(ctx, companyID)
}

// OwnedBy reports whether the slot belongs to the company.
func (uc *SlotUseCase) OwnedBy(ctx context.Context, slotID, companyID uuid.UUID) (bool, error) {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return false, err
	}
	return slot.CompanyID == companyID, nil
}

func parseSlotWindow(req dto.SlotRequest) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"start_datetime": "must be RFC 3339",
		})
	}
	end, err := time.Parse(time.RFC3339, req.EndDatetime)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"end_datetime": "must be RFC 3339",
		})
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"end_datetime": "must be after start_datetime",
		})
	}
	return start, end, nil
}

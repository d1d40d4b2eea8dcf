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

// BookingUseCase drives the booking state machine. Every transition that
// moves a booking into or out of confirmed goes through the repository's
// atomic seat adjustment; this layer enforces the state machine, the
// 48-hour visitor window and ownership, and publishes lifecycle events.
type BookingUseCase struct {
	bookingRepo repository.BookingRepository
	slotRepo    repository.SlotRepository
	companyRepo repository.CompanyRepository
	streamRepo  repository.StreamRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger

	// now is swappable for tests of the cancellation window.
	now func() time.Time
}

func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	slotRepo repository.SlotRepository,
	companyRepo repository.CompanyRepository,
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		companyRepo: companyRepo,
		streamRepo:  streamRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Create registers the caller on a slot. Slots without manual validation
// confirm immediately and consume seats; the rest start pending without
// holding any seat.
func (uc *BookingUseCase) Create(ctx context.Context, userID uuid.UUID, req dto.CreateBookingRequest) (*domain.Booking, error) {
	slotID, err := uuid.Parse(req.TimeSlotID)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"time_slot_id": "must be a UUID",
		})
	}

	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Status == domain.SlotCancelled || slot.Status == domain.SlotCompleted {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"time_slot_id": "slot is not open for booking",
		})
	}
	if slot.IsPast(uc.now()) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"time_slot_id": "slot has already started",
		})
	}

	booking := &domain.Booking{
		ID:                    uuid.New(),
		TimeSlotID:            slotID,
		UserID:                userID,
		BookingType:           domain.BookingType(req.BookingType),
		NumberOfParticipants:  req.NumberOfParticipants,
		TeacherName:           req.TeacherName,
		SpecialNeeds:          req.SpecialNeeds,
		ParentalAuthorization: req.ParentalAuthorization,
		Status:                domain.BookingPending,
	}
	if booking.BookingType == domain.BookingIndividual {
		booking.NumberOfParticipants = 1
	}

	if !slot.RequiresManualValidation {
		booking.Status = domain.BookingConfirmed
	}

	// Even a pending booking is refused when the group could never fit.
	if booking.ParticipantContribution() > slot.AvailableSpots {
		return nil, errors.ErrCapacityExceeded
	}

	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, booking, slot)
	uc.invalidateStats(ctx)

	uc.logger.Info("Booking created",
		zap.String("id", booking.ID.String()),
		zap.String("slot_id", slotID.String()),
		zap.String("status", string(booking.Status)))

	return booking, nil
}

// Confirm accepts a pending booking and consumes its seats.
func (uc *BookingUseCase) Confirm(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return uc.transition(ctx, bookingID, domain.BookingConfirmed, nil)
}

// Reject refuses a pending booking. No seats were held, none move.
func (uc *BookingUseCase) Reject(ctx context.Context, bookingID uuid.UUID, req dto.RejectBookingRequest) (*domain.Booking, error) {
	return uc.transition(ctx, bookingID, domain.BookingRejected, req.Reason)
}

// Cancel cancels a booking on behalf of the company or an admin. Not
// time-gated; confirmed seats are released.
func (uc *BookingUseCase) Cancel(ctx context.Context, bookingID uuid.UUID, req dto.CancelBookingRequest) (*domain.Booking, error) {
	return uc.transition(ctx, bookingID, domain.BookingCancelled, req.Reason)
}

// CancelByVisitor cancels the visitor's own booking. Confirmed bookings
// are only cancellable while the slot start is at least 48 hours away.
func (uc *BookingUseCase) CancelByVisitor(ctx context.Context, userID, bookingID uuid.UUID, req dto.CancelBookingRequest) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errors.ErrForbidden
	}

	slot, err := uc.slotRepo.GetByID(ctx, booking.TimeSlotID)
	if err != nil {
		return nil, err
	}

	if !booking.CancellableByVisitor(slot.StartDatetime, uc.now()) {
		if booking.Status == domain.BookingConfirmed {
			return nil, errors.ErrCancellationWindow
		}
		return nil, errors.ErrInvalidTransition
	}

	return uc.transition(ctx, bookingID, domain.BookingCancelled, req.Reason)
}

// ListForUser builds the visitor's booking list with slot and company
// context plus the cancellability flag.
func (uc *BookingUseCase) ListForUser(ctx context.Context, userID uuid.UUID) ([]dto.BookingDetail, error) {
	bookings, err := uc.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	details := make([]dto.BookingDetail, 0, len(bookings))
	for _, booking := range bookings {
		detail := dto.BookingDetail{Booking: booking}

		slot, err := uc.slotRepo.GetByID(ctx, booking.TimeSlotID)
		if err == nil {
			detail.Slot = slot
			detail.Cancellable = booking.CancellableByVisitor(slot.StartDatetime, now)
			if company, err := uc.companyRepo.GetByID(ctx, slot.CompanyID); err == nil {
				detail.CompanyID = company.ID.String()
				detail.CompanyName = company.Name
			}
		}

		details = append(details, detail)
	}

	return details, nil
}

// ListBySlot returns a slot's bookings for the owning company.
func (uc *BookingUseCase) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error) {
	return uc.bookingRepo.ListBySlot(ctx, slotID)
}

// GetByID fetches one booking.
func (uc *BookingUseCase) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return uc.bookingRepo.GetByID(ctx, bookingID)
}

func (uc *BookingUseCase) transition(ctx context.Context, bookingID uuid.UUID, to domain.BookingStatus, reason *string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, to) {
		return nil, errors.ErrInvalidTransition
	}

	// Seats move only when confirmed participation changes.
	seatDelta := 0
	if to == domain.BookingConfirmed && !booking.ConsumesCapacity() {
		seatDelta = booking.ParticipantContribution()
	}
	if booking.ConsumesCapacity() && to != domain.BookingConfirmed {
		seatDelta = -booking.ParticipantContribution()
	}

	if err := uc.bookingRepo.Transition(ctx, bookingID, booking.Status, to, reason, seatDelta); err != nil {
		return nil, err
	}

	booking.Status = to
	booking.CancellationReason = reason

	if slot, err := uc.slotRepo.GetByID(ctx, booking.TimeSlotID); err == nil {
		uc.publishEvent(ctx, booking, slot)
	}
	uc.invalidateStats(ctx)

	uc.logger.Info("Booking transitioned",
		zap.String("id", bookingID.String()),
		zap.String("status", string(to)),
		zap.Int("seat_delta", seatDelta))

	return booking, nil
}

func (uc *BookingUseCase) publishEvent(ctx context.Context, booking *domain.Booking, slot *domain.TimeSlot) {
	event := &domain.BookingEvent{
		BookingID:    booking.ID,
		TimeSlotID:   booking.TimeSlotID,
		UserID:       booking.UserID,
		CompanyID:    slot.CompanyID,
		Status:       booking.Status,
		Participants: booking.ParticipantContribution(),
		StartISO:     slot.StartDatetime.Format(time.RFC3339),
	}
	if company, err := uc.companyRepo.GetByID(ctx, slot.CompanyID); err == nil {
		event.CompanyName = company.Name
	}

	if err := uc.streamRepo.PublishBookingEvent(ctx, event); err != nil {
		// Notifications are best effort; the booking change stands.
		uc.logger.Warn("Failed to publish booking event",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err))
	}
}

func (uc *BookingUseCase) invalidateStats(ctx context.Context) {
	if err := uc.cacheRepo.InvalidatePlatformStats(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate platform stats cache", zap.Error(err))
	}
}

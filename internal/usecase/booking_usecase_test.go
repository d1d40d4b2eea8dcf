package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
)

type bookingFixture struct {
	uc          *usecase.BookingUseCase
	bookingRepo *MockBookingRepository
	slotRepo    *MockSlotRepository
	companyRepo *MockCompanyRepository
	streamRepo  *MockStreamRepository
	cacheRepo   *MockCacheRepository
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookingRepo: new(MockBookingRepository),
		slotRepo:    new(MockSlotRepository),
		companyRepo: new(MockCompanyRepository),
		streamRepo:  new(MockStreamRepository),
		cacheRepo:   new(MockCacheRepository),
	}
	f.uc = usecase.NewBookingUseCase(
		f.bookingRepo,
		f.slotRepo,
		f.companyRepo,
		f.streamRepo,
		f.cacheRepo,
		zap.NewNop(),
	)
	return f
}

// expectSideEffects wires the best-effort calls every successful mutation
// makes: event publication and stats cache invalidation.
func (f *bookingFixture) expectSideEffects(company *domain.Company) {
	f.companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)
	f.streamRepo.On("PublishBookingEvent", mock.Anything, mock.AnythingOfType("*domain.BookingEvent")).Return(nil)
	f.cacheRepo.On("InvalidatePlatformStats", mock.Anything).Return(nil)
}

func openSlot(companyID uuid.UUID, available, capacity int, manualValidation bool, start time.Time) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:                       uuid.New(),
		CompanyID:                companyID,
		StartDatetime:            start,
		EndDatetime:              start.Add(2 * time.Hour),
		Capacity:                 capacity,
		AvailableSpots:           available,
		VisitType:                "guided_tour",
		RequiresManualValidation: manualValidation,
		Status:                   domain.SlotOpen,
	}
}

func TestBookingCreate_AutoConfirmsWithoutManualValidation(t *testing.T) {
	f := newBookingFixture()
	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	slot := openSlot(company.ID, 5, 10, false, time.Now().Add(72*time.Hour))
	userID := uuid.New()

	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)
	f.bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.expectSideEffects(company)

	booking, err := f.uc.Create(context.Background(), userID, dto.CreateBookingRequest{
		TimeSlotID:  slot.ID.String(),
		BookingType: "individual",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Equal(t, 1, booking.NumberOfParticipants)
	f.bookingRepo.AssertExpectations(t)
	f.streamRepo.AssertExpectations(t)
}

func TestBookingCreate_StaysPendingWithManualValidation(t *testing.T) {
	f := newBookingFixture()
	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	slot := openSlot(company.ID, 10, 10, true, time.Now().Add(72*time.Hour))
	teacher := "M. Lefevre"

	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)
	f.bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.expectSideEffects(company)

	booking, err := f.uc.Create(context.Background(), uuid.New(), dto.CreateBookingRequest{
		TimeSlotID:           slot.ID.String(),
		BookingType:          "group",
		NumberOfParticipants: 8,
		TeacherName:          &teacher,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, 8, booking.NumberOfParticipants)
}

func TestBookingCreate_GroupLargerThanRemainingRefused(t *testing.T) {
	f := newBookingFixture()
	slot := openSlot(uuid.New(), 3, 10, true, time.Now().Add(72*time.Hour))
	teacher := "Mme Garnier"

	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)

	_, err := f.uc.Create(context.Background(), uuid.New(), dto.CreateBookingRequest{
		TimeSlotID:           slot.ID.String(),
		BookingType:          "group",
		NumberOfParticipants: 5,
		TeacherName:          &teacher,
	})

	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingCreate_PastSlotRefused(t *testing.T) {
	f := newBookingFixture()
	slot := openSlot(uuid.New(), 5, 10, false, time.Now().Add(-time.Hour))

	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)

	_, err := f.uc.Create(context.Background(), uuid.New(), dto.CreateBookingRequest{
		TimeSlotID:  slot.ID.String(),
		BookingType: "individual",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingCreate_CancelledSlotRefused(t *testing.T) {
	f := newBookingFixture()
	slot := openSlot(uuid.New(), 5, 10, false, time.Now().Add(72*time.Hour))
	slot.Status = domain.SlotCancelled

	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)

	_, err := f.uc.Create(context.Background(), uuid.New(), dto.CreateBookingRequest{
		TimeSlotID:  slot.ID.String(),
		BookingType: "individual",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestBookingConfirm_ConsumesGroupSeats(t *testing.T) {
	f := newBookingFixture()
	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	slot := openSlot(company.ID, 10, 10, true, time.Now().Add(72*time.Hour))
	booking := &domain.Booking{
		ID:                   uuid.New(),
		TimeSlotID:           slot.ID,
		UserID:               uuid.New(),
		BookingType:          domain.BookingGroup,
		NumberOfParticipants: 4,
		Status:               domain.BookingPending,
	}

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookingRepo.On("Transition", mock.Anything, booking.ID, domain.BookingPending, domain.BookingConfirmed, (*string)(nil), 4).Return(nil)
	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)
	f.expectSideEffects(company)

	updated, err := f.uc.Confirm(context.Background(), booking.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
	f.bookingRepo.AssertExpectations(t)
}

func TestBookingConfirm_AlreadyConfirmedRefused(t *testing.T) {
	f := newBookingFixture()
	booking := &domain.Booking{
		ID:          uuid.New(),
		BookingType: domain.BookingIndividual,
		Status:      domain.BookingConfirmed,
	}

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.uc.Confirm(context.Background(), booking.ID)

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	f.bookingRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingReject_PendingMovesNoSeats(t *testing.T) {
	f := newBookingFixture()
	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	slot := openSlot(company.ID, 10, 10, true, time.Now().Add(72*time.Hour))
	booking := &domain.Booking{
		ID:                   uuid.New(),
		TimeSlotID:           slot.ID,
		BookingType:          domain.BookingGroup,
		NumberOfParticipants: 6,
		Status:               domain.BookingPending,
	}
	reason := "Groupe trop nombreux pour l'atelier"

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookingRepo.On("Transition", mock.Anything, booking.ID, domain.BookingPending, domain.BookingRejected, &reason, 0).Return(nil)
	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)
	f.expectSideEffects(company)

	updated, err := f.uc.Reject(context.Background(), booking.ID, dto.RejectBookingRequest{Reason: &reason})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, updated.Status)
	f.bookingRepo.AssertExpectations(t)
}

func TestBookingCancel_ConfirmedReleasesSeats(t *testing.T) {
	f := newBookingFixture()
	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	slot := openSlot(company.ID, 2, 10, true, time.Now().Add(72*time.Hour))
	booking := &domain.Booking{
		ID:                   uuid.New(),
		TimeSlotID:           slot.ID,
		BookingType:          domain.BookingGroup,
		NumberOfParticipants: 3,
		Status:               domain.BookingConfirmed,
	}

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookingRepo.On("Transition", mock.Anything, booking.ID, domain.BookingConfirmed, domain.BookingCancelled, (*string)(nil), -3).Return(nil)
	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)
	f.expectSideEffects(company)

	updated, err := f.uc.Cancel(context.Background(), booking.ID, dto.CancelBookingRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
	f.bookingRepo.AssertExpectations(t)
}

func TestBookingCancelByVisitor_NotOwner(t *testing.T) {
	f := newBookingFixture()
	booking := &domain.Booking{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: domain.BookingConfirmed,
	}

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.uc.CancelByVisitor(context.Background(), uuid.New(), booking.ID, dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestBookingCancelByVisitor_InsideWindowRefused(t *testing.T) {
	f := newBookingFixture()
	now := time.Date(2026, 3, 23, 9, 0, 0, 0, time.UTC)
	f.uc.SetNow(func() time.Time { return now })

	userID := uuid.New()
	slot := openSlot(uuid.New(), 5, 10, true, now.Add(24*time.Hour))
	booking := &domain.Booking{
		ID:          uuid.New(),
		TimeSlotID:  slot.ID,
		UserID:      userID,
		BookingType: domain.BookingIndividual,
		Status:      domain.BookingConfirmed,
	}

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)

	_, err := f.uc.CancelByVisitor(context.Background(), userID, booking.ID, dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, apperrors.ErrCancellationWindow)
	f.bookingRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingCancelByVisitor_OutsideWindowAllowed(t *testing.T) {
	f := newBookingFixture()
	now := time.Date(2026, 3, 23, 9, 0, 0, 0, time.UTC)
	f.uc.SetNow(func() time.Time { return now })

	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	userID := uuid.New()
	slot := openSlot(company.ID, 5, 10, true, now.Add(72*time.Hour))
	booking := &domain.Booking{
		ID:          uuid.New(),
		TimeSlotID:  slot.ID,
		UserID:      userID,
		BookingType: domain.BookingIndividual,
		Status:      domain.BookingConfirmed,
	}

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookingRepo.On("Transition", mock.Anything, booking.ID, domain.BookingConfirmed, domain.BookingCancelled, (*string)(nil), -1).Return(nil)
	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)
	f.expectSideEffects(company)

	updated, err := f.uc.CancelByVisitor(context.Background(), userID, booking.ID, dto.CancelBookingRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
	f.bookingRepo.AssertExpectations(t)
}

func TestBookingCancelByVisitor_PendingAnytime(t *testing.T) {
	f := newBookingFixture()
	now := time.Date(2026, 3, 23, 9, 0, 0, 0, time.UTC)
	f.uc.SetNow(func() time.Time { return now })

	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	userID := uuid.New()
	slot := openSlot(company.ID, 5, 10, true, now.Add(time.Hour))
	booking := &domain.Booking{
		ID:          uuid.New(),
		TimeSlotID:  slot.ID,
		UserID:      userID,
		BookingType: domain.BookingIndividual,
		Status:      domain.BookingPending,
	}

	f.bookingRepo.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookingRepo.On("Transition", mock.Anything, booking.ID, domain.BookingPending, domain.BookingCancelled, (*string)(nil), 0).Return(nil)
	f.slotRepo.On("GetByID", mock.Anything, slot.ID).Return(slot, nil)
	f.expectSideEffects(company)

	_, err := f.uc.CancelByVisitor(context.Background(), userID, booking.ID, dto.CancelBookingRequest{})

	require.NoError(t, err)
	f.bookingRepo.AssertExpectations(t)
}

func TestBookingListForUser_FlagsCancellability(t *testing.T) {
	f := newBookingFixture()
	now := time.Date(2026, 3, 23, 9, 0, 0, 0, time.UTC)
	f.uc.SetNow(func() time.Time { return now })

	company := &domain.Company{ID: uuid.New(), Name: "Forge Atlantique"}
	userID := uuid.New()
	farSlot := openSlot(company.ID, 5, 10, true, now.Add(96*time.Hour))
	nearSlot := openSlot(company.ID, 5, 10, true, now.Add(12*time.Hour))

	bookings := []*domain.Booking{
		{ID: uuid.New(), TimeSlotID: farSlot.ID, UserID: userID, BookingType: domain.BookingIndividual, Status: domain.BookingConfirmed},
		{ID: uuid.New(), TimeSlotID: nearSlot.ID, UserID: userID, BookingType: domain.BookingIndividual, Status: domain.BookingConfirmed},
	}

	f.bookingRepo.On("ListByUser", mock.Anything, userID).Return(bookings, nil)
	f.slotRepo.On("GetByID", mock.Anything, farSlot.ID).Return(farSlot, nil)
	f.slotRepo.On("GetByID", mock.Anything, nearSlot.ID).Return(nearSlot, nil)
	f.companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)

	details, err := f.uc.ListForUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.True(t, details[0].Cancellable)
	assert.False(t, details[1].Cancellable)
	assert.Equal(t, "Forge Atlantique", details[0].CompanyName)
}

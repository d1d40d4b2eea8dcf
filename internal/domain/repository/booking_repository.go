package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// BookingRepository is the storage contract for bookings. It owns the
// capacity side effects: any write that moves a booking into or out of
// confirmed must adjust the slot's available_spots in the same
// transaction, guarded so the counter never goes negative.
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error)
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error)
	ListBySlots(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID][]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)

	// Create inserts the booking. When the booking arrives already
	// confirmed (slot without manual validation), the insert and the seat
	// decrement run in one transaction; errors.ErrCapacityExceeded is
	// returned when the slot cannot hold the participants.
	Create(ctx context.Context, booking *domain.Booking) error

	// Transition updates the booking status and applies seatDelta to the
	// slot counter atomically. seatDelta > 0 consumes seats, < 0 releases
	// them; the guarded update fails with errors.ErrCapacityExceeded
	// rather than driving available_spots negative. The booking must still
	// be in the from status once its row is locked, so two concurrent
	// transitions of one booking cannot both apply their seat delta; a
	// stale from fails with errors.ErrInvalidTransition.
	Transition(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus, reason *string, seatDelta int) error
}

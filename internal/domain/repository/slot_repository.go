package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// SlotRepository is the storage contract for time slots. The persisted
// available_spots counter is owned by BookingRepository transitions; this
// repository only touches it on create and on capacity edits.
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.TimeSlot, error)
	ListByCompanies(ctx context.Context, companyIDs []uuid.UUID) (map[uuid.UUID][]*domain.TimeSlot, error)
	ListAll(ctx context.Context) ([]*domain.TimeSlot, error)

	Create(ctx context.Context, slot *domain.TimeSlot) error

	// Update edits slot fields. A capacity change keeps the registered
	// count and recomputes available_spots from it, clamped at zero.
	Update(ctx context.Context, slot *domain.TimeSlot) error

	// Delete refuses while pending or confirmed bookings reference the
	// slot, so bookings are never silently orphaned.
	Delete(ctx context.Context, id uuid.UUID) error

	HasActiveBookings(ctx context.Context, slotID uuid.UUID) (bool, error)
}

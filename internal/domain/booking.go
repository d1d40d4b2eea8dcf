package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingIndividual BookingType = "individual"
	BookingGroup      BookingType = "group"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// CancellationWindow is the minimum delay before a slot's start time for a
// visitor to cancel a confirmed booking.
const CancellationWindow = 48 * time.Hour

// Booking is one registration against exactly one slot by one user.
type Booking struct {
	ID                    uuid.UUID     `json:"id" db:"id"`
	TimeSlotID            uuid.UUID     `json:"time_slot_id" db:"time_slot_id"`
	UserID                uuid.UUID     `json:"user_id" db:"user_id"`
	BookingType           BookingType   `json:"booking_type" db:"booking_type"`
	NumberOfParticipants  int           `json:"number_of_participants" db:"number_of_participants"`
	TeacherName           *string       `json:"teacher_name,omitempty" db:"teacher_name"`
	SpecialNeeds          *string       `json:"special_needs,omitempty" db:"special_needs"`
	Status                BookingStatus `json:"status" db:"status"`
	ParentalAuthorization bool          `json:"parental_authorization" db:"parental_authorization"`
	CancellationReason    *string       `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	CreatedAt             time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at" db:"updated_at"`
}

// ParticipantContribution is the number of seats this booking consumes:
// 1 for individual, the declared participant count for group bookings.
func (b *Booking) ParticipantContribution() int {
	if b.BookingType == BookingGroup {
		return b.NumberOfParticipants
	}
	return 1
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

// CanTransition reports whether the status change is part of the booking
// state machine. Rejected and cancelled are terminal.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CancellableByVisitor applies the 48-hour rule: the owning visitor may
// cancel a confirmed booking only while the window is open. Pending
// bookings can be withdrawn at any time; company/admin cancellation is not
// time-gated and does not use this check.
func (b *Booking) CancellableByVisitor(slotStart, now time.Time) bool {
	switch b.Status {
	case BookingPending:
		return true
	case BookingConfirmed:
		return slotStart.Sub(now) >= CancellationWindow
	default:
		return false
	}
}

// ConsumesCapacity reports whether a booking in this status holds seats.
// Only confirmed bookings do; pending ones wait without reserving.
func (b *Booking) ConsumesCapacity() bool {
	return b.Status == BookingConfirmed
}

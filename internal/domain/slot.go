package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotOpen      SlotStatus = "open"
	SlotFull      SlotStatus = "full"
	SlotCancelled SlotStatus = "cancelled"
	SlotCompleted SlotStatus = "completed"
)

// TimeSlot is one bookable time window for a company.
//
// AvailableSpots is the persisted seat counter and the live source of truth:
// 0 <= AvailableSpots <= Capacity must hold at all times. The derivation
// from confirmed bookings (AvailableFromBookings) exists as a cross-check
// and as the initial value when a slot is created.
type TimeSlot struct {
	ID                       uuid.UUID  `json:"id" db:"id"`
	CompanyID                uuid.UUID  `json:"company_id" db:"company_id"`
	StartDatetime            time.Time  `json:"start_datetime" db:"start_datetime"`
	EndDatetime              time.Time  `json:"end_datetime" db:"end_datetime"`
	Capacity                 int        `json:"capacity" db:"capacity"`
	AvailableSpots           int        `json:"available_spots" db:"available_spots"`
	VisitType                string     `json:"visit_type" db:"visit_type"`
	Description              *string    `json:"description,omitempty" db:"description"`
	SpecificInstructions     *string    `json:"specific_instructions,omitempty" db:"specific_instructions"`
	RequiresManualValidation bool       `json:"requires_manual_validation" db:"requires_manual_validation"`
	Status                   SlotStatus `json:"status" db:"status"`
	CreatedAt                time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at" db:"updated_at"`
}

// Registered is the number of seats consumed, read off the counter. It is
// deliberately not clamped: a negative or over-capacity value signals a
// broken invariant upstream and must stay visible.
func (s *TimeSlot) Registered() int {
	return s.Capacity - s.AvailableSpots
}

// IsFull reports whether no seats remain.
func (s *TimeSlot) IsFull() bool {
	return s.AvailableSpots == 0
}

// IsUpcoming and IsPast split slots on the start time. Temporal and
// fullness predicates are independent: a slot can be both past and full.
func (s *TimeSlot) IsUpcoming(now time.Time) bool {
	return !s.StartDatetime.Before(now)
}

func (s *TimeSlot) IsPast(now time.Time) bool {
	return s.StartDatetime.Before(now)
}

// NextUpcomingSlot returns the earliest slot starting at or after now,
// or nil when none remains.
func NextUpcomingSlot(slots []*TimeSlot, now time.Time) *TimeSlot {
	ordered := make([]*TimeSlot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDatetime.Before(ordered[j].StartDatetime)
	})

	for _, slot := range ordered {
		if slot.IsUpcoming(now) {
			return slot
		}
	}
	return nil
}

// HasAvailableSpot reports whether any slot of the set still has seats.
func HasAvailableSpot(slots []*TimeSlot) bool {
	for _, slot := range slots {
		if slot.AvailableSpots > 0 {
			return true
		}
	}
	return false
}

package domain

import (
	"github.com/google/uuid"
)

// StreamBookingEvents is the Redis stream carrying booking lifecycle
// events for the notification worker.
const StreamBookingEvents = "bookings:events"

// StreamMessage is one raw entry read from a stream.
type StreamMessage struct {
	ID   string
	Data string
}

// BookingEvent is published on every booking status transition.
type BookingEvent struct {
	BookingID    uuid.UUID     `json:"booking_id"`
	TimeSlotID   uuid.UUID     `json:"time_slot_id"`
	UserID       uuid.UUID     `json:"user_id"`
	CompanyID    uuid.UUID     `json:"company_id"`
	CompanyName  string        `json:"company_name"`
	Status       BookingStatus `json:"status"`
	Participants int           `json:"participants"`
	StartISO     string        `json:"start_iso"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app notice shown on a user's dashboard.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Link      *string   `json:"link,omitempty" db:"link"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Message is a direct message between two accounts, optionally attached to
// a booking.
type Message struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	SenderID    uuid.UUID  `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id" db:"recipient_id"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty" db:"booking_id"`
	Subject     *string    `json:"subject,omitempty" db:"subject"`
	Content     string     `json:"content" db:"content"`
	Read        bool       `json:"read" db:"read"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

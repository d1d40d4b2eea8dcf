package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"go.uber.org/zap"
)

const bookingColumns = `
	id, time_slot_id, user_id, booking_type, number_of_participants,
	teacher_name, special_needs, status, parental_authorization,
	cancellation_reason, created_at, updated_at
`

// adjustSlotQuery applies a seat delta to a slot. The WHERE guard refuses
// any decrement that would drive the counter negative, LEAST keeps a
// release from exceeding capacity after a shrink, and the CASE keeps the
// open/full marker in sync without touching cancelled or completed slots.
const adjustSlotQuery = `
	UPDATE time_slots SET
		available_spots = LEAST(available_spots - $2, capacity),
		status = CASE
			WHEN status NOT IN ('open', 'full') THEN status
			WHEN available_spots - $2 <= 0 THEN 'full'
			ELSE 'open'
		END,
		updated_at = NOW()
	WHERE id = $1 AND available_spots >= $2
`

type bookingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewBookingRepository(db *DB) repository.BookingRepository {
	return &bookingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func scanBooking(row interface{ Scan(...interface{}) error }) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.TimeSlotID, &b.UserID, &b.BookingType, &b.NumberOfParticipants,
		&b.TeacherName, &b.SpecialNeeds, &b.Status, &b.ParentalAuthorization,
		&b.CancellationReason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrBookingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get booking by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *bookingRepository) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE time_slot_id = $1 ORDER BY created_at`
	return r.list(ctx, query, slotID)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list bookings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.logger.Error("Failed to scan booking", zap.Error(err))
			continue
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) ListBySlots(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID][]*domain.Booking, error) {
	result := make(map[uuid.UUID][]*domain.Booking, len(slotIDs))
	if len(slotIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(slotIDs))
	for i, id := range slotIDs {
		ids[i] = id.String()
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE time_slot_id = ANY($1) ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to list bookings by slots", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			continue
		}
		result[booking.TimeSlotID] = append(result[booking.TimeSlotID], booking)
	}

	return result, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	// A booking inserted directly as confirmed (slot without manual
	// validation) consumes its seats in the same transaction, so capacity
	// can never be oversold between insert and decrement.
	if booking.ConsumesCapacity() {
		result, err := tx.ExecContext(ctx, adjustSlotQuery, booking.TimeSlotID, booking.ParticipantContribution())
		if err != nil {
			r.logger.Error("Failed to consume slot capacity", zap.String("slot_id", booking.TimeSlotID.String()), zap.Error(err))
			return errors.ErrDatabaseError
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return errors.ErrCapacityExceeded
		}
	}

	query := `
		INSERT INTO bookings (
			id, time_slot_id, user_id, booking_type, number_of_participants,
			teacher_name, special_needs, status, parental_authorization
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		booking.ID, booking.TimeSlotID, booking.UserID, booking.BookingType,
		booking.NumberOfParticipants, booking.TeacherName, booking.SpecialNeeds,
		booking.Status, booking.ParentalAuthorization,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create booking", zap.String("slot_id", booking.TimeSlotID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit booking create", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *bookingRepository) Transition(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus, reason *string, seatDelta int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	var (
		slotID uuid.UUID
		status domain.BookingStatus
	)
	err = tx.QueryRowContext(ctx, `SELECT time_slot_id, status FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&slotID, &status)
	if err == sql.ErrNoRows {
		return errors.ErrBookingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to lock booking", zap.String("id", bookingID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	// Re-checked under the row lock: a concurrent transition that won the
	// lock first has already moved the booking, and replaying the seat
	// delta would corrupt the counter.
	if status != from {
		return errors.ErrInvalidTransition
	}

	if seatDelta != 0 {
		result, err := tx.ExecContext(ctx, adjustSlotQuery, slotID, seatDelta)
		if err != nil {
			r.logger.Error("Failed to adjust slot capacity",
				zap.String("slot_id", slotID.String()),
				zap.Int("delta", seatDelta),
				zap.Error(err),
			)
			return errors.ErrDatabaseError
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return errors.ErrCapacityExceeded
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE bookings SET status = $2, cancellation_reason = $3, updated_at = NOW()
		WHERE id = $1
	`, bookingID, to, reason)
	if err != nil {
		r.logger.Error("Failed to update booking status",
			zap.String("id", bookingID.String()),
			zap.String("status", string(to)),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit booking transition", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

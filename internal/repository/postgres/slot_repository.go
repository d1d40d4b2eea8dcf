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

const slotColumns = `
	id, company_id, start_datetime, end_datetime, capacity, available_spots,
	visit_type, description, specific_instructions, requires_manual_validation,
	status, created_at, updated_at
`

type slotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSlotRepository(db *DB) repository.SlotRepository {
	return &slotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func scanSlot(row interface{ Scan(...interface{}) error }) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.StartDatetime, &s.EndDatetime,
		&s.Capacity, &s.AvailableSpots, &s.VisitType, &s.Description,
		&s.SpecificInstructions, &s.RequiresManualValidation,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *slotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrSlotNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get slot by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return slot, nil
}

func (r *slotRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE company_id = $1 ORDER BY start_datetime`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		r.logger.Error("Failed to list slots by company", zap.String("company_id", companyID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var slots []*domain.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.logger.Error("Failed to scan slot", zap.Error(err))
			continue
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) ListByCompanies(ctx context.Context, companyIDs []uuid.UUID) (map[uuid.UUID][]*domain.TimeSlot, error) {
	result := make(map[uuid.UUID][]*domain.TimeSlot, len(companyIDs))
	if len(companyIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(companyIDs))
	for i, id := range companyIDs {
		ids[i] = id.String()
	}

	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE company_id = ANY($1) ORDER BY start_datetime`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to list slots by companies", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			continue
		}
		result[slot.CompanyID] = append(result[slot.CompanyID], slot)
	}

	return result, nil
}

func (r *slotRepository) ListAll(ctx context.Context) ([]*domain.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots ORDER BY start_datetime`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list all slots", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var slots []*domain.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) Create(ctx context.Context, slot *domain.TimeSlot) error {
	// A fresh slot has no bookings, so the counter starts at capacity.
	query := `
		INSERT INTO time_slots (
			id, company_id, start_datetime, end_datetime, capacity,
			available_spots, visit_type, description, specific_instructions,
			requires_manual_validation, status
		) VALUES ($1, $2, $3, $4, $5, $5, $6, $7, $8, $9, $10)
		RETURNING available_spots, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		slot.ID, slot.CompanyID, slot.StartDatetime, slot.EndDatetime,
		slot.Capacity, slot.VisitType, slot.Description,
		slot.SpecificInstructions, slot.RequiresManualValidation, slot.Status,
	).Scan(&slot.AvailableSpots, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create slot", zap.String("company_id", slot.CompanyID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *slotRepository) Update(ctx context.Context, slot *domain.TimeSlot) error {
	// A capacity edit keeps the registered count (old capacity minus old
	// available) and recomputes the counter from the new capacity, clamped
	// at zero so an over-booked shrink stays visible instead of going
	// negative.
	query := `
		UPDATE time_slots SET
			start_datetime = $2,
			end_datetime = $3,
			available_spots = GREATEST($4 - (capacity - available_spots), 0),
			capacity = $4,
			visit_type = $5,
			description = $6,
			specific_instructions = $7,
			requires_manual_validation = $8,
			status = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING available_spots, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		slot.ID, slot.StartDatetime, slot.EndDatetime, slot.Capacity,
		slot.VisitType, slot.Description, slot.SpecificInstructions,
		slot.RequiresManualValidation, slot.Status,
	).Scan(&slot.AvailableSpots, &slot.UpdatedAt)

	if err == sql.ErrNoRows {
		return errors.ErrSlotNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update slot", zap.String("id", slot.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	var active bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE time_slot_id = $1 AND status IN ('pending', 'confirmed')
		)
	`, id).Scan(&active)
	if err != nil {
		r.logger.Error("Failed to check slot bookings", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if active {
		return errors.ErrSlotHasBookings
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete slot", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrSlotNotFound
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit slot delete", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *slotRepository) HasActiveBookings(ctx context.Context, slotID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE time_slot_id = $1 AND status IN ('pending', 'confirmed')
		)
	`

	var active bool
	if err := r.db.QueryRowContext(ctx, query, slotID).Scan(&active); err != nil {
		r.logger.Error("Failed to check slot bookings", zap.String("slot_id", slotID.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return active, nil
}

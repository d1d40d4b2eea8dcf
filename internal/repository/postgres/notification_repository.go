package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"go.uber.org/zap"
)

type notificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNotificationRepository(db *DB) repository.NotificationRepository {
	return &notificationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, link, read)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		notification.ID, notification.UserID, notification.Type,
		notification.Title, notification.Message, notification.Link,
	).Scan(&notification.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create notification", zap.String("user_id", notification.UserID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, link, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			continue
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to mark notification read", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"notification": "not found",
		})
	}

	return nil
}

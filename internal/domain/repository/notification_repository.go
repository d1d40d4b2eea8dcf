package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

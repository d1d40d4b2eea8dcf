package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"go.uber.org/zap"
)

// NotificationUseCase turns booking lifecycle events into in-app
// notifications and transactional mail. Driven by the stream worker.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	mailRepo         repository.MailRepository
	logger           *zap.Logger
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	mailRepo repository.MailRepository,
	logger *zap.Logger,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailRepo:         mailRepo,
		logger:           logger,
	}
}

var bookingEventTitles = map[domain.BookingStatus]string{
	domain.BookingPending:   "Demande de réservation envoyée",
	domain.BookingConfirmed: "Réservation confirmée",
	domain.BookingRejected:  "Réservation refusée",
	domain.BookingCancelled: "Réservation annulée",
}

// HandleBookingEvent records an in-app notification for the visitor and
// mails them the status change. Mail failure does not fail the event; the
// in-app notice is the durable part.
func (uc *NotificationUseCase) HandleBookingEvent(ctx context.Context, event *domain.BookingEvent) error {
	title, ok := bookingEventTitles[event.Status]
	if !ok {
		uc.logger.Warn("Unknown booking event status",
			zap.String("status", string(event.Status)))
		return nil
	}

	message := fmt.Sprintf("%s - %s", event.CompanyName, event.StartISO)
	notification := &domain.Notification{
		ID:      uuid.New(),
		UserID:  event.UserID,
		Type:    "booking_" + string(event.Status),
		Title:   title,
		Message: message,
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, event.UserID)
	if err != nil {
		uc.logger.Warn("Booking event for unknown user",
			zap.String("user_id", event.UserID.String()),
			zap.Error(err))
		return nil
	}

	if err := uc.mailRepo.SendBookingNotice(ctx, user.Email, event.CompanyName, string(event.Status), event.StartISO); err != nil {
		uc.logger.Warn("Failed to send booking notice mail",
			zap.String("booking_id", event.BookingID.String()),
			zap.Error(err))
	}

	return nil
}

// ListForUser returns the visitor's notifications, newest first.
func (uc *NotificationUseCase) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	return uc.notificationRepo.ListByUser(ctx, userID)
}

// MarkRead flags one notification as seen.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id uuid.UUID) error {
	return uc.notificationRepo.MarkRead(ctx, id)
}

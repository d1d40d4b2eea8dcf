package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/worker"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
)

// BookingNotificationWorker consumes booking lifecycle events and turns
// them into in-app notifications and mail.
type BookingNotificationWorker struct {
	*worker.BaseWorker
	streamRepo     repository.StreamRepository
	notificationUC *usecase.NotificationUseCase
	consumerName   string
	maxRetries     int
}

func NewBookingNotificationWorker(
	streamRepo repository.StreamRepository,
	notificationUC *usecase.NotificationUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *BookingNotificationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &BookingNotificationWorker{
		BaseWorker:     worker.NewBaseWorker("booking-notification", consumerGroup, logger),
		streamRepo:     streamRepo,
		notificationUC: notificationUC,
		consumerName:   consumerName,
		maxRetries:     maxRetries,
	}
}

// Start runs the consume loop until Stop or context cancellation.
func (w *BookingNotificationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BookingNotificationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamBookingEvents, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch reads and handles up to maxBatchSize events. Returns the
// number of messages processed.
func (w *BookingNotificationWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamBookingEvents,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	processed := 0
	for _, message := range messages {
		event := &domain.BookingEvent{}
		if err := json.Unmarshal([]byte(message.Data), event); err != nil {
			// Malformed payload, retrying will not help. Ack and move on.
			logger.Error("Failed to unmarshal booking event",
				zap.String("message_id", message.ID),
				zap.Error(err))
			w.ack(ctx, message.ID)
			continue
		}

		if err := w.handleWithRetry(ctx, event); err != nil {
			logger.Error("Giving up on booking event",
				zap.String("message_id", message.ID),
				zap.String("booking_id", event.BookingID.String()),
				zap.Error(err))
			// Acked anyway: the booking state is already persisted, only
			// the notification is lost.
		}

		w.ack(ctx, message.ID)
		processed++
	}

	return processed, nil
}

func (w *BookingNotificationWorker) handleWithRetry(ctx context.Context, event *domain.BookingEvent) error {
	var err error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
		if err = w.notificationUC.HandleBookingEvent(ctx, event); err == nil {
			return nil
		}
		w.Logger().Warn("Booking event handling failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return err
}

func (w *BookingNotificationWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamBookingEvents, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

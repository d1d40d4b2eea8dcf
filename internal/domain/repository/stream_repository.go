package repository

import (
	"context"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// StreamRepository publishes and consumes booking lifecycle events over
// Redis streams with consumer groups (at-least-once, explicit ACK).
type StreamRepository interface {
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)
	AckMessage(ctx context.Context, stream, group, messageID string) error
	PublishBookingEvent(ctx context.Context, event *domain.BookingEvent) error
}

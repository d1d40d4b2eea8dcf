package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
)

func newNotificationFixture() (*usecase.NotificationUseCase, *MockNotificationRepository, *MockUserRepository, *MockMailRepository) {
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	mailRepo := new(MockMailRepository)
	uc := usecase.NewNotificationUseCase(notificationRepo, userRepo, mailRepo, zap.NewNop())
	return uc, notificationRepo, userRepo, mailRepo
}

func confirmedEvent(userID uuid.UUID) *domain.BookingEvent {
	return &domain.BookingEvent{
		BookingID:    uuid.New(),
		TimeSlotID:   uuid.New(),
		UserID:       userID,
		CompanyID:    uuid.New(),
		CompanyName:  "Aciéries du Rhône",
		Status:       domain.BookingConfirmed,
		Participants: 1,
		StartISO:     time.Date(2026, 11, 16, 9, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

func TestNotificationHandleBookingEvent_CreatesNoticeAndMails(t *testing.T) {
	uc, notificationRepo, userRepo, mailRepo := newNotificationFixture()
	user := &domain.User{ID: uuid.New(), Email: "jeanne.petit@lycee.example.org", Role: domain.RoleVisitor}
	event := confirmedEvent(user.ID)

	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == user.ID && n.Type == "booking_confirmed" && n.Title == "Réservation confirmée"
	})).Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	mailRepo.On("SendBookingNotice", mock.Anything, user.Email, event.CompanyName, "confirmed", event.StartISO).Return(nil)

	err := uc.HandleBookingEvent(context.Background(), event)

	require.NoError(t, err)
	notificationRepo.AssertExpectations(t)
	mailRepo.AssertExpectations(t)
}

func TestNotificationHandleBookingEvent_MailFailureTolerated(t *testing.T) {
	uc, notificationRepo, userRepo, mailRepo := newNotificationFixture()
	user := &domain.User{ID: uuid.New(), Email: "jeanne.petit@lycee.example.org", Role: domain.RoleVisitor}
	event := confirmedEvent(user.ID)

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	mailRepo.On("SendBookingNotice", mock.Anything, user.Email, event.CompanyName, "confirmed", event.StartISO).
		Return(assert.AnError)

	err := uc.HandleBookingEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestNotificationHandleBookingEvent_UnknownUserSkipsMail(t *testing.T) {
	uc, notificationRepo, userRepo, mailRepo := newNotificationFixture()
	event := confirmedEvent(uuid.New())

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	userRepo.On("GetByID", mock.Anything, event.UserID).Return(nil, apperrors.ErrUserNotFound)

	err := uc.HandleBookingEvent(context.Background(), event)

	require.NoError(t, err)
	mailRepo.AssertNotCalled(t, "SendBookingNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationHandleBookingEvent_UnknownStatusIgnored(t *testing.T) {
	uc, notificationRepo, _, _ := newNotificationFixture()
	event := confirmedEvent(uuid.New())
	event.Status = domain.BookingStatus("archived")

	err := uc.HandleBookingEvent(context.Background(), event)

	require.NoError(t, err)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotificationHandleBookingEvent_CreateFailurePropagates(t *testing.T) {
	uc, notificationRepo, _, _ := newNotificationFixture()
	event := confirmedEvent(uuid.New())

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Return(apperrors.ErrDatabaseError)

	err := uc.HandleBookingEvent(context.Background(), event)

	assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
}

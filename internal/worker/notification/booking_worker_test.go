package notification_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/worker/notification"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishBookingEvent(ctx context.Context, event *domain.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockNotificationRepository is a mock of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockMailRepository is a mock of MailRepository
type MockMailRepository struct {
	mock.Mock
}

func (m *MockMailRepository) SendInvite(ctx context.Context, email, fullName, link string) error {
	args := m.Called(ctx, email, fullName, link)
	return args.Error(0)
}

func (m *MockMailRepository) SendPasswordReset(ctx context.Context, email, link string) error {
	args := m.Called(ctx, email, link)
	return args.Error(0)
}

func (m *MockMailRepository) SendBookingNotice(ctx context.Context, email, companyName, status, startISO string) error {
	args := m.Called(ctx, email, companyName, status, startISO)
	return args.Error(0)
}

func newWorkerFixture() (*notification.BookingNotificationWorker, *MockStreamRepository, *MockNotificationRepository, *MockUserRepository, *MockMailRepository) {
	streamRepo := new(MockStreamRepository)
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	mailRepo := new(MockMailRepository)

	uc := usecase.NewNotificationUseCase(notificationRepo, userRepo, mailRepo, zap.NewNop())
	w := notification.NewBookingNotificationWorker(streamRepo, uc, "test-group", 1, zap.NewNop())
	return w, streamRepo, notificationRepo, userRepo, mailRepo
}

func TestBookingNotificationWorker_Name(t *testing.T) {
	w, _, _, _, _ := newWorkerFixture()
	assert.Equal(t, "booking-notification", w.Name())
}

func TestBookingNotificationWorker_StopIsIdempotent(t *testing.T) {
	w, _, _, _, _ := newWorkerFixture()

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestBookingNotificationWorker_ConsumesAndAcks(t *testing.T) {
	w, streamRepo, notificationRepo, userRepo, mailRepo := newWorkerFixture()

	user := &domain.User{ID: uuid.New(), Email: "jeanne.petit@lycee.example.org", Role: domain.RoleVisitor}
	event := domain.BookingEvent{
		BookingID:   uuid.New(),
		TimeSlotID:  uuid.New(),
		UserID:      user.ID,
		CompanyID:   uuid.New(),
		CompanyName: "Aciéries du Rhône",
		Status:      domain.BookingConfirmed,
		StartISO:    "2026-11-16T09:00:00Z",
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamBookingEvents, "test-group").Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamBookingEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{{ID: "1-0", Data: string(payload)}}, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamBookingEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamBookingEvents, "test-group", "1-0").Return(nil)

	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	mailRepo.On("SendBookingNotice", mock.Anything, user.Email, event.CompanyName, "confirmed", event.StartISO).Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(500 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	streamRepo.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamBookingEvents, "test-group", "1-0")
	notificationRepo.AssertExpectations(t)
	mailRepo.AssertExpectations(t)
}

func TestBookingNotificationWorker_MalformedMessageIsAcked(t *testing.T) {
	w, streamRepo, notificationRepo, _, _ := newWorkerFixture()

	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamBookingEvents, "test-group").Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamBookingEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{{ID: "2-0", Data: "not json"}}, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamBookingEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamBookingEvents, "test-group", "2-0").Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(300 * time.Millisecond)
	require.NoError(t, w.Stop())
	<-done

	streamRepo.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamBookingEvents, "test-group", "2-0")
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

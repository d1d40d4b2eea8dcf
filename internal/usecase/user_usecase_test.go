package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
)

func newUserFixture() (*usecase.UserUseCase, *MockUserRepository, *MockMailRepository) {
	userRepo := new(MockUserRepository)
	mailRepo := new(MockMailRepository)
	uc := usecase.NewUserUseCase(userRepo, mailRepo, "https://semaine-industrie.example.org", zap.NewNop())
	return uc, userRepo, mailRepo
}

func TestUserUpdateProfile_MergesOnlyProvidedFields(t *testing.T) {
	uc, userRepo, _ := newUserFixture()
	name := "Jeanne Petit"
	phone := "0611223344"
	user := &domain.User{
		ID:       uuid.New(),
		Email:    "jeanne.petit@lycee.example.org",
		Role:     domain.RoleVisitor,
		FullName: &name,
		Phone:    &phone,
	}
	newName := "Jeanne Petit-Durand"

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.FullName != nil && *u.FullName == newName && u.Phone != nil && *u.Phone == phone
	})).Return(nil)

	updated, err := uc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{
		FullName: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, newName, *updated.FullName)
	assert.Equal(t, phone, *updated.Phone)
	userRepo.AssertExpectations(t)
}

func TestUserRequestPasswordReset_UnknownAddressStaysSilent(t *testing.T) {
	uc, userRepo, mailRepo := newUserFixture()

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.org").Return(nil, apperrors.ErrUserNotFound)

	err := uc.RequestPasswordReset(context.Background(), dto.PasswordResetRequest{Email: "nobody@example.org"})

	require.NoError(t, err)
	mailRepo.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserRequestPasswordReset_SendsMail(t *testing.T) {
	uc, userRepo, mailRepo := newUserFixture()
	user := &domain.User{ID: uuid.New(), Email: "jeanne.petit@lycee.example.org", Role: domain.RoleVisitor}

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	mailRepo.On("SendPasswordReset", mock.Anything, user.Email, mock.MatchedBy(func(link string) bool {
		return len(link) > 0
	})).Return(nil)

	err := uc.RequestPasswordReset(context.Background(), dto.PasswordResetRequest{Email: user.Email})

	require.NoError(t, err)
	mailRepo.AssertExpectations(t)
}

func TestUserRequestPasswordReset_MailFailure(t *testing.T) {
	uc, userRepo, mailRepo := newUserFixture()
	user := &domain.User{ID: uuid.New(), Email: "jeanne.petit@lycee.example.org", Role: domain.RoleVisitor}

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	mailRepo.On("SendPasswordReset", mock.Anything, user.Email, mock.AnythingOfType("string")).
		Return(assert.AnError)

	err := uc.RequestPasswordReset(context.Background(), dto.PasswordResetRequest{Email: user.Email})

	assert.ErrorIs(t, err, apperrors.ErrMailError)
}

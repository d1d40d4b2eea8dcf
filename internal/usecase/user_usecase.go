package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
	"go.uber.org/zap"
)

// UserUseCase covers profile management and the password reset mail.
type UserUseCase struct {
	userRepo repository.UserRepository
	mailRepo repository.MailRepository
	siteURL  string
	logger   *zap.Logger
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	mailRepo repository.MailRepository,
	siteURL string,
	logger *zap.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		mailRepo: mailRepo,
		siteURL:  siteURL,
		logger:   logger,
	}
}

// GetProfile returns the caller's account.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// ListUsers returns every account, for the admin user listing.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return uc.userRepo.List(ctx)
}

// UpdateProfile edits the caller's own fields. Role and email are not
// editable here.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Establishment != nil {
		user.Establishment = req.Establishment
	}
	if req.GradeLevel != nil {
		user.GradeLevel = req.GradeLevel
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// RequestPasswordReset mails a reset link. An unknown address returns
// success without sending, so the endpoint cannot be used to probe for
// accounts.
func (uc *UserUseCase) RequestPasswordReset(ctx context.Context, req dto.PasswordResetRequest) error {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if errors.ErrUserNotFound.Is(err) {
		uc.logger.Info("Password reset requested for unknown address")
		return nil
	}
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/reset?uid=%s", uc.siteURL, user.ID.String())
	if err := uc.mailRepo.SendPasswordReset(ctx, user.Email, link); err != nil {
		uc.logger.Error("Failed to send password reset mail", zap.Error(err))
		return errors.ErrMailError
	}

	return nil
}

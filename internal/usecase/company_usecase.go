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

// CompanyUseCase owns the company lifecycle: access requests, the admin
// approval workflow, profile edits and the gallery.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	photoRepo   repository.PhotoRepository
	slotRepo    repository.SlotRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	mailRepo    repository.MailRepository
	cacheRepo   repository.CacheRepository
	siteURL     string
	logger      *zap.Logger
}

func NewCompanyUseCase(
	companyRepo repository.CompanyRepository,
	photoRepo repository.PhotoRepository,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	mailRepo repository.MailRepository,
	cacheRepo repository.CacheRepository,
	siteURL string,
	logger *zap.Logger,
) *CompanyUseCase {
	return &CompanyUseCase{
		companyRepo: companyRepo,
		photoRepo:   photoRepo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		mailRepo:    mailRepo,
		cacheRepo:   cacheRepo,
		siteURL:     siteURL,
		logger:      logger,
	}
}

// RequestAccess files a self-service company request. The record starts
// pending and stays invisible until an admin approves it.
func (uc *CompanyUseCase) RequestAccess(ctx context.Context, req dto.CompanyRequest) (*domain.Company, error) {
	if req.Siret != nil {
		taken, err := uc.companyRepo.SiretExists(ctx, *req.Siret, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.ErrSiretConflict
		}
	}

	company := companyFromRequest(req)
	company.ID = uuid.New()
	company.Status = domain.CompanyPending

	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	uc.logger.Info("Company access requested",
		zap.String("id", company.ID.String()),
		zap.String("name", company.Name))

	return company, nil
}

// Create registers a company directly as approved, for admin use.
func (uc *CompanyUseCase) Create(ctx context.Context, req dto.CompanyRequest) (*domain.Company, error) {
	if req.Siret != nil {
		taken, err := uc.companyRepo.SiretExists(ctx, *req.Siret, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.ErrSiretConflict
		}
	}

	company := companyFromRequest(req)
	company.ID = uuid.New()
	company.Status = domain.CompanyApproved

	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	uc.invalidateStats(ctx)
	return company, nil
}

// Update edits a company profile. SIRET uniqueness excludes the company
// itself so saving an unchanged profile never conflicts.
func (uc *CompanyUseCase) Update(ctx context.Context, id uuid.UUID, req dto.CompanyRequest) (*domain.Company, error) {
	existing, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Siret != nil {
		taken, err := uc.companyRepo.SiretExists(ctx, *req.Siret, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.ErrSiretConflict
		}
	}

	updated := companyFromRequest(req)
	updated.ID = id
	updated.UserID = existing.UserID
	updated.Status = existing.Status

	if err := uc.companyRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// Approve moves a pending company to approved and, when the contact has no
// linked account yet, provisions one and mails the invite. All
// preconditions run before any write, and the status flips last: a failed
// provisioning step leaves the company pending. The user link is written
// before the mail goes out, so a re-run can never attach a second account
// to the same company.
func (uc *CompanyUseCase) Approve(ctx context.Context, id uuid.UUID) (*dto.ApproveCompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company.Status != domain.CompanyPending {
		return nil, errors.ErrCompanyNotPending
	}
	if company.ContactEmail == nil || *company.ContactEmail == "" {
		return nil, errors.ErrMissingContactEmail
	}
	if company.Siret != nil {
		taken, err := uc.companyRepo.SiretExists(ctx, *company.Siret, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.ErrSiretConflict
		}
	}

	resp := &dto.ApproveCompanyResponse{Company: company}

	if company.UserID == nil {
		user, err := uc.userRepo.GetByEmail(ctx, *company.ContactEmail)
		if errors.ErrUserNotFound.Is(err) {
			user = &domain.User{
				ID:       uuid.New(),
				Email:    *company.ContactEmail,
				Role:     domain.RoleCompany,
				FullName: company.ContactName,
			}
			if err := uc.userRepo.Upsert(ctx, user); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		linked, err := uc.companyRepo.UserLinked(ctx, user.ID, id)
		if err != nil {
			return nil, err
		}
		if linked {
			return nil, errors.ErrUserAlreadyLinked
		}

		if err := uc.companyRepo.LinkUser(ctx, id, user.ID); err != nil {
			return nil, err
		}
		resp.UserLinked = true
	}

	if err := uc.companyRepo.UpdateStatus(ctx, id, domain.CompanyApproved); err != nil {
		return nil, err
	}
	company.Status = domain.CompanyApproved

	if resp.UserLinked {
		link := fmt.Sprintf("%s/auth/setup?company=%s", uc.siteURL, id.String())
		name := company.Name
		if company.ContactName != nil {
			name = *company.ContactName
		}
		if err := uc.mailRepo.SendInvite(ctx, *company.ContactEmail, name, link); err != nil {
			// Approval stands; the invite can be re-sent manually.
			uc.logger.Error("Failed to send invite mail",
				zap.String("company_id", id.String()),
				zap.Error(err))
		} else {
			resp.InviteSent = true
		}
	}

	uc.invalidateStats(ctx)

	uc.logger.Info("Company approved",
		zap.String("id", id.String()),
		zap.Bool("invite_sent", resp.InviteSent))

	return resp, nil
}

// Reject refuses a pending company request.
func (uc *CompanyUseCase) Reject(ctx context.Context, id uuid.UUID, req dto.RejectCompanyRequest) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company.Status != domain.CompanyPending {
		return nil, errors.ErrCompanyNotPending
	}

	if err := uc.companyRepo.UpdateStatus(ctx, id, domain.CompanyRejected); err != nil {
		return nil, err
	}
	company.Status = domain.CompanyRejected

	if req.Reason != nil {
		uc.logger.Info("Company rejected",
			zap.String("id", id.String()),
			zap.String("reason", *req.Reason))
	}

	uc.invalidateStats(ctx)
	return company, nil
}

// List returns companies by status for the admin screens; an empty status
// lists everything.
func (uc *CompanyUseCase) List(ctx context.Context, status domain.CompanyStatus) ([]*domain.Company, error) {
	return uc.companyRepo.ListByStatus(ctx, status)
}

// GetByUser resolves the company owned by a company-role account.
func (uc *CompanyUseCase) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Company, error) {
	return uc.companyRepo.GetByUserID(ctx, userID)
}

// Delete removes a company and its dependents.
func (uc *CompanyUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.companyRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateStats(ctx)
	return nil
}

// AddPhoto appends a gallery entry.
func (uc *CompanyUseCase) AddPhoto(ctx context.Context, companyID uuid.UUID, req dto.AddPhotoRequest) (*domain.CompanyPhoto, error) {
	if _, err := uc.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	photo := &domain.CompanyPhoto{
		ID:         uuid.New(),
		CompanyID:  companyID,
		PhotoURL:   req.PhotoURL,
		OrderIndex: req.OrderIndex,
	}
	if err := uc.photoRepo.Add(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// DeletePhoto removes a gallery entry.
func (uc *CompanyUseCase) DeletePhoto(ctx context.Context, photoID uuid.UUID) error {
	return uc.photoRepo.Delete(ctx, photoID)
}

// GetDashboard builds the company dashboard: stats rollup plus each slot
// with its bookings.
func (uc *CompanyUseCase) GetDashboard(ctx context.Context, companyID uuid.UUID) (*dto.CompanyDashboardResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	slots, err := uc.slotRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	slotIDs := make([]uuid.UUID, len(slots))
	for i, slot := range slots {
		slotIDs[i] = slot.ID
	}

	bookingsBySlot, err := uc.bookingRepo.ListBySlots(ctx, slotIDs)
	if err != nil {
		return nil, err
	}

	views := make([]dto.SlotWithBookings, len(slots))
	for i, slot := range slots {
		bookings := bookingsBySlot[slot.ID]
		fillRate := domain.FillRatePercent(slot.Registered(), slot.Capacity)
		views[i] = dto.SlotWithBookings{
			Slot:     slot,
			Bookings: bookings,
			Stats:    domain.ComputeSlotBookingStats(bookings),
			FillRate: fillRate,
			BarWidth: domain.BarWidthPercent(fillRate),
		}
	}

	return &dto.CompanyDashboardResponse{
		Company: company,
		Stats:   domain.AggregateCompanyStats(slots),
		Slots:   views,
	}, nil
}

func (uc *CompanyUseCase) invalidateStats(ctx context.Context) {
	if err := uc.cacheRepo.InvalidatePlatformStats(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate platform stats cache", zap.Error(err))
	}
}

func companyFromRequest(req dto.CompanyRequest) *domain.Company {
	themes := req.Themes
	if themes == nil {
		themes = []string{}
	}
	return &domain.Company{
		Name:              req.Name,
		Description:       req.Description,
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		LogoURL:           req.LogoURL,
		BannerURL:         req.BannerURL,
		Siret:             req.Siret,
		MaxCapacity:       req.MaxCapacity,
		Themes:            themes,
		SafetyMeasures:    req.SafetyMeasures,
		EquipmentProvided: req.EquipmentProvided,
		EquipmentRequired: req.EquipmentRequired,
		PMRAccessible:     req.PMRAccessible,
		ContactName:       req.ContactName,
		ContactEmail:      req.ContactEmail,
		ContactPhone:      req.ContactPhone,
	}
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
	"go.uber.org/zap"
)

// DirectoryUseCase assembles the public company directory: approved
// companies merged with their theme, gallery and slot availability.
type DirectoryUseCase struct {
	companyRepo repository.CompanyRepository
	photoRepo   repository.PhotoRepository
	slotRepo    repository.SlotRepository
	themes      *ThemeUseCase
	logger      *zap.Logger
}

func NewDirectoryUseCase(
	companyRepo repository.CompanyRepository,
	photoRepo repository.PhotoRepository,
	slotRepo repository.SlotRepository,
	themes *ThemeUseCase,
	logger *zap.Logger,
) *DirectoryUseCase {
	return &DirectoryUseCase{
		companyRepo: companyRepo,
		photoRepo:   photoRepo,
		slotRepo:    slotRepo,
		themes:      themes,
		logger:      logger,
	}
}

// Browse lists approved companies matching the filters. Only approved
// companies ever appear publicly, whatever the filters say.
func (uc *DirectoryUseCase) Browse(ctx context.Context, req dto.DirectoryRequest) (*dto.DirectoryResponse, error) {
	companies, err := uc.companyRepo.ListByStatus(ctx, domain.CompanyApproved)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(companies))
	for i, company := range companies {
		ids[i] = company.ID
	}

	photosByCompany, err := uc.photoRepo.ListByCompanies(ctx, ids)
	if err != nil {
		uc.logger.Warn("Failed to load directory photos", zap.Error(err))
		photosByCompany = map[uuid.UUID][]*domain.CompanyPhoto{}
	}

	slotsByCompany, err := uc.slotRepo.ListByCompanies(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]dto.DirectoryEntry, 0, len(companies))
	for _, company := range companies {
		if !matchesDirectoryFilters(company, req) {
			continue
		}

		slots := slotsByCompany[company.ID]
		entry := dto.DirectoryEntry{
			Company:      company,
			Photos:       photosByCompany[company.ID],
			Slots:        slots,
			NextSlot:     domain.NextUpcomingSlot(slots, now),
			HasAvailable: domain.HasAvailableSpot(slots),
		}

		if req.OnlyAvailable && !entry.HasAvailable {
			continue
		}

		theme, err := uc.themes.ResolveTheme(ctx, company.PrimaryThemeSlug())
		if err != nil {
			uc.logger.Warn("Failed to resolve theme",
				zap.String("company_id", company.ID.String()),
				zap.Error(err))
		}
		entry.Theme = theme

		entries = append(entries, entry)
	}

	return &dto.DirectoryResponse{
		Companies: entries,
		Total:     len(entries),
	}, nil
}

// GetCompanyDetail returns one approved company page.
func (uc *DirectoryUseCase) GetCompanyDetail(ctx context.Context, id uuid.UUID) (*dto.CompanyDetailResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company.Status != domain.CompanyApproved {
		// Unapproved companies are invisible to the public directory.
		return nil, errors.ErrCompanyNotFound
	}

	photos, err := uc.photoRepo.ListByCompany(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to load company photos", zap.String("id", id.String()), zap.Error(err))
	}

	slots, err := uc.slotRepo.ListByCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	theme, err := uc.themes.ResolveTheme(ctx, company.PrimaryThemeSlug())
	if err != nil {
		uc.logger.Warn("Failed to resolve theme", zap.String("id", id.String()), zap.Error(err))
	}

	return &dto.CompanyDetailResponse{
		Company: company,
		Theme:   theme,
		Photos:  photos,
		Slots:   slots,
	}, nil
}

func matchesDirectoryFilters(company *domain.Company, req dto.DirectoryRequest) bool {
	if req.Theme != "" && company.PrimaryThemeSlug() != req.Theme && !containsTheme(company.Themes, req.Theme) {
		return false
	}
	if req.City != "" {
		if company.City == nil || !strings.EqualFold(*company.City, req.City) {
			return false
		}
	}
	if req.OnlyPMR && !company.PMRAccessible {
		return false
	}
	if req.Query != "" {
		needle := strings.ToLower(req.Query)
		haystack := strings.ToLower(company.Name)
		if company.Description != nil {
			haystack += " " + strings.ToLower(*company.Description)
		}
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func containsTheme(themes []string, slug string) bool {
	for _, theme := range themes {
		if theme == slug {
			return true
		}
	}
	return false
}

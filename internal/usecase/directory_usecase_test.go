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
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
)

type directoryFixture struct {
	uc          *usecase.DirectoryUseCase
	companyRepo *MockCompanyRepository
	photoRepo   *MockPhotoRepository
	slotRepo    *MockSlotRepository
	themeRepo   *MockThemeRepository
	cacheRepo   *MockCacheRepository
}

func newDirectoryFixture() *directoryFixture {
	f := &directoryFixture{
		companyRepo: new(MockCompanyRepository),
		photoRepo:   new(MockPhotoRepository),
		slotRepo:    new(MockSlotRepository),
		themeRepo:   new(MockThemeRepository),
		cacheRepo:   new(MockCacheRepository),
	}
	themes := usecase.NewThemeUseCase(f.themeRepo, f.cacheRepo, time.Minute, zap.NewNop())
	f.uc = usecase.NewDirectoryUseCase(f.companyRepo, f.photoRepo, f.slotRepo, themes, zap.NewNop())
	return f
}

func approvedCompany(name, city, theme string, pmr bool) *domain.Company {
	c := &domain.Company{
		ID:            uuid.New(),
		Name:          name,
		Status:        domain.CompanyApproved,
		PMRAccessible: pmr,
		Themes:        []string{},
	}
	if city != "" {
		c.City = &city
	}
	if theme != "" {
		c.Themes = []string{theme}
	}
	return c
}

func (f *directoryFixture) expectListings(companies []*domain.Company, slots map[uuid.UUID][]*domain.TimeSlot) {
	ids := make([]uuid.UUID, len(companies))
	for i, c := range companies {
		ids[i] = c.ID
	}
	f.companyRepo.On("ListByStatus", mock.Anything, domain.CompanyApproved).Return(companies, nil)
	f.photoRepo.On("ListByCompanies", mock.Anything, ids).Return(map[uuid.UUID][]*domain.CompanyPhoto{}, nil)
	f.slotRepo.On("ListByCompanies", mock.Anything, ids).Return(slots, nil)
	f.cacheRepo.On("GetThemes", mock.Anything).Return(nil, nil)
	f.themeRepo.On("List", mock.Anything).Return([]*domain.Theme{
		{ID: uuid.New(), Name: "Métallurgie", Slug: "metallurgie"},
		{ID: uuid.New(), Name: "Aéronautique", Slug: "aeronautique"},
	}, nil)
	f.cacheRepo.On("SetThemes", mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestDirectoryBrowse_FiltersByThemeAndCity(t *testing.T) {
	f := newDirectoryFixture()
	companies := []*domain.Company{
		approvedCompany("Aciéries du Rhône", "Lyon", "metallurgie", true),
		approvedCompany("Aérostructures Toulousaines", "Toulouse", "aeronautique", false),
	}
	f.expectListings(companies, map[uuid.UUID][]*domain.TimeSlot{})

	resp, err := f.uc.Browse(context.Background(), dto.DirectoryRequest{
		Theme: "metallurgie",
		City:  "lyon",
	})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Aciéries du Rhône", resp.Companies[0].Company.Name)
	assert.Equal(t, "metallurgie", resp.Companies[0].Theme.Slug)
}

func TestDirectoryBrowse_OnlyAvailableDropsFullCompanies(t *testing.T) {
	f := newDirectoryFixture()
	withSeats := approvedCompany("Aciéries du Rhône", "Lyon", "metallurgie", true)
	full := approvedCompany("Aérostructures Toulousaines", "Toulouse", "aeronautique", false)
	companies := []*domain.Company{withSeats, full}

	start := time.Now().Add(72 * time.Hour)
	f.expectListings(companies, map[uuid.UUID][]*domain.TimeSlot{
		withSeats.ID: {{ID: uuid.New(), CompanyID: withSeats.ID, StartDatetime: start, Capacity: 10, AvailableSpots: 3, Status: domain.SlotOpen}},
		full.ID:      {{ID: uuid.New(), CompanyID: full.ID, StartDatetime: start, Capacity: 10, AvailableSpots: 0, Status: domain.SlotFull}},
	})

	resp, err := f.uc.Browse(context.Background(), dto.DirectoryRequest{OnlyAvailable: true})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, withSeats.ID, resp.Companies[0].Company.ID)
	assert.True(t, resp.Companies[0].HasAvailable)
	require.NotNil(t, resp.Companies[0].NextSlot)
}

func TestDirectoryBrowse_PMRFilter(t *testing.T) {
	f := newDirectoryFixture()
	companies := []*domain.Company{
		approvedCompany("Aciéries du Rhône", "Lyon", "metallurgie", true),
		approvedCompany("Aérostructures Toulousaines", "Toulouse", "aeronautique", false),
	}
	f.expectListings(companies, map[uuid.UUID][]*domain.TimeSlot{})

	resp, err := f.uc.Browse(context.Background(), dto.DirectoryRequest{OnlyPMR: true})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.True(t, resp.Companies[0].Company.PMRAccessible)
}

func TestDirectoryBrowse_TextQueryMatchesDescription(t *testing.T) {
	f := newDirectoryFixture()
	description := "Fabrication de pièces forgées pour l'automobile"
	match := approvedCompany("Aciéries du Rhône", "Lyon", "metallurgie", true)
	match.Description = &description
	other := approvedCompany("Aérostructures Toulousaines", "Toulouse", "aeronautique", false)
	f.expectListings([]*domain.Company{match, other}, map[uuid.UUID][]*domain.TimeSlot{})

	resp, err := f.uc.Browse(context.Background(), dto.DirectoryRequest{Query: "forgées"})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, match.ID, resp.Companies[0].Company.ID)
}

func TestDirectoryGetCompanyDetail_UnapprovedInvisible(t *testing.T) {
	f := newDirectoryFixture()
	company := approvedCompany("Aciéries du Rhône", "Lyon", "metallurgie", true)
	company.Status = domain.CompanyPending

	f.companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)

	_, err := f.uc.GetCompanyDetail(context.Background(), company.ID)

	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
}

func TestDirectoryGetCompanyDetail_FallsBackToOtherTheme(t *testing.T) {
	f := newDirectoryFixture()
	company := approvedCompany("Atelier Sans Secteur", "Nantes", "", false)

	f.companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)
	f.photoRepo.On("ListByCompany", mock.Anything, company.ID).Return([]*domain.CompanyPhoto{}, nil)
	f.slotRepo.On("ListByCompany", mock.Anything, company.ID).Return([]*domain.TimeSlot{}, nil)

	detail, err := f.uc.GetCompanyDetail(context.Background(), company.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultThemeSlug, detail.Theme.Slug)
}

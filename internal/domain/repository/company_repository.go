package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// CompanyRepository is the storage contract for companies and their photos.
type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Company, error)

	// ListByStatus returns companies in the given lifecycle state; an empty
	// status returns everything.
	ListByStatus(ctx context.Context, status domain.CompanyStatus) ([]*domain.Company, error)
	CountByStatus(ctx context.Context, status domain.CompanyStatus) (int, error)

	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CompanyStatus) error

	// LinkUser writes the one-to-one company account link.
	LinkUser(ctx context.Context, companyID, userID uuid.UUID) error

	// SiretExists checks for a SIRET collision on any other company record.
	SiretExists(ctx context.Context, siret string, excludeID uuid.UUID) (bool, error)

	// UserLinked reports whether the user already owns a different company.
	UserLinked(ctx context.Context, userID, excludeCompanyID uuid.UUID) (bool, error)

	// Delete removes the company; slots and photos cascade at the storage
	// layer.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PhotoRepository manages company gallery entries.
type PhotoRepository interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyPhoto, error)
	ListByCompanies(ctx context.Context, companyIDs []uuid.UUID) (map[uuid.UUID][]*domain.CompanyPhoto, error)
	Add(ctx context.Context, photo *domain.CompanyPhoto) error
	Delete(ctx context.Context, id uuid.UUID) error
}

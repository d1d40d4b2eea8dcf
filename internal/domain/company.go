package domain

import (
	"time"

	"github.com/google/uuid"
)

type CompanyStatus string

const (
	CompanyPending  CompanyStatus = "pending"
	CompanyApproved CompanyStatus = "approved"
	CompanyRejected CompanyStatus = "rejected"
)

// Company is an organization offering site visits. Created with status
// pending via self-service request, or approved directly by an admin.
// UserID links the owning company account; nil until the invite flow runs.
type Company struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	UserID            *uuid.UUID    `json:"user_id,omitempty" db:"user_id"`
	Name              string        `json:"name" db:"name"`
	Description       *string       `json:"description,omitempty" db:"description"`
	Address           *string       `json:"address,omitempty" db:"address"`
	City              *string       `json:"city,omitempty" db:"city"`
	PostalCode        *string       `json:"postal_code,omitempty" db:"postal_code"`
	Latitude          *float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude         *float64      `json:"longitude,omitempty" db:"longitude"`
	LogoURL           *string       `json:"logo_url,omitempty" db:"logo_url"`
	BannerURL         *string       `json:"banner_url,omitempty" db:"banner_url"`
	Siret             *string       `json:"siret,omitempty" db:"siret"`
	MaxCapacity       *int          `json:"max_capacity,omitempty" db:"max_capacity"`
	Themes            []string      `json:"themes" db:"themes"`
	SafetyMeasures    *string       `json:"safety_measures,omitempty" db:"safety_measures"`
	EquipmentProvided *string       `json:"equipment_provided,omitempty" db:"equipment_provided"`
	EquipmentRequired *string       `json:"equipment_required,omitempty" db:"equipment_required"`
	PMRAccessible     bool          `json:"pmr_accessible" db:"pmr_accessible"`
	ContactName       *string       `json:"contact_name,omitempty" db:"contact_name"`
	ContactEmail      *string       `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone      *string       `json:"contact_phone,omitempty" db:"contact_phone"`
	Status            CompanyStatus `json:"status" db:"status"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// PrimaryThemeSlug returns the first theme entry, or the synthetic "other"
// slug when the list is empty.
func (c *Company) PrimaryThemeSlug() string {
	if len(c.Themes) == 0 {
		return DefaultThemeSlug
	}
	return c.Themes[0]
}

// CompanyPhoto is one gallery entry, ordered by OrderIndex.
type CompanyPhoto struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CompanyID  uuid.UUID `json:"company_id" db:"company_id"`
	PhotoURL   string    `json:"photo_url" db:"photo_url"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Favorite is a (user, company) pairing with no extra state.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CompanyID uuid.UUID `json:"company_id" db:"company_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Theme is an immutable sector label. The slug is the natural key used in
// company theme lists and filter query parameters.
type Theme struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Icon      *string   `json:"icon,omitempty" db:"icon"`
	Color     *string   `json:"color,omitempty" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	// DefaultThemeSlug is assigned when a company has no theme entry.
	DefaultThemeSlug = "other"

	// DefaultThemeColor is the display color for unknown themes.
	DefaultThemeColor = "#2C5F8D"
)

// OtherTheme is the synthetic fallback for companies without a sector.
func OtherTheme() Theme {
	color := DefaultThemeColor
	return Theme{
		Name:  "Other",
		Slug:  DefaultThemeSlug,
		Color: &color,
	}
}

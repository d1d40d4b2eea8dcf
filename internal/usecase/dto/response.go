package dto

import (
	"time"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
)

// DirectoryEntry is one public directory card: the company merged with its
// resolved theme, gallery and slot availability.
type DirectoryEntry struct {
	Company       *domain.Company        `json:"company"`
	Theme         domain.Theme           `json:"theme"`
	Photos        []*domain.CompanyPhoto `json:"photos"`
	Slots         []*domain.TimeSlot     `json:"slots"`
	NextSlot      *domain.TimeSlot       `json:"next_slot,omitempty"`
	HasAvailable  bool                   `json:"has_available"`
	FavoriteCount int                    `json:"favorite_count,omitempty"`
}

// DirectoryResponse is the filtered public directory.
type DirectoryResponse struct {
	Companies []DirectoryEntry `json:"companies"`
	Total     int              `json:"total"`
}

// CompanyDetailResponse is one company page with gallery and slots.
type CompanyDetailResponse struct {
	Company *domain.Company        `json:"company"`
	Theme   domain.Theme           `json:"theme"`
	Photos  []*domain.CompanyPhoto `json:"photos"`
	Slots   []*domain.TimeSlot     `json:"slots"`
}

// SlotWithBookings is a company-side slot view including its bookings.
type SlotWithBookings struct {
	Slot     *domain.TimeSlot        `json:"slot"`
	Bookings []*domain.Booking       `json:"bookings"`
	Stats    domain.SlotBookingStats `json:"stats"`
	FillRate int                     `json:"fill_rate"`
	BarWidth int                     `json:"bar_width"`
}

// CompanyDashboardResponse feeds the company dashboard.
type CompanyDashboardResponse struct {
	Company *domain.Company     `json:"company"`
	Stats   domain.CompanyStats `json:"stats"`
	Slots   []SlotWithBookings  `json:"slots"`
}

// BookingDetail is a visitor-side booking joined with its slot and the
// visited company.
type BookingDetail struct {
	Booking     *domain.Booking  `json:"booking"`
	Slot        *domain.TimeSlot `json:"slot,omitempty"`
	CompanyID   string           `json:"company_id,omitempty"`
	CompanyName string           `json:"company_name,omitempty"`
	Cancellable bool             `json:"cancellable"`
}

// VisitorDashboardResponse feeds the student dashboard.
type VisitorDashboardResponse struct {
	Upcoming  []BookingDetail  `json:"upcoming"`
	Past      []BookingDetail  `json:"past"`
	Favorites []DirectoryEntry `json:"favorites"`
}

// ApproveCompanyResponse reports the outcome of an approval, including
// whether an account invite went out.
type ApproveCompanyResponse struct {
	Company    *domain.Company `json:"company"`
	InviteSent bool            `json:"invite_sent"`
	UserLinked bool            `json:"user_linked"`
}

// ExportResponse wraps the rendered CSV for transport.
type ExportResponse struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	RowCount    int       `json:"row_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

package dto

import "github.com/hugoldd/SemaineDeLindustrie/internal/domain"

// DirectoryRequest filters the public company directory.
type DirectoryRequest struct {
	Theme         string `json:"theme" validate:"omitempty,min=1"`
	City          string `json:"city" validate:"omitempty,min=1"`
	Query         string `json:"query" validate:"omitempty,min=2"`
	OnlyAvailable bool   `json:"only_available"`
	OnlyPMR       bool   `json:"only_pmr"`
}

// CompanyRequest carries the editable company fields, shared by the
// self-service access request and the admin/company update paths.
type CompanyRequest struct {
	Name              string   `json:"name" validate:"required,min=2,max=200"`
	Description       *string  `json:"description,omitempty"`
	Address           *string  `json:"address,omitempty"`
	City              *string  `json:"city,omitempty"`
	PostalCode        *string  `json:"postal_code,omitempty" validate:"omitempty,len=5"`
	Latitude          *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude         *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	LogoURL           *string  `json:"logo_url,omitempty" validate:"omitempty,url"`
	BannerURL         *string  `json:"banner_url,omitempty" validate:"omitempty,url"`
	Siret             *string  `json:"siret,omitempty" validate:"omitempty,len=14,numeric"`
	MaxCapacity       *int     `json:"max_capacity,omitempty" validate:"omitempty,min=1"`
	Themes            []string `json:"themes" validate:"omitempty,dive,min=1"`
	SafetyMeasures    *string  `json:"safety_measures,omitempty"`
	EquipmentProvided *string  `json:"equipment_provided,omitempty"`
	EquipmentRequired *string  `json:"equipment_required,omitempty"`
	PMRAccessible     bool     `json:"pmr_accessible"`
	ContactName       *string  `json:"contact_name,omitempty"`
	ContactEmail      *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone      *string  `json:"contact_phone,omitempty"`
}

// RejectCompanyRequest optionally records why a request was refused.
type RejectCompanyRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// AddPhotoRequest appends one gallery entry.
type AddPhotoRequest struct {
	PhotoURL   string `json:"photo_url" validate:"required,url"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

// SlotRequest carries the editable slot fields for create and update.
type SlotRequest struct {
	StartDatetime            string  `json:"start_datetime" validate:"required"`
	EndDatetime              string  `json:"end_datetime" validate:"required"`
	Capacity                 int     `json:"capacity" validate:"required,min=1,max=500"`
	VisitType                string  `json:"visit_type" validate:"required,oneof=guided_tour workshop presentation immersion"`
	Description              *string `json:"description,omitempty"`
	SpecificInstructions     *string `json:"specific_instructions,omitempty"`
	RequiresManualValidation bool    `json:"requires_manual_validation"`
}

// CreateBookingRequest registers a visitor on a slot. Group bookings must
// declare at least one participant and a supervising teacher.
type CreateBookingRequest struct {
	TimeSlotID            string  `json:"time_slot_id" validate:"required,uuid4"`
	BookingType           string  `json:"booking_type" validate:"required,oneof=individual group"`
	NumberOfParticipants  int     `json:"number_of_participants" validate:"required_if=BookingType group,omitempty,min=1,max=100"`
	TeacherName           *string `json:"teacher_name,omitempty" validate:"required_if=BookingType group"`
	SpecialNeeds          *string `json:"special_needs,omitempty"`
	ParentalAuthorization bool    `json:"parental_authorization"`
}

// CancelBookingRequest carries the optional cancellation reason.
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RejectBookingRequest carries the optional rejection reason.
type RejectBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// UpdateProfileRequest edits the caller's own account fields.
type UpdateProfileRequest struct {
	FullName      *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Phone         *string `json:"phone,omitempty"`
	Establishment *string `json:"establishment,omitempty"`
	GradeLevel    *string `json:"grade_level,omitempty"`
}

// PasswordResetRequest triggers a reset mail for the given address.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SaveExportMappingRequest replaces the stored DataGouv column mapping.
type SaveExportMappingRequest struct {
	Mapping domain.ExportMapping `json:"mapping" validate:"required"`
}

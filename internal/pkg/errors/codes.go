package errors

import "net/http"

var (
	ErrCompanyNotFound = New(
		"COMPANY_NOT_FOUND",
		"Company not found",
		http.StatusNotFound,
	)

	ErrSlotNotFound = New(
		"SLOT_NOT_FOUND",
		"Time slot not found",
		http.StatusNotFound,
	)

	ErrBookingNotFound = New(
		"BOOKING_NOT_FOUND",
		"Booking not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrCapacityExceeded = New(
		"CAPACITY_EXCEEDED",
		"Not enough available spots on this time slot",
		http.StatusConflict,
	)

	ErrInvalidTransition = New(
		"INVALID_TRANSITION",
		"Booking status transition is not allowed",
		http.StatusConflict,
	)

	ErrCancellationWindow = New(
		"CANCELLATION_WINDOW_CLOSED",
		"Bookings can only be cancelled at least 48 hours before the visit",
		http.StatusConflict,
	)

	ErrSlotHasBookings = New(
		"SLOT_HAS_BOOKINGS",
		"Time slot still has active bookings",
		http.StatusConflict,
	)

	ErrSiretConflict = New(
		"SIRET_ALREADY_EXISTS",
		"Another company already uses this SIRET",
		http.StatusConflict,
	)

	ErrMissingContactEmail = New(
		"MISSING_CONTACT_EMAIL",
		"Company has no contact email",
		http.StatusBadRequest,
	)

	ErrUserAlreadyLinked = New(
		"USER_ALREADY_LINKED",
		"User account is already linked to another company",
		http.StatusConflict,
	)

	ErrCompanyNotPending = New(
		"COMPANY_NOT_PENDING",
		"Company is not awaiting validation",
		http.StatusConflict,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Insufficient permissions",
		http.StatusForbidden,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrMailError = New(
		"MAIL_ERROR",
		"Outbound email delivery failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

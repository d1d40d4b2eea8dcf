package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/delivery/http/middleware"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/validator"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
)

// BookingHandler covers the visitor booking flow and the company-side
// confirm/reject/cancel decisions.
type BookingHandler struct {
	bookingUC *usecase.BookingUseCase
	slotUC    *usecase.SlotUseCase
	companyUC *usecase.CompanyUseCase
	logger    *zap.Logger
}

func NewBookingHandler(
	bookingUC *usecase.BookingUseCase,
	slotUC *usecase.SlotUseCase,
	companyUC *usecase.CompanyUseCase,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingUC: bookingUC,
		slotUC:    slotUC,
		companyUC: companyUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Book a visit slot
// @Description Registers the caller on a slot. Slots without manual validation confirm immediately
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse "Not enough seats"
// @Router /api/v1/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	booking, err := h.bookingUC.Create(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: booking})
}

// ListOwn returns the caller's bookings with slot and company context.
func (h *BookingHandler) ListOwn(c *fiber.Ctx) error {
	details, err := h.bookingUC.ListForUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"bookings": details,
	}, &utils.Meta{
		Total: len(details),
	})
}

// CancelOwn godoc
// @Summary Cancel own booking
// @Description Confirmed bookings can only be cancelled more than 48 hours before the visit
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse "Cancellation window closed"
// @Router /api/v1/me/bookings/{id} [delete]
func (h *BookingHandler) CancelOwn(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.CancelBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
	}

	booking, err := h.bookingUC.CancelByVisitor(c.Context(), middleware.UserID(c), bookingID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, booking, nil)
}

// Confirm accepts a pending booking on one of the caller's slots.
func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	bookingID, err := h.ownedBookingID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	booking, err := h.bookingUC.Confirm(c.Context(), bookingID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, booking, nil)
}

// Reject refuses a pending booking on one of the caller's slots.
func (h *BookingHandler) Reject(c *fiber.Ctx) error {
	bookingID, err := h.ownedBookingID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.RejectBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
	}

	booking, err := h.bookingUC.Reject(c.Context(), bookingID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, booking, nil)
}

// Cancel cancels a booking company-side; not time-gated.
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	bookingID, err := h.ownedBookingID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CancelBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
	}

	booking, err := h.bookingUC.Cancel(c.Context(), bookingID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, booking, nil)
}

// ownedBookingID resolves the :id parameter and checks the booking's slot
// belongs to the caller's company. Admin tokens skip the check.
func (h *BookingHandler) ownedBookingID(c *fiber.Ctx) (uuid.UUID, error) {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidRequest
	}

	if middleware.Role(c) == domain.RoleAdmin {
		return bookingID, nil
	}

	booking, err := h.bookingUC.GetByID(c.Context(), bookingID)
	if err != nil {
		return uuid.Nil, err
	}

	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return uuid.Nil, err
	}

	owned, err := h.slotUC.OwnedBy(c.Context(), booking.TimeSlotID, company.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if !owned {
		return uuid.Nil, apperrors.ErrForbidden
	}
	return bookingID, nil
}

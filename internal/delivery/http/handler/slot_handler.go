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

// SlotHandler manages visit slots for the authenticated company. Every
// slot-scoped route verifies ownership before acting; admins bypass the
// check.
type SlotHandler struct {
	slotUC    *usecase.SlotUseCase
	companyUC *usecase.CompanyUseCase
	bookingUC *usecase.BookingUseCase
	logger    *zap.Logger
}

func NewSlotHandler(
	slotUC *usecase.SlotUseCase,
	companyUC *usecase.CompanyUseCase,
	bookingUC *usecase.BookingUseCase,
	logger *zap.Logger,
) *SlotHandler {
	return &SlotHandler{
		slotUC:    slotUC,
		companyUC: companyUC,
		bookingUC: bookingUC,
		logger:    logger,
	}
}

// List returns the caller's slots.
func (h *SlotHandler) List(c *fiber.Ctx) error {
	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	slots, err := h.slotUC.ListByCompany(c.Context(), company.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"slots": slots,
	}, &utils.Meta{
		Total: len(slots),
	})
}

// Create godoc
// @Summary Open a visit slot
// @Description Creates a slot for the authenticated company; the seat counter starts at capacity
// @Tags Slots
// @Accept json
// @Produce json
// @Param request body dto.SlotRequest true "Slot details"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/company/slots [post]
func (h *SlotHandler) Create(c *fiber.Ctx) error {
	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SlotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	slot, err := h.slotUC.Create(c.Context(), company.ID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: slot})
}

// Update edits a slot; a capacity change keeps already registered seats.
func (h *SlotHandler) Update(c *fiber.Ctx) error {
	slotID, err := h.ownedSlotID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SlotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	slot, err := h.slotUC.Update(c.Context(), slotID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, slot, nil)
}

// Cancel marks a slot cancelled, keeping its booking history.
func (h *SlotHandler) Cancel(c *fiber.Ctx) error {
	slotID, err := h.ownedSlotID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	slot, err := h.slotUC.Cancel(c.Context(), slotID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, slot, nil)
}

// Delete removes a slot; refused while active bookings reference it.
func (h *SlotHandler) Delete(c *fiber.Ctx) error {
	slotID, err := h.ownedSlotID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.slotUC.Delete(c.Context(), slotID); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// ListBookings returns a slot's bookings for its owner.
func (h *SlotHandler) ListBookings(c *fiber.Ctx) error {
	slotID, err := h.ownedSlotID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	bookings, err := h.bookingUC.ListBySlot(c.Context(), slotID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"bookings": bookings,
	}, &utils.Meta{
		Total: len(bookings),
	})
}

// ownedSlotID parses the :id parameter and enforces that the slot belongs
// to the caller's company. Admin tokens skip the ownership check.
func (h *SlotHandler) ownedSlotID(c *fiber.Ctx) (uuid.UUID, error) {
	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidRequest
	}

	if middleware.Role(c) == domain.RoleAdmin {
		return slotID, nil
	}

	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return uuid.Nil, err
	}

	owned, err := h.slotUC.OwnedBy(c.Context(), slotID, company.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if !owned {
		return uuid.Nil, apperrors.ErrForbidden
	}
	return slotID, nil
}

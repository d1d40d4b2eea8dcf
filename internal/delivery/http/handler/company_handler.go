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

// CompanyHandler covers the self-service access request, the company-side
// profile and dashboard, and the admin company management endpoints.
type CompanyHandler struct {
	companyUC *usecase.CompanyUseCase
	logger    *zap.Logger
}

func NewCompanyHandler(companyUC *usecase.CompanyUseCase, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyUC: companyUC,
		logger:    logger,
	}
}

// RequestAccess godoc
// @Summary Request a company account
// @Description Files a pending company record; an admin reviews it before it appears in the directory
// @Tags Companies
// @Accept json
// @Produce json
// @Param request body dto.CompanyRequest true "Company details"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse "SIRET already registered"
// @Router /api/v1/companies/request [post]
func (h *CompanyHandler) RequestAccess(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	company, err := h.companyUC.RequestAccess(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, company, nil)
}

// GetOwn returns the company linked to the authenticated account.
func (h *CompanyHandler) GetOwn(c *fiber.Ctx) error {
	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, company, nil)
}

// UpdateOwn edits the authenticated account's company profile.
func (h *CompanyHandler) UpdateOwn(c *fiber.Ctx) error {
	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	updated, err := h.companyUC.Update(c.Context(), company.ID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, updated, nil)
}

// GetDashboard godoc
// @Summary Company dashboard
// @Description Stats rollup plus each slot with its bookings, for the authenticated company
// @Tags Companies
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/company/dashboard [get]
func (h *CompanyHandler) GetDashboard(c *fiber.Ctx) error {
	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	dashboard, err := h.companyUC.GetDashboard(c.Context(), company.ID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dashboard, nil)
}

// AddPhoto appends a gallery photo to the caller's company.
func (h *CompanyHandler) AddPhoto(c *fiber.Ctx) error {
	company, err := h.companyUC.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.AddPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	photo, err := h.companyUC.AddPhoto(c.Context(), company.ID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, photo, nil)
}

// DeletePhoto removes a gallery photo.
func (h *CompanyHandler) DeletePhoto(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.companyUC.DeletePhoto(c.Context(), photoID); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// List is the admin company listing; ?status= filters, empty lists all.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	status := domain.CompanyStatus(c.Query("status"))

	companies, err := h.companyUC.List(c.Context(), status)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"companies": companies,
	}, &utils.Meta{
		Total: len(companies),
	})
}

// Create registers a company directly as approved, for admins.
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	company, err := h.companyUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: company})
}

// Update edits any company, for admins.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	company, err := h.companyUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, company, nil)
}

// Delete removes a company and its dependents, for admins.
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.companyUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// Approve godoc
// @Summary Approve a pending company
// @Description Moves the company to approved, provisions the contact's account when needed and mails the invite
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse "Not pending, or contact already linked elsewhere"
// @Failure 422 {object} utils.ErrorResponse "No contact email on record"
// @Router /api/v1/admin/companies/{id}/approve [post]
func (h *CompanyHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	result, err := h.companyUC.Approve(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Reject refuses a pending company request.
func (h *CompanyHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	// The reason is optional, an empty body is fine.
	var req dto.RejectCompanyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
	}

	company, err := h.companyUC.Reject(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, company, nil)
}

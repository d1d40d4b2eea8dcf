package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/validator"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
)

// DirectoryHandler serves the public company directory.
type DirectoryHandler struct {
	directoryUC *usecase.DirectoryUseCase
	logger      *zap.Logger
}

func NewDirectoryHandler(directoryUC *usecase.DirectoryUseCase, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUC: directoryUC,
		logger:      logger,
	}
}

// Browse godoc
// @Summary Browse the company directory
// @Description Lists approved companies filtered by theme, city, text query, PMR access and seat availability
// @Tags Directory
// @Produce json
// @Param theme query string false "Theme slug"
// @Param city query string false "City (exact, case-insensitive)"
// @Param query query string false "Free text search over name and description"
// @Param only_available query bool false "Only companies with remaining seats"
// @Param only_pmr query bool false "Only PMR-accessible companies"
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/companies [get]
func (h *DirectoryHandler) Browse(c *fiber.Ctx) error {
	req := dto.DirectoryRequest{
		Theme:         c.Query("theme"),
		City:          c.Query("city"),
		Query:         c.Query("query"),
		OnlyAvailable: c.QueryBool("only_available"),
		OnlyPMR:       c.QueryBool("only_pmr"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.directoryUC.Browse(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// GetCompany godoc
// @Summary Get one company page
// @Tags Directory
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/companies/{id} [get]
func (h *DirectoryHandler) GetCompany(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	detail, err := h.directoryUC.GetCompanyDetail(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, detail, nil)
}

package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/validator"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
)

// ExportHandler manages the DataGouv column mapping and serves the CSV.
type ExportHandler struct {
	exportUC *usecase.ExportUseCase
	logger   *zap.Logger
}

func NewExportHandler(exportUC *usecase.ExportUseCase, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		exportUC: exportUC,
		logger:   logger,
	}
}

// GetMapping returns the stored column mapping, empty when never saved.
func (h *ExportHandler) GetMapping(c *fiber.Ctx) error {
	mapping, err := h.exportUC.GetMapping(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"mapping": mapping}, nil)
}

// SaveMapping replaces the stored column mapping.
func (h *ExportHandler) SaveMapping(c *fiber.Ctx) error {
	var req dto.SaveExportMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	mapping, err := h.exportUC.SaveMapping(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"mapping": mapping}, nil)
}

// Download godoc
// @Summary Download the DataGouv CSV export
// @Description One row per slot of every approved company, semicolon separated, UTF-8 with BOM
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/export/csv [get]
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	export, err := h.exportUC.GenerateCSV(c.Context())
	if err != nil {
		h.logger.Error("Failed to generate export", zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Send(export.Data)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
)

// ThemeHandler serves the sector reference data.
type ThemeHandler struct {
	themeUC *usecase.ThemeUseCase
	logger  *zap.Logger
}

func NewThemeHandler(themeUC *usecase.ThemeUseCase, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{
		themeUC: themeUC,
		logger:  logger,
	}
}

// GetThemes godoc
// @Summary List industry themes
// @Description Returns all sector themes used to classify companies
// @Tags Themes
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/themes [get]
func (h *ThemeHandler) GetThemes(c *fiber.Ctx) error {
	themes, err := h.themeUC.GetThemes(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"themes": themes,
	}, &utils.Meta{
		Total: len(themes),
	})
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
)

// StatsHandler serves the admin platform overview.
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetPlatformStats godoc
// @Summary Platform statistics
// @Description Company, student and visit counts plus the top companies ranking
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/stats [get]
func (h *StatsHandler) GetPlatformStats(c *fiber.Ctx) error {
	stats, err := h.statsUC.GetPlatformStats(c.Context())
	if err != nil {
		h.logger.Error("Failed to get platform stats", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}

// RefreshPlatformStats recomputes the overview, bypassing the cache.
func (h *StatsHandler) RefreshPlatformStats(c *fiber.Ctx) error {
	stats, err := h.statsUC.RefreshPlatformStats(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}

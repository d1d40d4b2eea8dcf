package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/delivery/http/middleware"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
)

// FavoriteHandler manages the caller's company bookmarks.
type FavoriteHandler struct {
	favoriteUC *usecase.FavoriteUseCase
	logger     *zap.Logger
}

func NewFavoriteHandler(favoriteUC *usecase.FavoriteUseCase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUC: favoriteUC,
		logger:     logger,
	}
}

// List returns the caller's bookmarks.
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	favorites, err := h.favoriteUC.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"favorites": favorites,
	}, &utils.Meta{
		Total: len(favorites),
	})
}

// Add bookmarks a company; re-adding is a no-op.
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.favoriteUC.Add(c.Context(), middleware.UserID(c), companyID); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"favorited": true}, nil)
}

// Remove drops a bookmark.
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.favoriteUC.Remove(c.Context(), middleware.UserID(c), companyID); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"favorited": false}, nil)
}

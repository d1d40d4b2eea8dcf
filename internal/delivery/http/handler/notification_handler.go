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

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	notificationUC *usecase.NotificationUseCase
	logger         *zap.Logger
}

func NewNotificationHandler(notificationUC *usecase.NotificationUseCase, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: notificationUC,
		logger:         logger,
	}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.notificationUC.ListForUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"notifications": notifications,
	}, &utils.Meta{
		Total: len(notifications),
	})
}

// MarkRead flags one notification as seen.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.notificationUC.MarkRead(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"read": true}, nil)
}

package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/delivery/http/middleware"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/validator"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase/dto"
)

// UserHandler covers the visitor profile, the password reset request and
// the visitor dashboard.
type UserHandler struct {
	userUC      *usecase.UserUseCase
	bookingUC   *usecase.BookingUseCase
	favoriteUC  *usecase.FavoriteUseCase
	directoryUC *usecase.DirectoryUseCase
	logger      *zap.Logger
}

func NewUserHandler(
	userUC *usecase.UserUseCase,
	bookingUC *usecase.BookingUseCase,
	favoriteUC *usecase.FavoriteUseCase,
	directoryUC *usecase.DirectoryUseCase,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		userUC:      userUC,
		bookingUC:   bookingUC,
		favoriteUC:  favoriteUC,
		directoryUC: directoryUC,
		logger:      logger,
	}
}

// GetProfile returns the caller's account.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.userUC.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// ListUsers returns all accounts for the admin panel.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userUC.ListUsers(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, users, &utils.Meta{Total: len(users)})
}

// UpdateProfile edits the caller's account fields.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.UpdateProfile(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// RequestPasswordReset godoc
// @Summary Request a password reset mail
// @Description Always returns success, so the endpoint cannot be used to probe for accounts
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Account email"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/auth/password-reset [post]
func (h *UserHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.userUC.RequestPasswordReset(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"sent": true}, nil)
}

// GetDashboard godoc
// @Summary Visitor dashboard
// @Description Upcoming and past bookings plus bookmarked companies
// @Tags Users
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/me/dashboard [get]
func (h *UserHandler) GetDashboard(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	details, err := h.bookingUC.ListForUser(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	now := time.Now()
	dashboard := dto.VisitorDashboardResponse{
		Upcoming:  make([]dto.BookingDetail, 0),
		Past:      make([]dto.BookingDetail, 0),
		Favorites: make([]dto.DirectoryEntry, 0),
	}
	for _, detail := range details {
		if detail.Slot != nil && detail.Slot.IsPast(now) {
			dashboard.Past = append(dashboard.Past, detail)
		} else {
			dashboard.Upcoming = append(dashboard.Upcoming, detail)
		}
	}

	favorites, err := h.favoriteUC.List(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	for _, favorite := range favorites {
		companyDetail, err := h.directoryUC.GetCompanyDetail(c.Context(), favorite.CompanyID)
		if err != nil {
			// A bookmarked company may have been unapproved since.
			continue
		}
		dashboard.Favorites = append(dashboard.Favorites, dto.DirectoryEntry{
			Company:      companyDetail.Company,
			Theme:        companyDetail.Theme,
			Photos:       companyDetail.Photos,
			Slots:        companyDetail.Slots,
			NextSlot:     domain.NextUpcomingSlot(companyDetail.Slots, now),
			HasAvailable: domain.HasAvailableSpot(companyDetail.Slots),
		})
	}

	return utils.SendSuccess(c, dashboard, nil)
}

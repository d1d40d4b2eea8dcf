package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/utils"
)

const (
	localUserID = "auth_user_id"
	localRole   = "auth_role"
)

// Claims is the token payload issued by the auth frontend.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Auth validates the bearer token and stores the caller's identity on the
// request context.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(
			strings.TrimPrefix(header, "Bearer "),
			claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			},
		)
		if err != nil || !token.Valid {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		c.Locals(localUserID, userID)
		c.Locals(localRole, domain.UserRole(claims.Role))
		return c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after Auth.
func RequireRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(localRole).(domain.UserRole)
		if !ok {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return utils.SendError(c, apperrors.ErrForbidden)
	}
}

// APIKey protects the server-to-server endpoints with a shared key.
func APIKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("X-API-Key")
		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's id. Zero when Auth did not run.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}

// Role returns the authenticated caller's role.
func Role(c *fiber.Ctx) domain.UserRole {
	role, _ := c.Locals(localRole).(domain.UserRole)
	return role
}

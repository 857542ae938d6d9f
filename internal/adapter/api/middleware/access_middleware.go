package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/logger"
)

// AccessMiddleware loads the caller's account and applies Role.Can. It runs
// after AuthMiddleware.
type AccessMiddleware struct {
	userRepo repository.UserRepository
}

func NewAccessMiddleware(userRepo repository.UserRepository) *AccessMiddleware {
	return &AccessMiddleware{
		userRepo: userRepo,
	}
}

func (m *AccessMiddleware) loadUser(c echo.Context) (*entity.User, error) {
	uid, ok := c.Get("uid").(string)
	if !ok || uid == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid session")
	}

	user, err := m.userRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Account no longer exists")
		}
		logger.Error("Failed to load user %s: %v", uid, err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify privileges").SetInternal(err)
	}
	if !user.Active {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Account is disabled")
	}
	return user, nil
}

// Require admits active users whose role grants capability.
func (m *AccessMiddleware) Require(capability entity.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := m.loadUser(c)
			if err != nil {
				return err
			}
			if !user.Role.Can(capability) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient privileges")
			}
			c.Set("user", user)
			return next(c)
		}
	}
}

// Active admits any active signed-in user.
func (m *AccessMiddleware) Active(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.loadUser(c)
		if err != nil {
			return err
		}
		c.Set("user", user)
		return next(c)
	}
}

// Optional loads the user for public routes that show more to staff.
func (m *AccessMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get("uid").(string); ok {
			if user, err := m.loadUser(c); err == nil {
				c.Set("user", user)
			}
		}
		return next(c)
	}
}

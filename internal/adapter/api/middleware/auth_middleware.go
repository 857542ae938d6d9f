package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tamilsociety/internal/infrastructure/auth"
)

// SessionCookie carries the same token as the Authorization header.
const SessionCookie = "session"

type AuthMiddleware struct {
	tokens *auth.TokenService
}

func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// tokenFrom reads a bearer token, falling back to the session cookie.
func tokenFrom(c echo.Context) (string, error) {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", nil
}

func (m *AuthMiddleware) setClaims(c echo.Context, token string) error {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
	c.Set("uid", claims.UID)
	c.Set("role", claims.Role)
	return nil
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := tokenFrom(c)
		if err != nil {
			return err
		}
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		if err := m.setClaims(c, token); err != nil {
			return err
		}
		return next(c)
	}
}

// Optional sets the identity when a valid token is present and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, err := tokenFrom(c); err == nil && token != "" {
			_ = m.setClaims(c, token)
		}
		return next(c)
	}
}

// AuthenticateWebSocket also accepts ?token=, since browsers cannot set
// headers on a websocket handshake.
func (m *AuthMiddleware) AuthenticateWebSocket(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := tokenFrom(c)
		if err != nil {
			return err
		}
		if token == "" {
			token = c.QueryParam("token")
		}
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		if err := m.setClaims(c, token); err != nil {
			return err
		}
		return next(c)
	}
}

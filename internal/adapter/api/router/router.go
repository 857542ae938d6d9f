package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware, limiter *ratelimit.RateLimiter) {
	e.Use(middleware.RateLimit(limiter, ratelimit.ActionGeneral))

	SetupHealthRouter(e)
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupCatalogRouter(e, authMiddleware, accessMiddleware)
	for _, kind := range []entity.ProgramKind{entity.ProgramKindProject, entity.ProgramKindActivity, entity.ProgramKindInitiative} {
		SetupProgramRouter(e, kind, authMiddleware, accessMiddleware)
	}
	SetupOrderRouter(e, authMiddleware, accessMiddleware)
	SetupContentRouter(e, authMiddleware, accessMiddleware)
	SetupPaymentSettingsRouter(e, authMiddleware, accessMiddleware)
	SetupFileRouter(e, authMiddleware, accessMiddleware, limiter)
	SetupApplicationRouter(e, authMiddleware, accessMiddleware, limiter)
	SetupCartRouter(e, authMiddleware, accessMiddleware)
	SetupAdminRouter(e, authMiddleware, accessMiddleware)
}

// optional attaches the caller's identity to public routes when present.
func optional(authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{authMiddleware.Optional, accessMiddleware.Optional}
}

// requires authenticates the caller and checks one capability.
func requires(authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware, capability entity.Capability) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{authMiddleware.Authenticate, accessMiddleware.Require(capability)}
}

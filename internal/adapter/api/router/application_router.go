package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/infrastructure/ratelimit"
)

func SetupApplicationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware, limiter *ratelimit.RateLimiter) {
	applicationHandler := handler.GetApplicationHandler()

	e.POST("/api/applications", applicationHandler.Submit, middleware.RateLimit(limiter, ratelimit.ActionApplication))

	admin := e.Group("/api/admin/applications")
	admin.Use(requires(authMiddleware, accessMiddleware, entity.CapReviewForms)...)

	admin.GET("", applicationHandler.List)
	admin.GET("/:id", applicationHandler.Get)
	admin.PUT("/:id", applicationHandler.Review)
	admin.DELETE("/:id", applicationHandler.Delete)
}

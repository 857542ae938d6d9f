package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/api/auth")

	// Public routes
	throttled := middleware.RateLimit(limiter, ratelimit.ActionAuth)
	auth.POST("/register", authHandler.Register, throttled)
	auth.POST("/login", authHandler.Login, throttled)
	auth.POST("/logout", authHandler.Logout)

	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}

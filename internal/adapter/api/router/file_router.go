package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/infrastructure/ratelimit"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware, limiter *ratelimit.RateLimiter) {
	fileHandler := handler.GetFileHandler()

	e.POST("/api/upload-transaction", fileHandler.UploadTransaction,
		authMiddleware.Authenticate,
		accessMiddleware.Active,
		middleware.RateLimit(limiter, ratelimit.ActionUpload),
	)

	admin := e.Group("/api/admin/files")
	admin.Use(requires(authMiddleware, accessMiddleware, entity.CapManageFiles)...)

	admin.GET("", fileHandler.ListFiles)
	admin.DELETE("", fileHandler.DeleteFiles)
}

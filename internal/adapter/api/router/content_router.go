package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
)

func SetupContentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	contentHandler := handler.GetContentHandler()

	e.GET("/api/website-content", contentHandler.ListPublic)

	admin := e.Group("/api/admin/website-content")
	admin.Use(requires(authMiddleware, accessMiddleware, entity.CapManageContent)...)

	admin.GET("", contentHandler.ListAdmin)
	admin.POST("", contentHandler.Create)
	admin.GET("/:id", contentHandler.Get)
	admin.PUT("/:id", contentHandler.Update)
	admin.DELETE("/:id", contentHandler.Delete)
}

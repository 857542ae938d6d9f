package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
)

func SetupPaymentSettingsRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	settingsHandler := handler.GetPaymentSettingsHandler()

	e.GET("/api/payment-settings", settingsHandler.GetPublic)

	admin := e.Group("/api/admin/payment-settings")
	admin.Use(requires(authMiddleware, accessMiddleware, entity.CapManageSettings)...)

	admin.GET("", settingsHandler.Get)
	admin.PUT("", settingsHandler.Update)
}

package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	adminHandler := handler.GetAdminHandler()
	wsHandler := handler.GetWebSocketHandler()

	admin := e.Group("/api/admin")
	dashboard := requires(authMiddleware, accessMiddleware, entity.CapViewDashboard)

	admin.GET("/stats", adminHandler.GetStats, dashboard...)
	admin.GET("/activity", adminHandler.ListActivity, dashboard...)

	e.GET("/ws/admin/activity", wsHandler.ActivityFeed,
		authMiddleware.AuthenticateWebSocket,
		accessMiddleware.Require(entity.CapViewDashboard),
	)
}

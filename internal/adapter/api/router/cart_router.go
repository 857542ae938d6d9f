package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	cartHandler := handler.GetCartHandler()

	cart := e.Group("/api/cart")
	cart.Use(requires(authMiddleware, accessMiddleware, entity.CapPlaceOrders)...)

	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:productId", cartHandler.SetQuantity)
	cart.DELETE("/items/:productId", cartHandler.RemoveItem)
}

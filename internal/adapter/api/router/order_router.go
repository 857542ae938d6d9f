package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	orderHandler := handler.GetOrderHandler()

	// Customers see their own orders; order managers see all of them.
	orders := e.Group("/api/orders")
	orders.Use(authMiddleware.Authenticate)
	orders.Use(accessMiddleware.Active)

	orders.POST("", orderHandler.CreateOrder, accessMiddleware.Require(entity.CapPlaceOrders))
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/number/:orderNumber", orderHandler.GetOrderByNumber)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.POST("/:id/verify", orderHandler.VerifyPayment, accessMiddleware.Require(entity.CapVerifyPayments))

	// Admin endpoints
	admin := e.Group("/api/purchased-books")
	admin.Use(requires(authMiddleware, accessMiddleware, entity.CapManageOrders)...)

	admin.GET("", orderHandler.ListOrders)
	admin.GET("/:id", orderHandler.GetOrder)
	admin.PUT("/:id", orderHandler.UpdateOrder)
	admin.DELETE("/:id", orderHandler.DeleteOrder)
}

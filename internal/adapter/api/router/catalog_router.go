package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
)

func SetupCatalogRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	catalogHandler := handler.GetCatalogHandler()
	admin := requires(authMiddleware, accessMiddleware, entity.CapManageCatalog)

	books := e.Group("/api/books")
	books.GET("/export", catalogHandler.ExportBooks, admin...)
	books.GET("", catalogHandler.ListBooks, optional(authMiddleware, accessMiddleware)...)
	books.GET("/:id", catalogHandler.GetBook, optional(authMiddleware, accessMiddleware)...)
	books.POST("", catalogHandler.CreateBook, admin...)
	books.PUT("/:id", catalogHandler.UpdateBook, admin...)
	books.DELETE("/:id", catalogHandler.DeleteBook, admin...)

	ebooks := e.Group("/api/ebooks")
	ebooks.GET("", catalogHandler.ListEbooks, optional(authMiddleware, accessMiddleware)...)
	ebooks.GET("/:id", catalogHandler.GetEbook, optional(authMiddleware, accessMiddleware)...)
	ebooks.POST("", catalogHandler.CreateEbook, admin...)
	ebooks.PUT("/:id", catalogHandler.UpdateEbook, admin...)
	ebooks.DELETE("/:id", catalogHandler.DeleteEbook, admin...)

	posters := e.Group("/api/posters")
	posters.GET("", catalogHandler.ListPosters, optional(authMiddleware, accessMiddleware)...)
	posters.GET("/:id", catalogHandler.GetPoster, optional(authMiddleware, accessMiddleware)...)
	posters.POST("", catalogHandler.CreatePoster, admin...)
	posters.PUT("/:id", catalogHandler.UpdatePoster, admin...)
	posters.DELETE("/:id", catalogHandler.DeletePoster, admin...)
}

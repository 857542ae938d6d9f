package router

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/adapter/api/handler"
	"tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/domain/entity"
)

// SetupProgramRouter mounts one program kind under /api/<plural>.
func SetupProgramRouter(e *echo.Echo, kind entity.ProgramKind, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	programHandler := handler.GetProgramHandler(kind)
	if programHandler == nil {
		return
	}
	public := optional(authMiddleware, accessMiddleware)
	admin := requires(authMiddleware, accessMiddleware, entity.CapManageContent)

	programs := e.Group("/api/" + kind.Plural())
	programs.GET("", programHandler.List, public...)
	programs.GET("/:id", programHandler.Get, public...)
	programs.GET("/:id/images", programHandler.ListImages, public...)

	programs.POST("", programHandler.Create, admin...)
	programs.PUT("/:id", programHandler.Update, admin...)
	programs.DELETE("/:id", programHandler.Delete, admin...)
	programs.POST("/:id/images", programHandler.UploadImage, admin...)
	programs.PUT("/:id/images/:imageId/primary", programHandler.SetPrimaryImage, admin...)
	programs.DELETE("/:id/images/:imageId", programHandler.DeleteImage, admin...)
}

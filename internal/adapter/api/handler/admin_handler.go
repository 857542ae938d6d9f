package handler

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
	"tamilsociety/pkg/utils"
)

type AdminHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
	activityUseCase  *usecase.ActivityUseCase
}

func NewAdminHandler(dashboardUseCase *usecase.DashboardUseCase, activityUseCase *usecase.ActivityUseCase) *AdminHandler {
	return &AdminHandler{
		dashboardUseCase: dashboardUseCase,
		activityUseCase:  activityUseCase,
	}
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.dashboardUseCase.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

func (h *AdminHandler) ListActivity(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	entries, total, err := h.activityUseCase.List(c.Request().Context(), c.QueryParam("entity_type"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, entries, total, pagination.Page, pagination.PageSize)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
	"tamilsociety/pkg/utils"
)

type ApplicationHandler struct {
	applicationUseCase *usecase.ApplicationUseCase
}

func NewApplicationHandler(applicationUseCase *usecase.ApplicationUseCase) *ApplicationHandler {
	return &ApplicationHandler{
		applicationUseCase: applicationUseCase,
	}
}

// Submit accepts multipart form fields with an optional "resume" file, or
// the same fields as JSON without one.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req usecase.SubmitApplicationInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	resume, file, err := formUpload(c, "resume", false)
	if err != nil {
		return response.Error(c, err)
	}
	if file != nil {
		defer file.Close()
	}

	application, err := h.applicationUseCase.Submit(c.Request().Context(), req, resume)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, application)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	applications, total, err := h.applicationUseCase.List(c.Request().Context(), usecase.ApplicationListInput{
		Status:   entity.ApplicationStatus(c.QueryParam("status")),
		Position: c.QueryParam("position"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Page:     pagination.Page,
		Limit:    pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, applications, total, pagination.Page, pagination.PageSize)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	application, err := h.applicationUseCase.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, application)
}

func (h *ApplicationHandler) Review(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req usecase.ReviewApplicationInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	application, err := h.applicationUseCase.Review(c.Request().Context(), actorID(c), id, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, application)
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.applicationUseCase.Delete(c.Request().Context(), actorID(c), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Application deleted"})
}

package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
	"tamilsociety/pkg/utils"
)

// ProgramHandler serves one program kind: projects, activities or
// initiatives.
type ProgramHandler struct {
	programUseCase *usecase.ProgramUseCase
}

func NewProgramHandler(programUseCase *usecase.ProgramUseCase) *ProgramHandler {
	return &ProgramHandler{
		programUseCase: programUseCase,
	}
}

func (h *ProgramHandler) List(c echo.Context) error {
	lang, err := languageFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	pagination := utils.GetPaginationParams(c)

	programs, total, err := h.programUseCase.List(c.Request().Context(), usecase.ProgramListInput{
		Bureau:             c.QueryParam("bureau"),
		Status:             c.QueryParam("status"),
		Search:             c.QueryParam("search"),
		Featured:           boolQuery(c, "featured"),
		IncludeUnpublished: can(c, entity.CapManageContent),
		Sort:               c.QueryParam("sort"),
		Page:               pagination.Page,
		Limit:              pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, localizeAll(lang, programs), total, pagination.Page, pagination.PageSize)
}

func (h *ProgramHandler) Get(c echo.Context) error {
	lang, err := languageFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	program, err := h.programUseCase.Get(c.Request().Context(), id, can(c, entity.CapManageContent))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lang.one(program))
}

func (h *ProgramHandler) Create(c echo.Context) error {
	var req usecase.ProgramInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	program, err := h.programUseCase.Create(c.Request().Context(), actorID(c), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, program)
}

func (h *ProgramHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req usecase.ProgramInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	program, err := h.programUseCase.Update(c.Request().Context(), actorID(c), id, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, program)
}

func (h *ProgramHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.programUseCase.Delete(c.Request().Context(), actorID(c), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": h.programUseCase.Kind().Label() + " deleted"})
}

func (h *ProgramHandler) ListImages(c echo.Context) error {
	lang, err := languageFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	// Images of unpublished programs stay hidden from the public.
	if _, err := h.programUseCase.Get(c.Request().Context(), id, can(c, entity.CapManageContent)); err != nil {
		return response.Error(c, err)
	}

	images, err := h.programUseCase.ListImages(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, localizeAll(lang, images))
}

// UploadImage takes a multipart "image" plus optional caption_en,
// caption_ta and is_primary fields.
func (h *ProgramHandler) UploadImage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	upload, file, err := formUpload(c, "image", true)
	if err != nil {
		return response.Error(c, err)
	}
	defer file.Close()

	primary, _ := strconv.ParseBool(c.FormValue("is_primary"))
	image, err := h.programUseCase.UploadImage(c.Request().Context(), actorID(c), id, *upload, usecase.UploadImageInput{
		Caption: entity.Bilingual{
			En: c.FormValue("caption_en"),
			Ta: c.FormValue("caption_ta"),
		},
		MakePrimary: primary,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, image)
}

func (h *ProgramHandler) SetPrimaryImage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		return response.Error(c, err)
	}

	image, err := h.programUseCase.SetPrimaryImage(c.Request().Context(), actorID(c), id, imageID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, image)
}

func (h *ProgramHandler) DeleteImage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.programUseCase.DeleteImage(c.Request().Context(), actorID(c), id, imageID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Image deleted"})
}

package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
	"tamilsociety/pkg/utils"
)

type ContentHandler struct {
	contentUseCase *usecase.WebsiteContentUseCase
}

func NewContentHandler(contentUseCase *usecase.WebsiteContentUseCase) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
	}
}

func (h *ContentHandler) list(c echo.Context, includeHidden bool) error {
	lang, err := languageFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	pageNum, _ := strconv.Atoi(c.QueryParam("page_num"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	pagination := utils.NewPaginationParams(pageNum, limit)

	sections, total, err := h.contentUseCase.List(c.Request().Context(), usecase.ContentListInput{
		Page:          c.QueryParam("page"),
		SectionKey:    c.QueryParam("section_key"),
		IncludeHidden: includeHidden,
		Sort:          c.QueryParam("sort"),
		PageNum:       pagination.Page,
		Limit:         pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, localizeAll(lang, sections), total, pagination.Page, pagination.PageSize)
}

// ListPublic returns active sections. "page" names the site page here, so
// pagination reads page_num instead.
func (h *ContentHandler) ListPublic(c echo.Context) error {
	return h.list(c, false)
}

func (h *ContentHandler) ListAdmin(c echo.Context) error {
	return h.list(c, true)
}

func (h *ContentHandler) Get(c echo.Context) error {
	lang, err := languageFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	section, err := h.contentUseCase.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lang.one(section))
}

func (h *ContentHandler) Create(c echo.Context) error {
	var req usecase.ContentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	section, err := h.contentUseCase.Create(c.Request().Context(), actorID(c), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, section)
}

func (h *ContentHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req usecase.ContentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	section, err := h.contentUseCase.Update(c.Request().Context(), actorID(c), id, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, section)
}

func (h *ContentHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.contentUseCase.Delete(c.Request().Context(), actorID(c), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Content section deleted"})
}

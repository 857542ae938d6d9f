package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
	"tamilsociety/pkg/utils"
)

// CatalogHandler serves books, ebooks and posters. The three share request
// handling and differ only in the usecase methods they call.
type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

func listItems[T entity.Localizer](c echo.Context, list func(context.Context, usecase.CatalogListInput) ([]T, int64, error)) error {
	lang, err := languageFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	pagination := utils.GetPaginationParams(c)

	items, total, err := list(c.Request().Context(), usecase.CatalogListInput{
		Search:          c.QueryParam("search"),
		Category:        c.QueryParam("category"),
		Featured:        boolQuery(c, "featured"),
		IncludeInactive: can(c, entity.CapManageCatalog),
		Sort:            c.QueryParam("sort"),
		Page:            pagination.Page,
		Limit:           pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, localizeAll(lang, items), total, pagination.Page, pagination.PageSize)
}

func getItem[T entity.Localizer](c echo.Context, get func(context.Context, primitive.ObjectID, bool) (T, error)) error {
	lang, err := languageFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	item, err := get(c.Request().Context(), id, can(c, entity.CapManageCatalog))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lang.one(item))
}

func bindCatalogInput(c echo.Context) (usecase.CatalogInput, error) {
	var req usecase.CatalogInput
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

func createItem[T any](c echo.Context, create func(context.Context, primitive.ObjectID, usecase.CatalogInput) (T, error)) error {
	req, err := bindCatalogInput(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := create(c.Request().Context(), actorID(c), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func updateItem[T any](c echo.Context, update func(context.Context, primitive.ObjectID, primitive.ObjectID, usecase.CatalogInput) (T, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	req, err := bindCatalogInput(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := update(c.Request().Context(), actorID(c), id, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func deleteItem(c echo.Context, remove func(context.Context, primitive.ObjectID, primitive.ObjectID) error, label string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := remove(c.Request().Context(), actorID(c), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": label + " deleted"})
}

func (h *CatalogHandler) ListBooks(c echo.Context) error {
	return listItems(c, h.catalogUseCase.ListBooks)
}

func (h *CatalogHandler) GetBook(c echo.Context) error {
	return getItem(c, h.catalogUseCase.GetBook)
}

func (h *CatalogHandler) CreateBook(c echo.Context) error {
	return createItem(c, h.catalogUseCase.CreateBook)
}

func (h *CatalogHandler) UpdateBook(c echo.Context) error {
	return updateItem(c, h.catalogUseCase.UpdateBook)
}

func (h *CatalogHandler) DeleteBook(c echo.Context) error {
	return deleteItem(c, h.catalogUseCase.DeleteBook, "Book")
}

// ExportBooks streams the catalog as CSV or JSON with the requested columns.
func (h *CatalogHandler) ExportBooks(c echo.Context) error {
	result, err := h.catalogUseCase.ExportBooks(c.Request().Context(), c.QueryParam("format"), c.QueryParam("fields"))
	if err != nil {
		return response.Error(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	return c.Blob(http.StatusOK, result.ContentType, result.Body)
}

func (h *CatalogHandler) ListEbooks(c echo.Context) error {
	return listItems(c, h.catalogUseCase.ListEbooks)
}

func (h *CatalogHandler) GetEbook(c echo.Context) error {
	return getItem(c, h.catalogUseCase.GetEbook)
}

func (h *CatalogHandler) CreateEbook(c echo.Context) error {
	return createItem(c, h.catalogUseCase.CreateEbook)
}

func (h *CatalogHandler) UpdateEbook(c echo.Context) error {
	return updateItem(c, h.catalogUseCase.UpdateEbook)
}

func (h *CatalogHandler) DeleteEbook(c echo.Context) error {
	return deleteItem(c, h.catalogUseCase.DeleteEbook, "Ebook")
}

func (h *CatalogHandler) ListPosters(c echo.Context) error {
	return listItems(c, h.catalogUseCase.ListPosters)
}

func (h *CatalogHandler) GetPoster(c echo.Context) error {
	return getItem(c, h.catalogUseCase.GetPoster)
}

func (h *CatalogHandler) CreatePoster(c echo.Context) error {
	return createItem(c, h.catalogUseCase.CreatePoster)
}

func (h *CatalogHandler) UpdatePoster(c echo.Context) error {
	return updateItem(c, h.catalogUseCase.UpdatePoster)
}

func (h *CatalogHandler) DeletePoster(c echo.Context) error {
	return deleteItem(c, h.catalogUseCase.DeletePoster, "Poster")
}

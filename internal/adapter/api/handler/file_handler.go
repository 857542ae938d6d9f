package handler

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
)

type FileHandler struct {
	fileUseCase *usecase.FileUseCase
}

func NewFileHandler(fileUseCase *usecase.FileUseCase) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
	}
}

// UploadTransaction stores the payment proof sent as multipart "file".
func (h *FileHandler) UploadTransaction(c echo.Context) error {
	upload, file, err := formUpload(c, "file", true)
	if err != nil {
		return response.Error(c, err)
	}
	defer file.Close()

	result, err := h.fileUseCase.UploadTransactionProof(c.Request().Context(), *upload)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *FileHandler) ListFiles(c echo.Context) error {
	inventory, err := h.fileUseCase.ListFiles(c.Request().Context(), c.QueryParam("module"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, inventory)
}

type deleteFilesRequest struct {
	Files []usecase.FileRef `json:"files" validate:"required,min=1,max=100,dive"`
}

// DeleteFiles reports success per file; one failure does not stop the rest.
func (h *FileHandler) DeleteFiles(c echo.Context) error {
	var req deleteFilesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	results, err := h.fileUseCase.DeleteFiles(c.Request().Context(), currentUser(c), req.Files)
	if err != nil {
		return response.Error(c, err)
	}

	deleted := 0
	for _, r := range results {
		if r.Success {
			deleted++
		}
	}

	return response.Success(c, map[string]interface{}{
		"results": results,
		"deleted": deleted,
		"failed":  len(results) - deleted,
	})
}

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/logger"
	"tamilsociety/pkg/utils"
)

type FileUseCase struct {
	store    service.FileStorage
	settings SettingsProvider
	activity ActivityRecorder
}

func NewFileUseCase(store service.FileStorage, settings SettingsProvider, activity ActivityRecorder) *FileUseCase {
	return &FileUseCase{
		store:    store,
		settings: settings,
		activity: activity,
	}
}

type UploadResult struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Module      string `json:"module"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// readUpload buffers the upload within maxBytes and matches its sniffed
// type against allowed. The declared Content-Type header is ignored.
func readUpload(upload Upload, maxBytes int64, allowed []string) ([]byte, string, error) {
	tooLarge := errors.PayloadTooLarge(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxBytes/(1024*1024)))
	if upload.Size > maxBytes {
		return nil, "", tooLarge
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, maxBytes+1))
	if err != nil {
		return nil, "", errors.BadRequest("Unable to read file", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", tooLarge
	}
	if len(data) == 0 {
		return nil, "", errors.BadRequest("File is empty", nil)
	}

	detected := mimetype.Detect(data)
	for _, t := range allowed {
		if detected.Is(t) {
			return data, t, nil
		}
	}
	return nil, "", errors.BadRequest(fmt.Sprintf("File type %s is not allowed", detected.String()), nil)
}

func (uc *FileUseCase) save(ctx context.Context, module string, data []byte, contentType string) (*service.StoredFile, error) {
	stored, err := uc.store.Save(ctx, module, utils.NewFileName(contentType), contentType, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Internal("Failed to store file", err)
	}
	return stored, nil
}

// UploadTransactionProof stores a payment proof under the limits configured
// in the payment settings.
func (uc *FileUseCase) UploadTransactionProof(ctx context.Context, upload Upload) (*UploadResult, error) {
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	data, contentType, err := readUpload(upload, settings.MaxFileSizeBytes(), settings.General.AllowedFileTypes)
	if err != nil {
		return nil, err
	}

	stored, err := uc.save(ctx, service.ModuleTransactions, data, contentType)
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction proof stored: %s (%d bytes, %s)", stored.Name, stored.Size, contentType)
	return &UploadResult{
		URL:         stored.URL,
		Filename:    stored.Name,
		Module:      stored.Module,
		Size:        stored.Size,
		ContentType: contentType,
	}, nil
}

type ModuleInventory struct {
	Module    string               `json:"module"`
	Count     int                  `json:"count"`
	TotalSize int64                `json:"total_size"`
	Files     []service.StoredFile `json:"files"`
}

type FileInventory struct {
	Modules    []ModuleInventory `json:"modules"`
	TotalFiles int               `json:"total_files"`
	TotalSize  int64             `json:"total_size"`
}

// ListFiles inventories one module, or all of them when module is empty.
func (uc *FileUseCase) ListFiles(ctx context.Context, module string) (*FileInventory, error) {
	modules := service.Modules
	if module != "" {
		if !service.IsValidModule(module) {
			return nil, errors.BadRequest(fmt.Sprintf("Unknown module %q", module), nil)
		}
		modules = []string{module}
	}

	results := make([]ModuleInventory, len(modules))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range modules {
		i, m := i, m
		g.Go(func() error {
			files, err := uc.store.List(gctx, m)
			if err != nil {
				return err
			}
			inv := ModuleInventory{Module: m, Count: len(files), Files: files}
			for _, f := range files {
				inv.TotalSize += f.Size
			}
			results[i] = inv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Internal("Failed to list files", err)
	}

	inventory := &FileInventory{Modules: results}
	for _, r := range results {
		inventory.TotalFiles += r.Count
		inventory.TotalSize += r.TotalSize
	}
	return inventory, nil
}

type FileRef struct {
	Module string `json:"module" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

type FileDeleteResult struct {
	Module  string `json:"module"`
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DeleteFiles removes each file independently and reports per-file outcome.
func (uc *FileUseCase) DeleteFiles(ctx context.Context, actor *entity.User, refs []FileRef) ([]FileDeleteResult, error) {
	if len(refs) == 0 {
		return nil, errors.BadRequest("No files specified", nil)
	}

	results := make([]FileDeleteResult, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref FileRef) {
			defer wg.Done()
			res := FileDeleteResult{Module: ref.Module, Name: ref.Name}
			if err := uc.store.Delete(ctx, ref.Module, ref.Name); err != nil {
				res.Error = err.Error()
				logger.Warn("Failed to delete %s/%s: %v", ref.Module, ref.Name, err)
			} else {
				res.Success = true
			}
			results[i] = res
		}(i, ref)
	}
	wg.Wait()

	deleted := 0
	for _, r := range results {
		if r.Success {
			deleted++
		}
	}
	record(ctx, uc.activity, entity.ActivityFilesDeleted, "file", "", actor.ID.Hex(),
		fmt.Sprintf("%d of %d files deleted", deleted, len(refs)))

	return results, nil
}

// deleteQuietly removes a stored file, logging anything but a missing file.
func deleteQuietly(ctx context.Context, store service.FileStorage, module, name string) {
	if name == "" {
		return
	}
	if err := store.Delete(ctx, module, name); err != nil && err != service.ErrFileNotFound {
		logger.Warn("Failed to delete %s/%s: %v", module, name, err)
	}
}

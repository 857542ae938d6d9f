package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/errors"
)

func newFileUseCase() (*FileUseCase, *memoryStore, *recordingActivity) {
	settings := entity.DefaultPaymentSettings()
	settings.General.MaxFileSizeMB = 1
	store := newMemoryStore()
	activity := &recordingActivity{}
	return NewFileUseCase(store, fakeSettings{settings: settings}, activity), store, activity
}

func TestUploadTransactionProof(t *testing.T) {
	uc, store, _ := newFileUseCase()

	res, err := uc.UploadTransactionProof(context.Background(), uploadOf("receipt.png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, service.ModuleTransactions, res.Module)
	assert.Equal(t, int64(len(pngBytes)), res.Size)
	assert.Contains(t, res.Filename, ".png")
	assert.True(t, store.has(service.ModuleTransactions, res.Filename))
}

func TestUploadTransactionProof_Oversize(t *testing.T) {
	uc, store, _ := newFileUseCase()
	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 1024*1024)...)

	_, err := uc.UploadTransactionProof(context.Background(), uploadOf("big.png", big))
	require.Error(t, err)
	assert.Equal(t, 413, errors.StatusOf(err))

	// A lying Size header is caught while reading.
	lying := Upload{Filename: "big.png", Size: 10, Content: bytes.NewReader(big)}
	_, err = uc.UploadTransactionProof(context.Background(), lying)
	assert.Equal(t, 413, errors.StatusOf(err))
	assert.Zero(t, store.count())
}

func TestUploadTransactionProof_SniffsType(t *testing.T) {
	uc, _, _ := newFileUseCase()

	_, err := uc.UploadTransactionProof(context.Background(), uploadOf("receipt.png", []byte("#!/bin/sh\necho hi\n")))
	require.Error(t, err)
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.UploadTransactionProof(context.Background(), uploadOf("empty.png", nil))
	assert.Equal(t, 400, errors.StatusOf(err))
}

func TestListFiles(t *testing.T) {
	uc, store, _ := newFileUseCase()
	ctx := context.Background()
	_, _ = store.Save(ctx, service.ModuleTransactions, "a.png", "image/png", bytes.NewReader([]byte("12345")))
	_, _ = store.Save(ctx, service.ModuleProjects, "b.png", "image/png", bytes.NewReader([]byte("123")))

	inv, err := uc.ListFiles(ctx, "")
	require.NoError(t, err)
	assert.Len(t, inv.Modules, len(service.Modules))
	assert.Equal(t, 2, inv.TotalFiles)
	assert.Equal(t, int64(8), inv.TotalSize)

	inv, err = uc.ListFiles(ctx, service.ModuleProjects)
	require.NoError(t, err)
	require.Len(t, inv.Modules, 1)
	assert.Equal(t, 1, inv.Modules[0].Count)

	_, err = uc.ListFiles(ctx, "secrets")
	assert.Equal(t, 400, errors.StatusOf(err))
}

func TestDeleteFiles_ReportsPerFile(t *testing.T) {
	uc, store, activity := newFileUseCase()
	ctx := context.Background()
	_, _ = store.Save(ctx, service.ModuleTransactions, "a.png", "image/png", bytes.NewReader([]byte("x")))
	admin := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleAdmin}

	results, err := uc.DeleteFiles(ctx, admin, []FileRef{
		{Module: service.ModuleTransactions, Name: "a.png"},
		{Module: service.ModuleTransactions, Name: "missing.png"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, []string{entity.ActivityFilesDeleted}, activity.actions())

	_, err = uc.DeleteFiles(ctx, admin, nil)
	assert.Equal(t, 400, errors.StatusOf(err))
}

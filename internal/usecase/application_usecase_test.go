package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/errors"
)

func submitInput() SubmitApplicationInput {
	return SubmitApplicationInput{
		Name:     "Arun",
		Email:    "Arun@Example.com ",
		Phone:    "+91 98400 00000",
		Position: "Volunteer",
	}
}

func TestSubmitApplication_WithResume(t *testing.T) {
	store := newMemoryStore()
	activity := &recordingActivity{}
	uc := NewApplicationUseCase(newFakeApplicationRepo(), store, activity)

	resume := uploadOf("cv.pdf", pdfBytes)
	app, err := uc.Submit(context.Background(), submitInput(), &resume)
	require.NoError(t, err)

	assert.Equal(t, "arun@example.com", app.Email)
	assert.Equal(t, entity.ApplicationStatusPending, app.Status)
	assert.True(t, store.has(service.ModuleApplications, app.ResumeFile))
	assert.NotEmpty(t, app.ResumeURL)
	assert.Equal(t, []string{entity.ActivityApplicationFiled}, activity.actions())
}

func TestSubmitApplication_RejectsImageResume(t *testing.T) {
	store := newMemoryStore()
	uc := NewApplicationUseCase(newFakeApplicationRepo(), store, nil)

	resume := uploadOf("cv.png", pngBytes)
	_, err := uc.Submit(context.Background(), submitInput(), &resume)
	assert.Equal(t, 400, errors.StatusOf(err))
	assert.Zero(t, store.count())

	app, err := uc.Submit(context.Background(), submitInput(), nil)
	require.NoError(t, err)
	assert.Empty(t, app.ResumeFile)
}

func TestReviewAndDeleteApplication(t *testing.T) {
	store := newMemoryStore()
	repo := newFakeApplicationRepo()
	uc := NewApplicationUseCase(repo, store, nil)
	ctx := context.Background()
	reviewer := primitive.NewObjectID()

	resume := uploadOf("cv.pdf", pdfBytes)
	app, err := uc.Submit(ctx, submitInput(), &resume)
	require.NoError(t, err)

	pending, err := uc.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	accepted := entity.ApplicationStatusAccepted
	notes := " strong candidate "
	reviewed, err := uc.Review(ctx, reviewer, app.ID, ReviewApplicationInput{Status: &accepted, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, accepted, reviewed.Status)
	assert.Equal(t, "strong candidate", reviewed.Notes)
	assert.Equal(t, reviewer, *reviewed.ReviewedBy)

	bogus := entity.ApplicationStatus("hired")
	_, err = uc.Review(ctx, reviewer, app.ID, ReviewApplicationInput{Status: &bogus})
	assert.Equal(t, 400, errors.StatusOf(err))
	_, err = uc.Review(ctx, reviewer, app.ID, ReviewApplicationInput{})
	assert.Equal(t, 400, errors.StatusOf(err))

	require.NoError(t, uc.Delete(ctx, reviewer, app.ID))
	assert.Zero(t, store.count())
	_, err = uc.Get(ctx, app.ID)
	assert.Equal(t, 404, errors.StatusOf(err))
}

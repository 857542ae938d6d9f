package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/logger"
	"tamilsociety/pkg/utils"
)

const maxResumeBytes = 5 * 1024 * 1024

var resumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var applicationSortFields = utils.TimestampSortFields(map[string]string{
	"name":     "name",
	"position": "position",
	"status":   "status",
})

type ApplicationUseCase struct {
	applicationRepo repository.ApplicationRepository
	store           service.FileStorage
	activity        ActivityRecorder
	now             func() time.Time
}

func NewApplicationUseCase(applicationRepo repository.ApplicationRepository, store service.FileStorage, activity ActivityRecorder) *ApplicationUseCase {
	return &ApplicationUseCase{
		applicationRepo: applicationRepo,
		store:           store,
		activity:        activity,
		now:             time.Now,
	}
}

type SubmitApplicationInput struct {
	Name     string `json:"name" form:"name" validate:"required,max=120"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone" validate:"required,max=32"`
	Position string `json:"position" form:"position" validate:"required,max=120"`
	Bureau   string `json:"bureau" form:"bureau" validate:"max=120"`
	Message  string `json:"message" form:"message" validate:"max=5000"`
}

// Submit stores a public form submission. resume is optional.
func (uc *ApplicationUseCase) Submit(ctx context.Context, input SubmitApplicationInput, resume *Upload) (*entity.Application, error) {
	application := &entity.Application{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    strings.TrimSpace(input.Phone),
		Position: strings.TrimSpace(input.Position),
		Bureau:   strings.TrimSpace(input.Bureau),
		Message:  strings.TrimSpace(input.Message),
		Status:   entity.ApplicationStatusPending,
	}

	if resume != nil {
		data, contentType, err := readUpload(*resume, maxResumeBytes, resumeTypes)
		if err != nil {
			return nil, err
		}
		stored, err := uc.store.Save(ctx, service.ModuleApplications, utils.NewFileName(contentType), contentType, bytes.NewReader(data))
		if err != nil {
			return nil, errors.Internal("Failed to store resume", err)
		}
		application.ResumeURL = stored.URL
		application.ResumeFile = stored.Name
	}

	if err := uc.applicationRepo.Create(ctx, application); err != nil {
		deleteQuietly(ctx, uc.store, service.ModuleApplications, application.ResumeFile)
		return nil, err
	}

	logger.Info("Application received for %s from %s", application.Position, application.Email)
	record(ctx, uc.activity, entity.ActivityApplicationFiled, "application", application.ID.Hex(), "",
		fmt.Sprintf("Application received from %s for %s", application.Name, application.Position))
	return application, nil
}

type ApplicationListInput struct {
	Status   entity.ApplicationStatus
	Position string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

func (uc *ApplicationUseCase) List(ctx context.Context, input ApplicationListInput) ([]*entity.Application, int64, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, 0, errors.BadRequest(fmt.Sprintf("Invalid status %q", input.Status), nil)
	}
	sort, err := utils.ParseSort(input.Sort, applicationSortFields)
	if err != nil {
		return nil, 0, errors.BadRequest(err.Error(), err)
	}
	p := utils.NewPaginationParams(input.Page, input.Limit)

	return uc.applicationRepo.List(ctx, repository.ApplicationFilter{
		Status:   input.Status,
		Position: strings.TrimSpace(input.Position),
		Search:   strings.TrimSpace(input.Search),
	}, repository.ListOptions{Sort: sort, Limit: p.PageSize, Offset: p.Offset})
}

func (uc *ApplicationUseCase) Get(ctx context.Context, id primitive.ObjectID) (*entity.Application, error) {
	return uc.applicationRepo.GetByID(ctx, id)
}

type ReviewApplicationInput struct {
	Status *entity.ApplicationStatus `json:"status"`
	Notes  *string                   `json:"notes" validate:"omitempty,max=5000"`
}

func (uc *ApplicationUseCase) Review(ctx context.Context, actorID, id primitive.ObjectID, input ReviewApplicationInput) (*entity.Application, error) {
	if input.Status == nil && input.Notes == nil {
		return nil, errors.BadRequest("Nothing to update", nil)
	}

	application, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errors.BadRequest(fmt.Sprintf("Invalid status %q", *input.Status), nil)
		}
		application.Status = *input.Status
	}
	if input.Notes != nil {
		application.Notes = strings.TrimSpace(*input.Notes)
	}
	now := uc.now()
	application.ReviewedBy = &actorID
	application.ReviewedAt = &now

	if err := uc.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	record(ctx, uc.activity, entity.ActivityApplicationReview, "application", id.Hex(), actorID.Hex(),
		fmt.Sprintf("Application from %s marked %s", application.Name, application.Status))
	return application, nil
}

// Delete removes the submission and its resume file.
func (uc *ApplicationUseCase) Delete(ctx context.Context, actorID, id primitive.ObjectID) error {
	application, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.applicationRepo.Delete(ctx, id); err != nil {
		return err
	}
	deleteQuietly(ctx, uc.store, service.ModuleApplications, application.ResumeFile)

	record(ctx, uc.activity, entity.ActivityApplicationReview, "application", id.Hex(), actorID.Hex(),
		fmt.Sprintf("Application from %s deleted", application.Name))
	return nil
}

func (uc *ApplicationUseCase) CountPending(ctx context.Context) (int64, error) {
	return uc.applicationRepo.Count(ctx, repository.ApplicationFilter{Status: entity.ApplicationStatusPending})
}

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

const (
	maxImageBytes   = 10 * 1024 * 1024
	thumbnailWidth  = 320
	thumbnailHeight = 320
)

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var programSortFields = utils.TimestampSortFields(map[string]string{
	"title":      "title.en",
	"title_en":   "title.en",
	"title_ta":   "title.ta",
	"start_date": "startDate",
	"end_date":   "endDate",
	"status":     "status",
	"bureau":     "bureau",
})

// ProgramUseCase serves one program kind. main builds one per kind.
type ProgramUseCase struct {
	kind        entity.ProgramKind
	programRepo repository.ProgramRepository
	imageRepo   repository.ProgramImageRepository
	store       service.FileStorage
	thumbnail   ThumbnailGenerator
	activity    ActivityRecorder
	now         func() time.Time
}

func NewProgramUseCase(
	programRepo repository.ProgramRepository,
	imageRepo repository.ProgramImageRepository,
	store service.FileStorage,
	thumbnail ThumbnailGenerator,
	activity ActivityRecorder,
) *ProgramUseCase {
	return &ProgramUseCase{
		kind:        programRepo.Kind(),
		programRepo: programRepo,
		imageRepo:   imageRepo,
		store:       store,
		thumbnail:   thumbnail,
		activity:    activity,
		now:         time.Now,
	}
}

func (uc *ProgramUseCase) Kind() entity.ProgramKind {
	return uc.kind
}

type ProgramListInput struct {
	Bureau             string
	Status             string
	Search             string
	Featured           *bool
	IncludeUnpublished bool
	Sort               string
	Page               int
	Limit              int
}

func (uc *ProgramUseCase) List(ctx context.Context, input ProgramListInput) ([]*entity.Program, int64, error) {
	filter := repository.ProgramFilter{
		Bureau:        strings.TrimSpace(input.Bureau),
		Search:        input.Search,
		Featured:      input.Featured,
		PublishedOnly: !input.IncludeUnpublished,
	}
	if input.Status != "" {
		status := entity.ProgramStatus(input.Status)
		if !status.Valid() {
			return nil, 0, errors.BadRequest(fmt.Sprintf("Invalid status %q", input.Status), nil)
		}
		filter.Status = status
	}

	sort, err := utils.ParseSort(input.Sort, programSortFields)
	if err != nil {
		return nil, 0, errors.BadRequest(err.Error(), err)
	}
	p := utils.NewPaginationParams(input.Page, input.Limit)

	return uc.programRepo.List(ctx, filter, repository.ListOptions{Sort: sort, Limit: p.PageSize, Offset: p.Offset})
}

func (uc *ProgramUseCase) Get(ctx context.Context, id primitive.ObjectID, includeUnpublished bool) (*entity.Program, error) {
	program, err := uc.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !includeUnpublished && !program.Published {
		return nil, errors.NotFound(uc.kind.Label(), nil)
	}
	return program, nil
}

type ProgramInput struct {
	Title       entity.Bilingual     `json:"title"`
	Description entity.Bilingual     `json:"description"`
	Location    entity.Bilingual     `json:"location"`
	Bureau      string               `json:"bureau" validate:"max=100"`
	Status      entity.ProgramStatus `json:"status"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	Tags        []string             `json:"tags" validate:"max=20"`
	Featured    bool                 `json:"featured"`
	Published   *bool                `json:"published"`
}

func (in *ProgramInput) normalize() error {
	if in.Title.Trimmed().En == "" {
		return errors.BadRequest("English title is required", nil)
	}
	if in.Status == "" {
		in.Status = entity.ProgramStatusPlanning
	}
	if !in.Status.Valid() {
		return errors.BadRequest(fmt.Sprintf("Invalid status %q", in.Status), nil)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return errors.BadRequest("End date cannot be before start date", nil)
	}

	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, strings.ToLower(t))
		}
	}
	in.Tags = tags
	return nil
}

func applyProgramInput(p *entity.Program, in ProgramInput) {
	p.Title = in.Title.Trimmed()
	p.Description = in.Description.Trimmed()
	p.Location = in.Location.Trimmed()
	p.Bureau = strings.TrimSpace(in.Bureau)
	p.Status = in.Status
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Tags = in.Tags
	p.Featured = in.Featured
	p.Published = in.Published == nil || *in.Published
}

func (uc *ProgramUseCase) recordChange(ctx context.Context, actorID primitive.ObjectID, id primitive.ObjectID, message string) {
	record(ctx, uc.activity, entity.ActivityProgramChanged, string(uc.kind), id.Hex(), actorID.Hex(), message)
}

func (uc *ProgramUseCase) Create(ctx context.Context, actorID primitive.ObjectID, input ProgramInput) (*entity.Program, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	program := &entity.Program{Kind: uc.kind, CreatedBy: actorID}
	applyProgramInput(program, input)

	if err := uc.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, program.ID, fmt.Sprintf("%s %q created", uc.kind.Label(), program.Title.En))
	return program, nil
}

func (uc *ProgramUseCase) Update(ctx context.Context, actorID, id primitive.ObjectID, input ProgramInput) (*entity.Program, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	program, err := uc.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProgramInput(program, input)

	if err := uc.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, program.ID, fmt.Sprintf("%s %q updated", uc.kind.Label(), program.Title.En))
	return program, nil
}

// Delete removes the program together with its images and their files.
func (uc *ProgramUseCase) Delete(ctx context.Context, actorID, id primitive.ObjectID) error {
	program, err := uc.programRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	images, err := uc.imageRepo.DeleteByParent(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range images {
		uc.deleteImageFiles(ctx, img)
	}

	if err := uc.programRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recordChange(ctx, actorID, id, fmt.Sprintf("%s %q deleted with %d images", uc.kind.Label(), program.Title.En, len(images)))
	return nil
}

func (uc *ProgramUseCase) Count(ctx context.Context) (int64, error) {
	return uc.programRepo.Count(ctx, repository.ProgramFilter{})
}

// Images

type UploadImageInput struct {
	Caption     entity.Bilingual
	MakePrimary bool
}

func (uc *ProgramUseCase) UploadImage(ctx context.Context, actorID, programID primitive.ObjectID, upload Upload, input UploadImageInput) (*entity.ProgramImage, error) {
	if _, err := uc.programRepo.GetByID(ctx, programID); err != nil {
		return nil, err
	}

	data, contentType, err := readUpload(upload, maxImageBytes, imageTypes)
	if err != nil {
		return nil, err
	}

	module := uc.kind.Plural()
	original, err := uc.store.Save(ctx, module, utils.NewFileName(contentType), contentType, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Internal("Failed to store image", err)
	}

	image := &entity.ProgramImage{
		ParentID: programID,
		Kind:     uc.kind,
		URL:      original.URL,
		FileName: original.Name,
		Caption:  input.Caption.Trimmed(),
	}

	if uc.thumbnail != nil {
		thumb, err := uc.thumbnail(bytes.NewReader(data), thumbnailWidth, thumbnailHeight)
		if err != nil {
			logger.Warn("Thumbnail generation failed for %s: %v", original.Name, err)
		} else if stored, err := uc.store.Save(ctx, module, "thumb-"+utils.NewFileName("image/jpeg"), "image/jpeg", bytes.NewReader(thumb)); err != nil {
			logger.Warn("Failed to store thumbnail for %s: %v", original.Name, err)
		} else {
			image.ThumbnailURL = stored.URL
			image.ThumbnailName = stored.Name
		}
	}

	existing, err := uc.imageRepo.CountByParent(ctx, programID)
	if err != nil {
		return nil, err
	}
	image.Order = int(existing)

	// Stored non-primary, then claimed: of two concurrent first uploads
	// only one claim succeeds.
	if err := uc.imageRepo.Create(ctx, image); err != nil {
		uc.deleteImageFiles(ctx, image)
		return nil, err
	}
	claimed, err := uc.imageRepo.ClaimPrimary(ctx, programID, image.ID)
	if err != nil {
		return nil, err
	}
	image.IsPrimary = claimed

	if input.MakePrimary && !image.IsPrimary {
		if err := uc.imageRepo.SetPrimary(ctx, programID, image.ID); err != nil {
			return nil, err
		}
		image.IsPrimary = true
	}

	uc.recordChange(ctx, actorID, programID, fmt.Sprintf("Image added to %s", uc.kind))
	return image, nil
}

func (uc *ProgramUseCase) ListImages(ctx context.Context, programID primitive.ObjectID) ([]*entity.ProgramImage, error) {
	return uc.imageRepo.ListByParent(ctx, programID)
}

func (uc *ProgramUseCase) imageOf(ctx context.Context, programID, imageID primitive.ObjectID) (*entity.ProgramImage, error) {
	image, err := uc.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image.ParentID != programID {
		return nil, errors.NotFound("Image", nil)
	}
	return image, nil
}

func (uc *ProgramUseCase) SetPrimaryImage(ctx context.Context, actorID, programID, imageID primitive.ObjectID) (*entity.ProgramImage, error) {
	image, err := uc.imageOf(ctx, programID, imageID)
	if err != nil {
		return nil, err
	}
	if err := uc.imageRepo.SetPrimary(ctx, programID, imageID); err != nil {
		return nil, err
	}
	image.IsPrimary = true

	uc.recordChange(ctx, actorID, programID, fmt.Sprintf("Primary image changed on %s", uc.kind))
	return image, nil
}

// DeleteImage removes one image. When it was primary the first remaining
// image is promoted.
func (uc *ProgramUseCase) DeleteImage(ctx context.Context, actorID, programID, imageID primitive.ObjectID) error {
	image, err := uc.imageOf(ctx, programID, imageID)
	if err != nil {
		return err
	}
	if err := uc.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}
	uc.deleteImageFiles(ctx, image)

	if image.IsPrimary {
		remaining, err := uc.imageRepo.ListByParent(ctx, programID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := uc.imageRepo.SetPrimary(ctx, programID, remaining[0].ID); err != nil {
				return err
			}
		}
	}

	uc.recordChange(ctx, actorID, programID, fmt.Sprintf("Image removed from %s", uc.kind))
	return nil
}

func (uc *ProgramUseCase) deleteImageFiles(ctx context.Context, image *entity.ProgramImage) {
	module := uc.kind.Plural()
	deleteQuietly(ctx, uc.store, module, image.FileName)
	deleteQuietly(ctx, uc.store, module, image.ThumbnailName)
}

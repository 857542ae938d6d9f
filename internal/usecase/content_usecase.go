package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/utils"
)

var contentKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

var contentSortFields = utils.TimestampSortFields(map[string]string{
	"order":       "order",
	"page":        "page",
	"section_key": "sectionKey",
})

type WebsiteContentUseCase struct {
	contentRepo repository.WebsiteContentRepository
	activity    ActivityRecorder
}

func NewWebsiteContentUseCase(contentRepo repository.WebsiteContentRepository, activity ActivityRecorder) *WebsiteContentUseCase {
	return &WebsiteContentUseCase{
		contentRepo: contentRepo,
		activity:    activity,
	}
}

type ContentListInput struct {
	Page          string
	SectionKey    string
	IncludeHidden bool
	Sort          string
	PageNum       int
	Limit         int
}

func (uc *WebsiteContentUseCase) List(ctx context.Context, input ContentListInput) ([]*entity.WebsiteContent, int64, error) {
	sortRaw := input.Sort
	if sortRaw == "" {
		sortRaw = "order:asc"
	}
	sort, err := utils.ParseSort(sortRaw, contentSortFields)
	if err != nil {
		return nil, 0, errors.BadRequest(err.Error(), err)
	}
	p := utils.NewPaginationParams(input.PageNum, input.Limit)

	return uc.contentRepo.List(ctx, repository.ContentFilter{
		Page:       strings.TrimSpace(input.Page),
		SectionKey: strings.TrimSpace(input.SectionKey),
		ActiveOnly: !input.IncludeHidden,
	}, repository.ListOptions{Sort: sort, Limit: p.PageSize, Offset: p.Offset})
}

func (uc *WebsiteContentUseCase) Get(ctx context.Context, id primitive.ObjectID) (*entity.WebsiteContent, error) {
	return uc.contentRepo.GetByID(ctx, id)
}

type ContentInput struct {
	Page       string             `json:"page" validate:"required"`
	SectionKey string             `json:"section_key" validate:"required"`
	Type       entity.ContentType `json:"type"`
	Title      entity.Bilingual   `json:"title"`
	Content    entity.Bilingual   `json:"content"`
	MediaURL   string             `json:"media_url"`
	Order      int                `json:"order"`
	IsRequired bool               `json:"is_required"`
	IsActive   *bool              `json:"is_active"`
}

func (in *ContentInput) normalize() error {
	in.Page = strings.ToLower(strings.TrimSpace(in.Page))
	in.SectionKey = strings.ToLower(strings.TrimSpace(in.SectionKey))
	if !contentKeyPattern.MatchString(in.Page) {
		return errors.BadRequest("Page must be a lowercase slug", nil)
	}
	if !contentKeyPattern.MatchString(in.SectionKey) {
		return errors.BadRequest("Section key must be a lowercase slug", nil)
	}
	if in.Type == "" {
		in.Type = entity.ContentTypeText
	}
	if !in.Type.Valid() {
		return errors.BadRequest(fmt.Sprintf("Invalid content type %q", in.Type), nil)
	}
	if (in.Type == entity.ContentTypeImage || in.Type == entity.ContentTypeLink) && strings.TrimSpace(in.MediaURL) == "" {
		return errors.BadRequest("Media URL is required for image and link content", nil)
	}
	if in.Type != entity.ContentTypeImage && in.Type != entity.ContentTypeLink && in.Content.Trimmed().En == "" {
		return errors.BadRequest("English content is required", nil)
	}
	return nil
}

func applyContentInput(c *entity.WebsiteContent, in ContentInput, actorID primitive.ObjectID) {
	c.Page = in.Page
	c.SectionKey = in.SectionKey
	c.Type = in.Type
	c.Title = in.Title.Trimmed()
	c.Content = in.Content.Trimmed()
	c.MediaURL = strings.TrimSpace(in.MediaURL)
	c.Order = in.Order
	c.IsRequired = in.IsRequired
	c.IsActive = in.IsActive == nil || *in.IsActive
	c.UpdatedBy = &actorID
}

// Create fails with 409 when (page, section key) is taken.
func (uc *WebsiteContentUseCase) Create(ctx context.Context, actorID primitive.ObjectID, input ContentInput) (*entity.WebsiteContent, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	content := &entity.WebsiteContent{}
	applyContentInput(content, input, actorID)

	if err := uc.contentRepo.Create(ctx, content); err != nil {
		if errors.Is(err, "CONFLICT") {
			return nil, errors.Conflict(fmt.Sprintf("Section %s/%s already exists", content.Page, content.SectionKey), err)
		}
		return nil, err
	}

	record(ctx, uc.activity, entity.ActivityContentChanged, "website_content", content.ID.Hex(), actorID.Hex(),
		fmt.Sprintf("Section %s/%s created", content.Page, content.SectionKey))
	return content, nil
}

func (uc *WebsiteContentUseCase) Update(ctx context.Context, actorID, id primitive.ObjectID, input ContentInput) (*entity.WebsiteContent, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	content, err := uc.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content.IsRequired && (content.Page != input.Page || content.SectionKey != input.SectionKey) {
		return nil, errors.BadRequest("Required sections cannot be moved", nil)
	}
	wasRequired := content.IsRequired
	applyContentInput(content, input, actorID)
	content.IsRequired = wasRequired || input.IsRequired

	if err := uc.contentRepo.Update(ctx, content); err != nil {
		if errors.Is(err, "CONFLICT") {
			return nil, errors.Conflict(fmt.Sprintf("Section %s/%s already exists", content.Page, content.SectionKey), err)
		}
		return nil, err
	}

	record(ctx, uc.activity, entity.ActivityContentChanged, "website_content", content.ID.Hex(), actorID.Hex(),
		fmt.Sprintf("Section %s/%s updated", content.Page, content.SectionKey))
	return content, nil
}

// Delete refuses required sections.
func (uc *WebsiteContentUseCase) Delete(ctx context.Context, actorID, id primitive.ObjectID) error {
	content, err := uc.contentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if content.IsRequired {
		return errors.BadRequest("Required sections cannot be deleted", nil)
	}

	if err := uc.contentRepo.Delete(ctx, id); err != nil {
		return err
	}

	record(ctx, uc.activity, entity.ActivityContentChanged, "website_content", id.Hex(), actorID.Hex(),
		fmt.Sprintf("Section %s/%s deleted", content.Page, content.SectionKey))
	return nil
}

func (uc *WebsiteContentUseCase) Count(ctx context.Context) (int64, error) {
	return uc.contentRepo.Count(ctx, repository.ContentFilter{})
}

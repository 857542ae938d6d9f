package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
)

type ContentFilter struct {
	Page       string
	SectionKey string
	ActiveOnly bool
}

type WebsiteContentRepository interface {
	Create(ctx context.Context, content *entity.WebsiteContent) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.WebsiteContent, error)
	GetByKey(ctx context.Context, page, sectionKey string) (*entity.WebsiteContent, error)
	Update(ctx context.Context, content *entity.WebsiteContent) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter ContentFilter, opts ListOptions) ([]*entity.WebsiteContent, int64, error)
	Count(ctx context.Context, filter ContentFilter) (int64, error)
}

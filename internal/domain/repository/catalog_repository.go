package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
)

type CatalogFilter struct {
	Search     string
	Category   string
	Featured   *bool
	ActiveOnly bool
}

type CatalogRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter CatalogFilter, opts ListOptions) ([]*T, int64, error)
	Count(ctx context.Context, filter CatalogFilter) (int64, error)
}

type BookRepository interface {
	CatalogRepository[entity.Book]
}

type EbookRepository interface {
	CatalogRepository[entity.Ebook]
}

type PosterRepository interface {
	CatalogRepository[entity.Poster]
}

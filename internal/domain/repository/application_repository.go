package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
)

type ApplicationFilter struct {
	Status   entity.ApplicationStatus
	Position string
	Search   string
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Application, error)
	Update(ctx context.Context, application *entity.Application) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter ApplicationFilter, opts ListOptions) ([]*entity.Application, int64, error)
	Count(ctx context.Context, filter ApplicationFilter) (int64, error)
}

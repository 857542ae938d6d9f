package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
)

type mongoApplicationRepository struct {
	mongoCollection[entity.Application, *entity.Application]
}

func NewMongoApplicationRepository(db *mongo.Database) repository.ApplicationRepository {
	return &mongoApplicationRepository{
		mongoCollection: newMongoCollection[entity.Application, *entity.Application](db, "applications", "Application"),
	}
}

func (r *mongoApplicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return r.insert(ctx, application)
}

func (r *mongoApplicationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Application, error) {
	return r.getByID(ctx, id)
}

func (r *mongoApplicationRepository) Update(ctx context.Context, application *entity.Application) error {
	return r.replace(ctx, application)
}

func (r *mongoApplicationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoApplicationRepository) List(ctx context.Context, filter repository.ApplicationFilter, opts repository.ListOptions) ([]*entity.Application, int64, error) {
	return r.findPage(ctx, buildApplicationFilter(filter), opts)
}

func (r *mongoApplicationRepository) Count(ctx context.Context, filter repository.ApplicationFilter) (int64, error) {
	return r.count(ctx, buildApplicationFilter(filter))
}

func buildApplicationFilter(f repository.ApplicationFilter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Position != "" {
		q["position"] = f.Position
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q["$or"] = containsAny(s, "name", "email", "phone")
	}
	return q
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
)

type mongoActivityRepository struct {
	mongoCollection[entity.ActivityLog, *entity.ActivityLog]
}

func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		mongoCollection: newMongoCollection[entity.ActivityLog, *entity.ActivityLog](db, "activity_logs", "Activity"),
	}
}

func (r *mongoActivityRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	return r.insert(ctx, log)
}

func (r *mongoActivityRepository) List(ctx context.Context, entityType string, opts repository.ListOptions) ([]*entity.ActivityLog, int64, error) {
	filter := bson.M{}
	if entityType != "" {
		filter["entityType"] = entityType
	}
	return r.findPage(ctx, filter, opts)
}

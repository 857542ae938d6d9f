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

type mongoUserRepository struct {
	mongoCollection[entity.User, *entity.User]
}

func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		mongoCollection: newMongoCollection[entity.User, *entity.User](db, "users", "User"),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = normalizeEmail(user.Email)
	return r.insert(ctx, user)
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.getByID(ctx, id)
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (r *mongoUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.Email = normalizeEmail(user.Email)
	return r.replace(ctx, user)
}

func (r *mongoUserRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

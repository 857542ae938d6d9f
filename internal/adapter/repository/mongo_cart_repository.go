package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
)

type mongoCartRepository struct {
	coll *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) repository.CartRepository {
	return &mongoCartRepository{coll: db.Collection("carts")}
}

func (r *mongoCartRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	var cart entity.Cart
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Cart", err)
		}
		return nil, errors.Internal("Failed to load cart", err)
	}
	return &cart, nil
}

func (r *mongoCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}

	opts := options.Replace().SetUpsert(true)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"userId": cart.UserID}, cart, opts)
	if err != nil {
		return errors.Internal("Failed to save cart", err)
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	return nil
}

func (r *mongoCartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return errors.Internal("Failed to clear cart", err)
	}
	return nil
}

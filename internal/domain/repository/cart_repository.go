package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
)

type CartRepository interface {
	// GetByUser returns a NOT_FOUND AppError when the user has no cart.
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

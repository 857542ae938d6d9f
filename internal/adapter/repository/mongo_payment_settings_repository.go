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

type mongoPaymentSettingsRepository struct {
	coll *mongo.Collection
}

func NewMongoPaymentSettingsRepository(db *mongo.Database) repository.PaymentSettingsRepository {
	return &mongoPaymentSettingsRepository{coll: db.Collection("payment_settings")}
}

func (r *mongoPaymentSettingsRepository) Get(ctx context.Context) (*entity.PaymentSettings, error) {
	var settings entity.PaymentSettings
	err := r.coll.FindOne(ctx, bson.M{"key": entity.PaymentSettingsKey}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Payment settings", err)
		}
		return nil, errors.Internal("Failed to load payment settings", err)
	}
	return &settings, nil
}

func (r *mongoPaymentSettingsRepository) Save(ctx context.Context, settings *entity.PaymentSettings) error {
	settings.Key = entity.PaymentSettingsKey
	settings.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"key": entity.PaymentSettingsKey}, settings, opts)
	if err != nil {
		return errors.Internal("Failed to save payment settings", err)
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		settings.ID = id
	}
	return nil
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/pkg/logger"
)

// EnsureIndexes creates the indexes the repositories rely on. Unique
// indexes back the duplicate checks that surface as 409s.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		ordersCollection: {
			{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "customer.userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "payment.status", Value: 1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"website_content": {
			{Keys: bson.D{{Key: "page", Value: 1}, {Key: "sectionKey", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"payment_settings": {
			{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"carts": {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"applications": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"activity_logs": {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for _, name := range []string{"books", "ebooks", "posters"} {
		indexes[name] = []mongo.IndexModel{
			{Keys: bson.D{{Key: "active", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		}
	}
	for _, kind := range []entity.ProgramKind{entity.ProgramKindProject, entity.ProgramKindActivity, entity.ProgramKindInitiative} {
		indexes[kind.Plural()] = []mongo.IndexModel{
			{Keys: bson.D{{Key: "published", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "bureau", Value: 1}}},
		}
		indexes[imagesCollection(kind)] = []mongo.IndexModel{
			{Keys: bson.D{{Key: "parentId", Value: 1}, {Key: "order", Value: 1}}},
			{
				Keys: bson.D{{Key: "parentId", Value: 1}},
				Options: options.Index().
					SetName("one_primary_per_parent").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"isPrimary": true}),
			},
		}
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
		logger.Debug("Indexes ensured on %s", name)
	}
	return nil
}

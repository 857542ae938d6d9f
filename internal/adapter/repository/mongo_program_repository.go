package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
)

type mongoProgramRepository struct {
	mongoCollection[entity.Program, *entity.Program]
	kind entity.ProgramKind
}

// NewMongoProgramRepository stores one program kind in its own collection
// (projects, activities, initiatives).
func NewMongoProgramRepository(db *mongo.Database, kind entity.ProgramKind) repository.ProgramRepository {
	return &mongoProgramRepository{
		mongoCollection: newMongoCollection[entity.Program, *entity.Program](db, kind.Plural(), kind.Label()),
		kind:            kind,
	}
}

func (r *mongoProgramRepository) Kind() entity.ProgramKind {
	return r.kind
}

func (r *mongoProgramRepository) Create(ctx context.Context, program *entity.Program) error {
	program.Kind = r.kind
	return r.insert(ctx, program)
}

func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Program, error) {
	return r.getByID(ctx, id)
}

func (r *mongoProgramRepository) Update(ctx context.Context, program *entity.Program) error {
	program.Kind = r.kind
	return r.replace(ctx, program)
}

func (r *mongoProgramRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoProgramRepository) List(ctx context.Context, filter repository.ProgramFilter, opts repository.ListOptions) ([]*entity.Program, int64, error) {
	return r.findPage(ctx, buildProgramFilter(filter), opts)
}

func (r *mongoProgramRepository) Count(ctx context.Context, filter repository.ProgramFilter) (int64, error) {
	return r.count(ctx, buildProgramFilter(filter))
}

func buildProgramFilter(f repository.ProgramFilter) bson.M {
	q := bson.M{}
	if f.PublishedOnly {
		q["published"] = true
	}
	if f.Bureau != "" {
		q["bureau"] = f.Bureau
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q["$or"] = containsAny(s, "title.en", "title.ta", "description.en", "description.ta", "tags")
	}
	return q
}

type mongoProgramImageRepository struct {
	mongoCollection[entity.ProgramImage, *entity.ProgramImage]
	client *mongo.Client
}

func NewMongoProgramImageRepository(db *mongo.Database, kind entity.ProgramKind) repository.ProgramImageRepository {
	return &mongoProgramImageRepository{
		mongoCollection: newMongoCollection[entity.ProgramImage, *entity.ProgramImage](db, imagesCollection(kind), "Image"),
		client:          db.Client(),
	}
}

func imagesCollection(kind entity.ProgramKind) string {
	return string(kind) + "_images"
}

func (r *mongoProgramImageRepository) Create(ctx context.Context, image *entity.ProgramImage) error {
	return r.insert(ctx, image)
}

func (r *mongoProgramImageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.ProgramImage, error) {
	return r.getByID(ctx, id)
}

func (r *mongoProgramImageRepository) ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	return r.findAll(ctx, bson.M{"parentId": parentID}, opts)
}

func (r *mongoProgramImageRepository) CountByParent(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	return r.count(ctx, bson.M{"parentId": parentID})
}

func (r *mongoProgramImageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoProgramImageRepository) DeleteByParent(ctx context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error) {
	images, err := r.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if _, err := r.coll.DeleteMany(ctx, bson.M{"parentId": parentID}); err != nil {
		return nil, errors.Internal("Failed to delete images", err)
	}
	return images, nil
}

func (r *mongoProgramImageRepository) SetPrimary(ctx context.Context, parentID, imageID primitive.ObjectID) error {
	session, err := r.client.StartSession()
	if err != nil {
		return errors.Internal("Failed to start session", err)
	}
	defer session.EndSession(ctx)

	// Siblings are cleared first: the one-primary index rejects two
	// primaries even inside the transaction.
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.UpdateMany(sc,
			bson.M{"parentId": parentID, "_id": bson.M{"$ne": imageID}},
			bson.M{"$set": bson.M{"isPrimary": false}},
		); err != nil {
			return nil, err
		}

		res, err := r.coll.UpdateOne(sc,
			bson.M{"_id": imageID, "parentId": parentID},
			bson.M{"$set": bson.M{"isPrimary": true}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, errors.NotFound("Image", nil)
		}
		return nil, nil
	})
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return err
		}
		return errors.Internal("Failed to set primary image", err)
	}
	return nil
}

// ClaimPrimary relies on the unique partial index over parentId where
// isPrimary is true: a second claimant gets a duplicate key error.
func (r *mongoProgramImageRepository) ClaimPrimary(ctx context.Context, parentID, imageID primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": imageID, "parentId": parentID},
		bson.M{"$set": bson.M{"isPrimary": true}},
	)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal("Failed to set primary image", err)
	}
	if res.MatchedCount == 0 {
		return false, errors.NotFound("Image", nil)
	}
	return true, nil
}

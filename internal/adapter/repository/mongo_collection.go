package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
)

// document constrains PT to a pointer to T implementing entity.Document.
type document[T any] interface {
	*T
	entity.Document
}

// mongoCollection holds the CRUD plumbing shared by every repository.
type mongoCollection[T any, PT document[T]] struct {
	coll     *mongo.Collection
	resource string
}

func newMongoCollection[T any, PT document[T]](db *mongo.Database, name, resource string) mongoCollection[T, PT] {
	return mongoCollection[T, PT]{coll: db.Collection(name), resource: resource}
}

func (m mongoCollection[T, PT]) insert(ctx context.Context, doc PT) error {
	doc.BeforeInsert(time.Now())
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return m.writeError("create", err)
	}
	return nil
}

func (m mongoCollection[T, PT]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var out T
	if err := m.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound(m.resource, err)
		}
		return nil, errors.Internal(fmt.Sprintf("Failed to load %s", m.resource), err)
	}
	return &out, nil
}

func (m mongoCollection[T, PT]) getByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m mongoCollection[T, PT]) replace(ctx context.Context, doc PT) error {
	doc.BeforeUpdate(time.Now())
	res, err := m.coll.ReplaceOne(ctx, bson.M{"_id": doc.GetID()}, doc)
	if err != nil {
		return m.writeError("update", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound(m.resource, nil)
	}
	return nil
}

func (m mongoCollection[T, PT]) deleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Internal(fmt.Sprintf("Failed to delete %s", m.resource), err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFound(m.resource, nil)
	}
	return nil
}

func (m mongoCollection[T, PT]) count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := m.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Internal(fmt.Sprintf("Failed to count %s", m.resource), err)
	}
	return n, nil
}

func (m mongoCollection[T, PT]) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Internal(fmt.Sprintf("Failed to list %s", m.resource), err)
	}
	defer cur.Close(ctx)

	items := make([]*T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, errors.Internal(fmt.Sprintf("Failed to decode %s", m.resource), err)
	}
	return items, nil
}

// findPage runs the count and the page query concurrently.
func (m mongoCollection[T, PT]) findPage(ctx context.Context, filter bson.M, opts repository.ListOptions) ([]*T, int64, error) {
	var (
		items []*T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := m.coll.CountDocuments(gctx, filter)
		total = n
		return err
	})
	g.Go(func() error {
		cur, err := m.coll.Find(gctx, filter, findOptions(opts))
		if err != nil {
			return err
		}
		defer cur.Close(gctx)
		items = make([]*T, 0)
		return cur.All(gctx, &items)
	})

	if err := g.Wait(); err != nil {
		return nil, 0, errors.Internal(fmt.Sprintf("Failed to list %s", m.resource), err)
	}
	return items, total, nil
}

func (m mongoCollection[T, PT]) writeError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.Conflict(fmt.Sprintf("%s already exists", m.resource), err)
	}
	return errors.Internal(fmt.Sprintf("Failed to %s %s", op, m.resource), err)
}

// findOptions turns ListOptions into driver options. _id breaks ties so
// pages stay stable.
func findOptions(opts repository.ListOptions) *options.FindOptions {
	sort := opts.Sort
	if sort.Field == "" {
		sort.Field, sort.Desc = "createdAt", true
	}
	dir := 1
	if sort.Desc {
		dir = -1
	}

	fo := options.Find().SetSort(bson.D{{Key: sort.Field, Value: dir}, {Key: "_id", Value: dir}})
	if opts.Offset > 0 {
		fo.SetSkip(int64(opts.Offset))
	}
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}
	return fo
}

// containsAny matches term case-insensitively against any of the fields.
func containsAny(term string, fields ...string) bson.A {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return or
}

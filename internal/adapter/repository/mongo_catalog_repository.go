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

// mongoCatalogRepository serves books, ebooks and posters; they differ only
// in collection and document type.
type mongoCatalogRepository[T any, PT document[T]] struct {
	mongoCollection[T, PT]
}

func NewMongoBookRepository(db *mongo.Database) repository.BookRepository {
	return &mongoCatalogRepository[entity.Book, *entity.Book]{
		mongoCollection: newMongoCollection[entity.Book, *entity.Book](db, "books", "Book"),
	}
}

func NewMongoEbookRepository(db *mongo.Database) repository.EbookRepository {
	return &mongoCatalogRepository[entity.Ebook, *entity.Ebook]{
		mongoCollection: newMongoCollection[entity.Ebook, *entity.Ebook](db, "ebooks", "Ebook"),
	}
}

func NewMongoPosterRepository(db *mongo.Database) repository.PosterRepository {
	return &mongoCatalogRepository[entity.Poster, *entity.Poster]{
		mongoCollection: newMongoCollection[entity.Poster, *entity.Poster](db, "posters", "Poster"),
	}
}

func (r *mongoCatalogRepository[T, PT]) Create(ctx context.Context, item *T) error {
	return r.insert(ctx, PT(item))
}

func (r *mongoCatalogRepository[T, PT]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.getByID(ctx, id)
}

func (r *mongoCatalogRepository[T, PT]) Update(ctx context.Context, item *T) error {
	return r.replace(ctx, PT(item))
}

func (r *mongoCatalogRepository[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoCatalogRepository[T, PT]) List(ctx context.Context, filter repository.CatalogFilter, opts repository.ListOptions) ([]*T, int64, error) {
	return r.findPage(ctx, buildCatalogFilter(filter), opts)
}

func (r *mongoCatalogRepository[T, PT]) Count(ctx context.Context, filter repository.CatalogFilter) (int64, error) {
	return r.count(ctx, buildCatalogFilter(filter))
}

func buildCatalogFilter(f repository.CatalogFilter) bson.M {
	q := bson.M{}
	if f.ActiveOnly {
		q["active"] = true
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q["$or"] = containsAny(s, "title.en", "title.ta", "author.en", "author.ta")
	}
	return q
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
)

type mongoWebsiteContentRepository struct {
	mongoCollection[entity.WebsiteContent, *entity.WebsiteContent]
}

func NewMongoWebsiteContentRepository(db *mongo.Database) repository.WebsiteContentRepository {
	return &mongoWebsiteContentRepository{
		mongoCollection: newMongoCollection[entity.WebsiteContent, *entity.WebsiteContent](db, "website_content", "Content"),
	}
}

func (r *mongoWebsiteContentRepository) Create(ctx context.Context, content *entity.WebsiteContent) error {
	return r.insert(ctx, content)
}

func (r *mongoWebsiteContentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.WebsiteContent, error) {
	return r.getByID(ctx, id)
}

func (r *mongoWebsiteContentRepository) GetByKey(ctx context.Context, page, sectionKey string) (*entity.WebsiteContent, error) {
	return r.findOne(ctx, bson.M{"page": page, "sectionKey": sectionKey})
}

func (r *mongoWebsiteContentRepository) Update(ctx context.Context, content *entity.WebsiteContent) error {
	return r.replace(ctx, content)
}

func (r *mongoWebsiteContentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoWebsiteContentRepository) List(ctx context.Context, filter repository.ContentFilter, opts repository.ListOptions) ([]*entity.WebsiteContent, int64, error) {
	return r.findPage(ctx, buildContentFilter(filter), opts)
}

func (r *mongoWebsiteContentRepository) Count(ctx context.Context, filter repository.ContentFilter) (int64, error) {
	return r.count(ctx, buildContentFilter(filter))
}

func buildContentFilter(f repository.ContentFilter) bson.M {
	q := bson.M{}
	if f.Page != "" {
		q["page"] = f.Page
	}
	if f.SectionKey != "" {
		q["sectionKey"] = f.SectionKey
	}
	if f.ActiveOnly {
		q["isActive"] = true
	}
	return q
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
)

type ProgramFilter struct {
	Bureau        string
	Status        entity.ProgramStatus
	Search        string
	Featured      *bool
	PublishedOnly bool
}

type ProgramRepository interface {
	Kind() entity.ProgramKind
	Create(ctx context.Context, program *entity.Program) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Program, error)
	Update(ctx context.Context, program *entity.Program) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter ProgramFilter, opts ListOptions) ([]*entity.Program, int64, error)
	Count(ctx context.Context, filter ProgramFilter) (int64, error)
}

type ProgramImageRepository interface {
	Create(ctx context.Context, image *entity.ProgramImage) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.ProgramImage, error)
	ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error)
	CountByParent(ctx context.Context, parentID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByParent(ctx context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error)

	// SetPrimary marks imageID primary and clears every sibling in one
	// transaction.
	SetPrimary(ctx context.Context, parentID, imageID primitive.ObjectID) error

	// ClaimPrimary marks imageID primary only when no sibling already is,
	// and reports whether it did.
	ClaimPrimary(ctx context.Context, parentID, imageID primitive.ObjectID) (bool, error)
}

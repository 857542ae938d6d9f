package repository

import (
	"context"

	"tamilsociety/internal/domain/entity"
)

type ActivityRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	List(ctx context.Context, entityType string, opts ListOptions) ([]*entity.ActivityLog, int64, error)
}

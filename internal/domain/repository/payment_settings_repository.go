package repository

import (
	"context"

	"tamilsociety/internal/domain/entity"
)

type PaymentSettingsRepository interface {
	// Get returns a NOT_FOUND AppError when no settings were saved yet.
	Get(ctx context.Context) (*entity.PaymentSettings, error)
	Save(ctx context.Context, settings *entity.PaymentSettings) error
}

package usecase

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
)

// ProductResolver prices a cart or order line from the catalog.
type ProductResolver interface {
	ResolveProduct(ctx context.Context, productType entity.ProductType, id primitive.ObjectID) (*entity.Product, error)
}

// SettingsProvider returns the payment settings in effect, defaults
// included.
type SettingsProvider interface {
	Current(ctx context.Context) (*entity.PaymentSettings, error)
}

// ActivityRecorder appends to the admin activity feed. Failures are logged,
// never returned.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *entity.ActivityLog)
}

type ThumbnailGenerator func(r io.Reader, maxWidth, maxHeight int) ([]byte, error)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

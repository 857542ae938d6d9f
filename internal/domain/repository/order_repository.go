package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
)

type OrderFilter struct {
	Status        entity.OrderStatus
	PaymentStatus entity.PaymentStatus
	CustomerID    primitive.ObjectID
	Search        string
}

// PaymentTransition moves payment.status From → To in one conditional write.
// OrderStatus, when set, is written in the same update.
type PaymentTransition struct {
	From        entity.PaymentStatus
	To          entity.PaymentStatus
	OrderStatus entity.OrderStatus
	VerifiedBy  primitive.ObjectID
	At          time.Time
	Reason      string
}

type OrderStats struct {
	ByStatus            map[entity.OrderStatus]int64 `json:"by_status"`
	PendingVerification int64                        `json:"pending_verification"`
	VerifiedRevenue     float64                      `json:"verified_revenue"`
	Total               int64                        `json:"total"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)

	// Update writes the mutable order fields only while the stored version
	// still equals order.Version, then bumps order.Version. A stale version
	// yields ErrPreconditionFailed.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes the order only while its status is one of statuses.
	// An order in any other status yields ErrPreconditionFailed.
	Delete(ctx context.Context, id primitive.ObjectID, statuses []entity.OrderStatus) error
	List(ctx context.Context, filter OrderFilter, opts ListOptions) ([]*entity.Order, int64, error)

	// TransitionPayment returns ErrPreconditionFailed when the order exists
	// but its payment status is not t.From.
	TransitionPayment(ctx context.Context, id primitive.ObjectID, t PaymentTransition) (*entity.Order, error)

	Stats(ctx context.Context) (*OrderStats, error)
}

// CounterRepository hands out monotonically increasing sequence values.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

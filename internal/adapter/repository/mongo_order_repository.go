package repository

import (
	"context"
	"strings"
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

const ordersCollection = "orders"

type mongoOrderRepository struct {
	mongoCollection[entity.Order, *entity.Order]
}

func NewMongoOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &mongoOrderRepository{
		mongoCollection: newMongoCollection[entity.Order, *entity.Order](db, ordersCollection, "Order"),
	}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.insert(ctx, order)
}

func (r *mongoOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	return r.getByID(ctx, id)
}

func (r *mongoOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return r.findOne(ctx, bson.M{"orderNumber": orderNumber})
}

// Update sets only the fields an order update may change. Items, customer
// and the payment verification fields stay as stored.
func (r *mongoOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.BeforeUpdate(time.Now())
	set := bson.M{
		"status":         order.Status,
		"shipping":       order.Shipping,
		"totals":         order.Totals,
		"payment.amount": order.Payment.Amount,
		"adminNotes":     order.AdminNotes,
		"updatedAt":      order.UpdatedAt,
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": order.ID, "version": order.Version},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return r.writeError("update", err)
	}
	if res.MatchedCount == 0 {
		return r.missOrStale(ctx, order.ID)
	}
	order.Version++
	return nil
}

func (r *mongoOrderRepository) Delete(ctx context.Context, id primitive.ObjectID, statuses []entity.OrderStatus) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "status": bson.M{"$in": statuses}})
	if err != nil {
		return errors.Internal("Failed to delete order", err)
	}
	if res.DeletedCount == 0 {
		return r.missOrStale(ctx, id)
	}
	return nil
}

// missOrStale tells a missing order apart from one a conditional write
// did not match.
func (r *mongoOrderRepository) missOrStale(ctx context.Context, id primitive.ObjectID) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Internal("Failed to load order", err)
	}
	if n == 0 {
		return errors.NotFound("Order", nil)
	}
	return repository.ErrPreconditionFailed
}

func (r *mongoOrderRepository) List(ctx context.Context, filter repository.OrderFilter, opts repository.ListOptions) ([]*entity.Order, int64, error) {
	return r.findPage(ctx, buildOrderFilter(filter), opts)
}

func buildOrderFilter(f repository.OrderFilter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.PaymentStatus != "" {
		q["payment.status"] = f.PaymentStatus
	}
	if !f.CustomerID.IsZero() {
		q["customer.userId"] = f.CustomerID
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q["$or"] = containsAny(s, "orderNumber", "customer.email", "customer.name")
	}
	return q
}

func (r *mongoOrderRepository) TransitionPayment(ctx context.Context, id primitive.ObjectID, t repository.PaymentTransition) (*entity.Order, error) {
	set := bson.M{
		"payment.status": t.To,
		"updatedAt":      t.At,
	}
	if !t.VerifiedBy.IsZero() {
		set["payment.verifiedBy"] = t.VerifiedBy
		set["payment.verifiedAt"] = t.At
	}
	if t.Reason != "" {
		set["payment.rejectionReason"] = t.Reason
	}
	if t.OrderStatus != "" {
		set["status"] = t.OrderStatus
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": id, "payment.status": t.From}

	var order entity.Order
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, errors.Internal("Failed to update payment", err)
	}
	// Nothing matched: either the order is gone or its payment moved on.
	return nil, r.missOrStale(ctx, id)
}

func (r *mongoOrderRepository) Stats(ctx context.Context) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{ByStatus: map[entity.OrderStatus]int64{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := r.coll.Aggregate(gctx, mongo.Pipeline{
			{{Key: "$group", Value: bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}}},
		})
		if err != nil {
			return err
		}
		defer cur.Close(gctx)

		var rows []struct {
			Status entity.OrderStatus `bson:"_id"`
			N      int64              `bson:"n"`
		}
		if err := cur.All(gctx, &rows); err != nil {
			return err
		}
		for _, row := range rows {
			stats.ByStatus[row.Status] = row.N
		}
		return nil
	})
	g.Go(func() error {
		n, err := r.coll.CountDocuments(gctx, bson.M{"payment.status": entity.PaymentStatusPending})
		stats.PendingVerification = n
		return err
	})
	g.Go(func() error {
		cur, err := r.coll.Aggregate(gctx, mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"payment.status": entity.PaymentStatusVerified}}},
			{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$totals.total"}}}},
		})
		if err != nil {
			return err
		}
		defer cur.Close(gctx)

		var rows []struct {
			Revenue float64 `bson:"revenue"`
		}
		if err := cur.All(gctx, &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			stats.VerifiedRevenue = rows[0].Revenue
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, errors.Internal("Failed to compute order stats", err)
	}
	for _, n := range stats.ByStatus {
		stats.Total += n
	}
	return stats, nil
}

type mongoCounterRepository struct {
	coll *mongo.Collection
}

func NewMongoCounterRepository(db *mongo.Database) repository.CounterRepository {
	return &mongoCounterRepository{coll: db.Collection("counters")}
}

func (r *mongoCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, errors.Internal("Failed to allocate sequence", err)
	}
	return counter.Seq, nil
}

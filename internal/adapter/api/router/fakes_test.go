package router

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func (r *memoryUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.BeforeInsert(time.Now())
	r.users[u.ID] = u
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUsers) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memoryUsers) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type memoryOrders struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]entity.Order
}

func (r *memoryOrders) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.BeforeInsert(time.Now())
	r.orders[order.ID] = *order
	return nil
}

func (r *memoryOrders) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		return &o, nil
	}
	return nil, errors.NotFound("Order", nil)
}

func (r *memoryOrders) GetByOrderNumber(_ context.Context, number string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == number {
			o := o
			return &o, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

func (r *memoryOrders) Update(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	if stored.Version != order.Version {
		return repository.ErrPreconditionFailed
	}
	order.Version++
	r.orders[order.ID] = *order
	return nil
}

func (r *memoryOrders) Delete(_ context.Context, id primitive.ObjectID, statuses []entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	for _, s := range statuses {
		if stored.Status == s {
			delete(r.orders, id)
			return nil
		}
	}
	return repository.ErrPreconditionFailed
}

func (r *memoryOrders) List(_ context.Context, filter repository.OrderFilter, _ repository.ListOptions) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Order{}
	for _, o := range r.orders {
		if !filter.CustomerID.IsZero() && o.Customer.UserID != filter.CustomerID {
			continue
		}
		o := o
		out = append(out, &o)
	}
	return out, int64(len(out)), nil
}

func (r *memoryOrders) TransitionPayment(_ context.Context, id primitive.ObjectID, t repository.PaymentTransition) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	if o.Payment.Status != t.From {
		return nil, repository.ErrPreconditionFailed
	}
	o.Payment.Status = t.To
	o.Payment.VerifiedBy = &t.VerifiedBy
	o.Payment.VerifiedAt = &t.At
	if t.OrderStatus != "" {
		o.Status = t.OrderStatus
	}
	o.Version++
	r.orders[id] = o
	return &o, nil
}

func (r *memoryOrders) Stats(context.Context) (*repository.OrderStats, error) {
	return &repository.OrderStats{ByStatus: map[entity.OrderStatus]int64{}}, nil
}

type memoryCounter struct {
	mu  sync.Mutex
	seq int64
}

func (c *memoryCounter) Next(context.Context, string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq, nil
}

// unsavedSettings makes the settings usecase fall back to its defaults.
type unsavedSettings struct{}

func (unsavedSettings) Get(context.Context) (*entity.PaymentSettings, error) {
	return nil, errors.NotFound("Payment settings", nil)
}

func (unsavedSettings) Save(context.Context, *entity.PaymentSettings) error { return nil }

type catalogStub map[primitive.ObjectID]entity.Product

func (c catalogStub) ResolveProduct(_ context.Context, productType entity.ProductType, id primitive.ObjectID) (*entity.Product, error) {
	p, ok := c[id]
	if !ok || p.Type != productType {
		return nil, errors.BadRequest("Product not found", nil)
	}
	return &p, nil
}

type memoryPrograms struct {
	mu       sync.Mutex
	kind     entity.ProgramKind
	programs map[primitive.ObjectID]entity.Program
}

func (r *memoryPrograms) Kind() entity.ProgramKind { return r.kind }

func (r *memoryPrograms) Create(_ context.Context, p *entity.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.BeforeInsert(time.Now())
	r.programs[p.ID] = *p
	return nil
}

func (r *memoryPrograms) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.programs[id]; ok {
		return &p, nil
	}
	return nil, errors.NotFound(r.kind.Label(), nil)
}

func (r *memoryPrograms) Update(_ context.Context, p *entity.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[p.ID] = *p
	return nil
}

func (r *memoryPrograms) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.programs, id)
	return nil
}

func (r *memoryPrograms) List(context.Context, repository.ProgramFilter, repository.ListOptions) ([]*entity.Program, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Program{}
	for _, p := range r.programs {
		p := p
		out = append(out, &p)
	}
	return out, int64(len(out)), nil
}

func (r *memoryPrograms) Count(context.Context, repository.ProgramFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.programs)), nil
}

type memoryImages struct {
	mu     sync.Mutex
	images []entity.ProgramImage
}

func (r *memoryImages) Create(_ context.Context, image *entity.ProgramImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	image.BeforeInsert(time.Now())
	r.images = append(r.images, *image)
	return nil
}

func (r *memoryImages) GetByID(_ context.Context, id primitive.ObjectID) (*entity.ProgramImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.ID == id {
			img := img
			return &img, nil
		}
	}
	return nil, errors.NotFound("Image", nil)
}

func (r *memoryImages) ListByParent(_ context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.ProgramImage{}
	for _, img := range r.images {
		if img.ParentID == parentID {
			img := img
			out = append(out, &img)
		}
	}
	return out, nil
}

func (r *memoryImages) CountByParent(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	images, err := r.ListByParent(ctx, parentID)
	return int64(len(images)), err
}

func (r *memoryImages) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, img := range r.images {
		if img.ID == id {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Image", nil)
}

func (r *memoryImages) DeleteByParent(_ context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []entity.ProgramImage
	removed := []*entity.ProgramImage{}
	for _, img := range r.images {
		if img.ParentID == parentID {
			img := img
			removed = append(removed, &img)
		} else {
			kept = append(kept, img)
		}
	}
	r.images = kept
	return removed, nil
}

func (r *memoryImages) SetPrimary(_ context.Context, parentID, imageID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for _, img := range r.images {
		if img.ParentID == parentID && img.ID == imageID {
			found = true
		}
	}
	if !found {
		return errors.NotFound("Image", nil)
	}
	for i := range r.images {
		if r.images[i].ParentID == parentID {
			r.images[i].IsPrimary = r.images[i].ID == imageID
		}
	}
	return nil
}

func (r *memoryImages) ClaimPrimary(_ context.Context, parentID, imageID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := -1
	for i, img := range r.images {
		if img.ParentID != parentID {
			continue
		}
		if img.ID == imageID {
			target = i
		} else if img.IsPrimary {
			return false, nil
		}
	}
	if target < 0 {
		return false, errors.NotFound("Image", nil)
	}
	r.images[target].IsPrimary = true
	return true, nil
}

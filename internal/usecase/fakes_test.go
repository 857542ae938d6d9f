package usecase

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/errors"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]entity.Order
	filter repository.OrderFilter
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]entity.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.BeforeInsert(time.Now())
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return &o, nil
}

func (r *fakeOrderRepo) GetByOrderNumber(_ context.Context, number string) (*entity.Order, error) {
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

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	if stored.Version != order.Version {
		return repository.ErrPreconditionFailed
	}
	order.BeforeUpdate(time.Now())
	order.Version++
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id primitive.ObjectID, statuses []entity.OrderStatus) error {
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

func (r *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter, _ repository.ListOptions) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter
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

func (r *fakeOrderRepo) TransitionPayment(_ context.Context, id primitive.ObjectID, t repository.PaymentTransition) (*entity.Order, error) {
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
	o.Payment.RejectionReason = t.Reason
	if t.OrderStatus != "" {
		o.Status = t.OrderStatus
	}
	o.Version++
	r.orders[id] = o
	return &o, nil
}

func (r *fakeOrderRepo) Stats(context.Context) (*repository.OrderStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.OrderStats{ByStatus: map[entity.OrderStatus]int64{}}
	for _, o := range r.orders {
		stats.ByStatus[o.Status]++
		stats.Total++
		if o.Payment.Status == entity.PaymentStatusPending {
			stats.PendingVerification++
		}
		if o.Payment.Status == entity.PaymentStatusVerified {
			stats.VerifiedRevenue += o.Totals.Total
		}
	}
	return stats, nil
}

type fakeCounterRepo struct {
	mu  sync.Mutex
	seq map[string]int64
}

func (r *fakeCounterRepo) Next(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq == nil {
		r.seq = map[string]int64{}
	}
	r.seq[name]++
	return r.seq[name], nil
}

type fakeProducts map[primitive.ObjectID]entity.Product

func (p fakeProducts) ResolveProduct(_ context.Context, productType entity.ProductType, id primitive.ObjectID) (*entity.Product, error) {
	product, ok := p[id]
	if !ok || product.Type != productType {
		return nil, errors.BadRequest("Product not found", nil)
	}
	if !product.Active {
		return nil, errors.BadRequest("Product is not available", nil)
	}
	return &product, nil
}

func (p fakeProducts) add(productType entity.ProductType, title string, price float64, active bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	p[id] = entity.Product{ID: id, Type: productType, Title: title, Price: price, Active: active}
	return id
}

type fakeSettings struct {
	settings *entity.PaymentSettings
}

func (s fakeSettings) Current(context.Context) (*entity.PaymentSettings, error) {
	if s.settings == nil {
		return entity.DefaultPaymentSettings(), nil
	}
	return s.settings, nil
}

type fakeSettingsRepo struct {
	saved *entity.PaymentSettings
}

func (r *fakeSettingsRepo) Get(context.Context) (*entity.PaymentSettings, error) {
	if r.saved == nil {
		return nil, errors.NotFound("Payment settings", nil)
	}
	s := *r.saved
	return &s, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *entity.PaymentSettings) error {
	s := *settings
	r.saved = &s
	return nil
}

type recordingActivity struct {
	mu      sync.Mutex
	entries []*entity.ActivityLog
}

func (a *recordingActivity) Record(_ context.Context, entry *entity.ActivityLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingActivity) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

type memoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string][]byte{}}
}

func (s *memoryStore) Save(_ context.Context, module, name, contentType string, r io.Reader) (*service.StoredFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[module+"/"+name] = data
	return &service.StoredFile{Module: module, Name: name, URL: s.URL(module, name), ContentType: contentType, Size: int64(len(data))}, nil
}

func (s *memoryStore) List(_ context.Context, module string) ([]service.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []service.StoredFile{}
	prefix := module + "/"
	for key, data := range s.files {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, service.StoredFile{Module: module, Name: key[len(prefix):], Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryStore) Delete(_ context.Context, module, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := module + "/" + name
	if _, ok := s.files[key]; !ok {
		return service.ErrFileNotFound
	}
	delete(s.files, key)
	return nil
}

func (s *memoryStore) URL(module, name string) string {
	return "/uploads/" + module + "/" + name
}

func (s *memoryStore) has(module, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[module+"/"+name]
	return ok
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type fakeProgramRepo struct {
	kind     entity.ProgramKind
	programs map[primitive.ObjectID]*entity.Program
}

func newFakeProgramRepo(kind entity.ProgramKind) *fakeProgramRepo {
	return &fakeProgramRepo{kind: kind, programs: map[primitive.ObjectID]*entity.Program{}}
}

func (r *fakeProgramRepo) Kind() entity.ProgramKind { return r.kind }

func (r *fakeProgramRepo) Create(_ context.Context, p *entity.Program) error {
	p.BeforeInsert(time.Now())
	r.programs[p.ID] = p
	return nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Program, error) {
	p, ok := r.programs[id]
	if !ok {
		return nil, errors.NotFound(r.kind.Label(), nil)
	}
	return p, nil
}

func (r *fakeProgramRepo) Update(_ context.Context, p *entity.Program) error {
	p.BeforeUpdate(time.Now())
	r.programs[p.ID] = p
	return nil
}

func (r *fakeProgramRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.programs, id)
	return nil
}

func (r *fakeProgramRepo) List(context.Context, repository.ProgramFilter, repository.ListOptions) ([]*entity.Program, int64, error) {
	out := []*entity.Program{}
	for _, p := range r.programs {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProgramRepo) Count(context.Context, repository.ProgramFilter) (int64, error) {
	return int64(len(r.programs)), nil
}

type fakeImageRepo struct {
	mu     sync.Mutex
	images []*entity.ProgramImage
}

func (r *fakeImageRepo) Create(_ context.Context, image *entity.ProgramImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	image.BeforeInsert(time.Now())
	stored := *image
	r.images = append(r.images, &stored)
	return nil
}

func (r *fakeImageRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.ProgramImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.ID == id {
			return img, nil
		}
	}
	return nil, errors.NotFound("Image", nil)
}

func (r *fakeImageRepo) byParent(parentID primitive.ObjectID) []*entity.ProgramImage {
	out := []*entity.ProgramImage{}
	for _, img := range r.images {
		if img.ParentID == parentID {
			out = append(out, img)
		}
	}
	return out
}

func (r *fakeImageRepo) ListByParent(_ context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byParent(parentID), nil
}

func (r *fakeImageRepo) CountByParent(_ context.Context, parentID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byParent(parentID))), nil
}

func (r *fakeImageRepo) Delete(_ context.Context, id primitive.ObjectID) error {
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

func (r *fakeImageRepo) DeleteByParent(_ context.Context, parentID primitive.ObjectID) ([]*entity.ProgramImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept, removed := []*entity.ProgramImage{}, []*entity.ProgramImage{}
	for _, img := range r.images {
		if img.ParentID == parentID {
			removed = append(removed, img)
		} else {
			kept = append(kept, img)
		}
	}
	r.images = kept
	return removed, nil
}

func (r *fakeImageRepo) SetPrimary(_ context.Context, parentID, imageID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for _, img := range r.byParent(parentID) {
		if img.ID == imageID {
			found = true
		}
	}
	if !found {
		return errors.NotFound("Image", nil)
	}
	for _, img := range r.byParent(parentID) {
		img.IsPrimary = img.ID == imageID
	}
	return nil
}

func (r *fakeImageRepo) ClaimPrimary(_ context.Context, parentID, imageID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var target *entity.ProgramImage
	for _, img := range r.byParent(parentID) {
		if img.ID == imageID {
			target = img
		} else if img.IsPrimary {
			return false, nil
		}
	}
	if target == nil {
		return false, errors.NotFound("Image", nil)
	}
	target.IsPrimary = true
	return true, nil
}

func (r *fakeImageRepo) primaries(parentID primitive.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, img := range r.byParent(parentID) {
		if img.IsPrimary {
			n++
		}
	}
	return n
}

type fakeContentRepo struct {
	items map[primitive.ObjectID]*entity.WebsiteContent
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: map[primitive.ObjectID]*entity.WebsiteContent{}}
}

func (r *fakeContentRepo) taken(c *entity.WebsiteContent) bool {
	for id, other := range r.items {
		if id != c.ID && other.Page == c.Page && other.SectionKey == c.SectionKey {
			return true
		}
	}
	return false
}

func (r *fakeContentRepo) Create(_ context.Context, c *entity.WebsiteContent) error {
	if r.taken(c) {
		return errors.Conflict("Website content already exists", nil)
	}
	c.BeforeInsert(time.Now())
	r.items[c.ID] = c
	return nil
}

func (r *fakeContentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.WebsiteContent, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Website content", nil)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeContentRepo) GetByKey(_ context.Context, page, key string) (*entity.WebsiteContent, error) {
	for _, c := range r.items {
		if c.Page == page && c.SectionKey == key {
			return c, nil
		}
	}
	return nil, errors.NotFound("Website content", nil)
}

func (r *fakeContentRepo) Update(_ context.Context, c *entity.WebsiteContent) error {
	if r.taken(c) {
		return errors.Conflict("Website content already exists", nil)
	}
	c.BeforeUpdate(time.Now())
	r.items[c.ID] = c
	return nil
}

func (r *fakeContentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeContentRepo) List(_ context.Context, filter repository.ContentFilter, _ repository.ListOptions) ([]*entity.WebsiteContent, int64, error) {
	out := []*entity.WebsiteContent{}
	for _, c := range r.items {
		if filter.Page != "" && c.Page != filter.Page {
			continue
		}
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeContentRepo) Count(context.Context, repository.ContentFilter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, other := range r.users {
		if other.Email == u.Email {
			return errors.Conflict("User already exists", nil)
		}
	}
	u.BeforeInsert(time.Now())
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	u.BeforeUpdate(time.Now())
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeCartRepo struct {
	carts map[primitive.ObjectID]*entity.Cart
}

func (r *fakeCartRepo) GetByUser(_ context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, errors.NotFound("Cart", nil)
	}
	return c, nil
}

func (r *fakeCartRepo) Save(_ context.Context, cart *entity.Cart) error {
	if r.carts == nil {
		r.carts = map[primitive.ObjectID]*entity.Cart{}
	}
	cart.Recalculate()
	r.carts[cart.UserID] = cart
	return nil
}

func (r *fakeCartRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	delete(r.carts, userID)
	return nil
}

type fakeApplicationRepo struct {
	items map[primitive.ObjectID]*entity.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{items: map[primitive.ObjectID]*entity.Application{}}
}

func (r *fakeApplicationRepo) Create(_ context.Context, a *entity.Application) error {
	a.BeforeInsert(time.Now())
	r.items[a.ID] = a
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Application, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Application", nil)
	}
	return a, nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, a *entity.Application) error {
	a.BeforeUpdate(time.Now())
	r.items[a.ID] = a
	return nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeApplicationRepo) List(context.Context, repository.ApplicationFilter, repository.ListOptions) ([]*entity.Application, int64, error) {
	out := []*entity.Application{}
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) Count(_ context.Context, filter repository.ApplicationFilter) (int64, error) {
	var n int64
	for _, a := range r.items {
		if filter.Status == "" || a.Status == filter.Status {
			n++
		}
	}
	return n, nil
}

// Minimal file signatures recognised by mimetype.
var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
)

func uploadOf(name string, data []byte) Upload {
	return Upload{Filename: name, Size: int64(len(data)), Content: bytes.NewReader(data)}
}

type catalogDocument[T any] interface {
	*T
	entity.Document
}

type fakeCatalogRepo[T any, PT catalogDocument[T]] struct {
	items []*T
}

func (r *fakeCatalogRepo[T, PT]) Create(_ context.Context, item *T) error {
	PT(item).BeforeInsert(time.Now())
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCatalogRepo[T, PT]) GetByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	for _, it := range r.items {
		if PT(it).GetID() == id {
			return it, nil
		}
	}
	return nil, errors.NotFound("Item", nil)
}

func (r *fakeCatalogRepo[T, PT]) Update(_ context.Context, item *T) error {
	PT(item).BeforeUpdate(time.Now())
	return nil
}

func (r *fakeCatalogRepo[T, PT]) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, it := range r.items {
		if PT(it).GetID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Item", nil)
}

func (r *fakeCatalogRepo[T, PT]) List(context.Context, repository.CatalogFilter, repository.ListOptions) ([]*T, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *fakeCatalogRepo[T, PT]) Count(context.Context, repository.CatalogFilter) (int64, error) {
	return int64(len(r.items)), nil
}

func newFakeCatalog() (*CatalogUseCase, *fakeCatalogRepo[entity.Book, *entity.Book]) {
	books := &fakeCatalogRepo[entity.Book, *entity.Book]{}
	uc := NewCatalogUseCase(books, &fakeCatalogRepo[entity.Ebook, *entity.Ebook]{}, &fakeCatalogRepo[entity.Poster, *entity.Poster]{}, nil)
	return uc, books
}

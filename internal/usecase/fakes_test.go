package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeProductRepo struct {
	items     map[uuid.UUID]*domain.Product
	order     []uuid.UUID
	updates   int
	deleteErr error
	onGet     func()
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: make(map[uuid.UUID]*domain.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	cp := *p
	f.items[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return p, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if f.onGet != nil {
		f.onGet()
	}
	p, ok := f.items[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List(_ context.Context, limit, offset int) ([]domain.Product, int, error) {
	out := make([]domain.Product, 0)
	for i := offset; i < len(f.order) && i < offset+limit; i++ {
		out = append(out, *f.items[f.order[i]])
	}
	return out, len(f.order), nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	f.updates++
	cp := *p
	f.items[p.ID] = &cp
	return p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(f.items, id)
	return nil
}

type fakePartRepo struct {
	items map[uuid.UUID]*domain.ProductPart
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{items: make(map[uuid.UUID]*domain.ProductPart)}
}

func (f *fakePartRepo) Create(_ context.Context, p *domain.ProductPart) (*domain.ProductPart, error) {
	cp := *p
	f.items[p.ID] = &cp
	return p, nil
}

func (f *fakePartRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ProductPart, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, e.ErrPartNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePartRepo) List(_ context.Context) ([]domain.ProductPart, error) {
	out := make([]domain.ProductPart, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePartRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]domain.ProductPart, error) {
	var out []domain.ProductPart
	for _, p := range f.items {
		if p.ProductID == productID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePartRepo) Update(_ context.Context, p *domain.ProductPart) (*domain.ProductPart, error) {
	cp := *p
	f.items[p.ID] = &cp
	return p, nil
}

func (f *fakePartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeVariantRepo struct {
	items map[uuid.UUID]*domain.PartVariant
}

func newFakeVariantRepo() *fakeVariantRepo {
	return &fakeVariantRepo{items: make(map[uuid.UUID]*domain.PartVariant)}
}

func (f *fakeVariantRepo) add(partID uuid.UUID, name, price string) *domain.PartVariant {
	v := domain.NewPartVariant(partID, name, decimal.RequireFromString(price), true, 5)
	f.items[v.ID] = v
	return v
}

func (f *fakeVariantRepo) Create(_ context.Context, v *domain.PartVariant) (*domain.PartVariant, error) {
	cp := *v
	f.items[v.ID] = &cp
	return v, nil
}

func (f *fakeVariantRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.PartVariant, error) {
	v, ok := f.items[id]
	if !ok {
		return nil, e.ErrVariantNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVariantRepo) List(_ context.Context) ([]domain.PartVariant, error) {
	out := make([]domain.PartVariant, 0, len(f.items))
	for _, v := range f.items {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVariantRepo) ListByParts(_ context.Context, partIDs []uuid.UUID) ([]domain.PartVariant, error) {
	want := make(map[uuid.UUID]bool, len(partIDs))
	for _, id := range partIDs {
		want[id] = true
	}
	var out []domain.PartVariant
	for _, v := range f.items {
		if want[v.PartID] {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVariantRepo) Update(_ context.Context, v *domain.PartVariant) (*domain.PartVariant, error) {
	cp := *v
	f.items[v.ID] = &cp
	return v, nil
}

func (f *fakeVariantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeDependencyRepo struct {
	items map[uuid.UUID]*domain.VariantDependency
}

func newFakeDependencyRepo() *fakeDependencyRepo {
	return &fakeDependencyRepo{items: make(map[uuid.UUID]*domain.VariantDependency)}
}

func (f *fakeDependencyRepo) Create(_ context.Context, d *domain.VariantDependency) (*domain.VariantDependency, error) {
	if _, ok := f.items[d.VariantID]; ok {
		return nil, e.ErrDependencyExists
	}
	f.items[d.VariantID] = d
	return d, nil
}

func (f *fakeDependencyRepo) Get(_ context.Context, variantID uuid.UUID) (*domain.VariantDependency, error) {
	d, ok := f.items[variantID]
	if !ok {
		return nil, e.ErrDependencyNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDependencyRepo) List(_ context.Context) ([]domain.VariantDependency, error) {
	out := make([]domain.VariantDependency, 0, len(f.items))
	for _, d := range f.items {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDependencyRepo) Update(_ context.Context, d *domain.VariantDependency) (*domain.VariantDependency, error) {
	f.items[d.VariantID] = d
	return d, nil
}

func (f *fakeDependencyRepo) Delete(_ context.Context, variantID uuid.UUID) error {
	if _, ok := f.items[variantID]; !ok {
		return e.ErrDependencyNotFound
	}
	delete(f.items, variantID)
	return nil
}

type fakeCustomPriceRepo struct {
	items map[uuid.UUID]*domain.CustomPrice
}

func newFakeCustomPriceRepo() *fakeCustomPriceRepo {
	return &fakeCustomPriceRepo{items: make(map[uuid.UUID]*domain.CustomPrice)}
}

func (f *fakeCustomPriceRepo) Create(_ context.Context, c *domain.CustomPrice) (*domain.CustomPrice, error) {
	cp := *c
	f.items[c.ID] = &cp
	return c, nil
}

func (f *fakeCustomPriceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.CustomPrice, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, e.ErrCustomPriceNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomPriceRepo) List(_ context.Context) ([]domain.CustomPrice, error) {
	out := make([]domain.CustomPrice, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomPriceRepo) ListByVariant(_ context.Context, variantID uuid.UUID) ([]domain.CustomPrice, error) {
	var out []domain.CustomPrice
	for _, c := range f.items {
		if c.VariantID == variantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCustomPriceRepo) Update(_ context.Context, c *domain.CustomPrice) (*domain.CustomPrice, error) {
	cp := *c
	f.items[c.ID] = &cp
	return c, nil
}

func (f *fakeCustomPriceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeImageRepo struct {
	items     []domain.ProductImage
	createErr error
}

func (f *fakeImageRepo) CreateBatch(_ context.Context, images []domain.ProductImage) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.items = append(f.items, images...)
	return nil
}

func (f *fakeImageRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	for _, img := range f.items {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

// fakeCache потокобезопасен: запись в кэш идёт из фоновой горутины.
type fakeCache struct {
	mu      sync.Mutex
	items   map[uuid.UUID]domain.ProductDetail
	deleted []uuid.UUID
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[uuid.UUID]domain.ProductDetail)}
}

func (f *fakeCache) GetProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.ProductDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[uuid.UUID]domain.ProductDetail)
	for _, id := range ids {
		if d, ok := f.items[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func (f *fakeCache) SetProducts(_ context.Context, products []domain.ProductDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	for _, p := range products {
		f.items[p.Product.ID] = p
	}
	return nil
}

func (f *fakeCache) DeleteProducts(_ context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.items, id)
	}
	f.deleted = append(f.deleted, ids...)
	return nil
}

func (f *fakeCache) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

func (f *fakeCache) deletedIDs() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uuid.UUID(nil), f.deleted...)
}

type fakeImagesInfra struct {
	keys      []string
	uploadErr error
	cleaned   [][]string
}

func (f *fakeImagesInfra) UploadImages(_ context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	keys := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		keys = append(keys, req.Prefix+"/"+img.Name)
	}
	f.keys = append(f.keys, keys...)
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleaned = append(f.cleaned, keys)
}

type fakeCartRepo struct {
	items map[uuid.UUID]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uuid.UUID]*domain.Cart)}
}

func (f *fakeCartRepo) Create(_ context.Context, c *domain.Cart) (*domain.Cart, error) {
	cp := *c
	f.items[c.ID] = &cp
	return c, nil
}

func (f *fakeCartRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Cart, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, e.ErrCartNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCartRepo) MarkPurchased(_ context.Context, id uuid.UUID) (*domain.Cart, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, e.ErrCartNotFound
	}
	if c.Purchased {
		return nil, e.ErrCartAlreadyPurchased
	}
	c.Purchased = true
	cp := *c
	return &cp, nil
}

type fakeOutbox struct {
	events    []*OutboxEvent
	createErr error
}

func (f *fakeOutbox) Create(_ context.Context, ev *OutboxEvent) (*OutboxEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	ev.ID = int64(len(f.events) + 1)
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeOutbox) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkAsProcessed(_ context.Context, _ int64) error {
	return nil
}

// fakeEngine возвращает заранее заданные цены или ошибки по товару.
type fakeEngine struct {
	prices map[uuid.UUID]decimal.Decimal
	errs   map[uuid.UUID]error
	valid  int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{prices: make(map[uuid.UUID]decimal.Decimal), errs: make(map[uuid.UUID]error)}
}

func (f *fakeEngine) PriceConfiguration(_ context.Context, productID uuid.UUID, _ []uuid.UUID) (decimal.Decimal, error) {
	if err := f.errs[productID]; err != nil {
		return decimal.Zero, err
	}
	return f.prices[productID], nil
}

func (f *fakeEngine) ValidateConfiguration(_ context.Context, productID uuid.UUID, _ []uuid.UUID) error {
	return f.errs[productID]
}

func (f *fakeEngine) PriceValidConfiguration(ctx context.Context, productID uuid.UUID, ids []uuid.UUID) (decimal.Decimal, error) {
	f.valid++
	return f.PriceConfiguration(ctx, productID, ids)
}

package pricing

import (
	"context"
	"errors"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	products     map[uuid.UUID]*domain.Product
	parts        map[uuid.UUID]*domain.ProductPart
	variants     map[uuid.UUID]*domain.PartVariant
	dependencies map[uuid.UUID]*domain.VariantDependency
	rules        map[uuid.UUID][]domain.CustomPrice

	failWith     error
	variantCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products:     make(map[uuid.UUID]*domain.Product),
		parts:        make(map[uuid.UUID]*domain.ProductPart),
		variants:     make(map[uuid.UUID]*domain.PartVariant),
		dependencies: make(map[uuid.UUID]*domain.VariantDependency),
		rules:        make(map[uuid.UUID][]domain.CustomPrice),
	}
}

func (f *fakeCatalog) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetPart(_ context.Context, id uuid.UUID) (*domain.ProductPart, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, e.ErrPartNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetVariant(_ context.Context, id uuid.UUID) (*domain.PartVariant, error) {
	f.variantCalls++
	v, ok := f.variants[id]
	if !ok {
		return nil, e.ErrVariantNotFound
	}
	return v, nil
}

func (f *fakeCatalog) GetDependency(_ context.Context, variantID uuid.UUID) (*domain.VariantDependency, error) {
	d, ok := f.dependencies[variantID]
	if !ok {
		return nil, e.ErrDependencyNotFound
	}
	return d, nil
}

func (f *fakeCatalog) ListPriceRules(_ context.Context, variantID uuid.UUID) ([]domain.CustomPrice, error) {
	return f.rules[variantID], nil
}

func (f *fakeCatalog) addProduct(name, base string, custom bool) *domain.Product {
	p := domain.NewProduct(name, nil, "Bike", decimal.RequireFromString(base), custom, true, 10)
	f.products[p.ID] = p
	return p
}

func (f *fakeCatalog) addPart(productID uuid.UUID, name string) *domain.ProductPart {
	part := domain.NewProductPart(productID, name)
	f.parts[part.ID] = part
	return part
}

func (f *fakeCatalog) addVariant(partID uuid.UUID, name, price string, available bool, stock int) *domain.PartVariant {
	v := domain.NewPartVariant(partID, name, decimal.RequireFromString(price), available, stock)
	f.variants[v.ID] = v
	return v
}

func (f *fakeCatalog) addRule(subject, dependent uuid.UUID, surcharge string) {
	f.rules[subject] = append(f.rules[subject], *domain.NewCustomPrice(subject, dependent, decimal.RequireFromString(surcharge)))
}

func (f *fakeCatalog) requires(variant uuid.UUID, restrictions ...uuid.UUID) {
	f.dependencies[variant] = domain.NewVariantDependency(variant, restrictions)
}

// roadBike воспроизводит демонстрационный каталог: Road Bike с рулём, рамой, колёсами и покрытием.
type roadBike struct {
	catalog *fakeCatalog
	product *domain.Product

	standardHandlebar, carbonHandlebar *domain.PartVariant
	standardWheel, thinWheel           *domain.PartVariant
	standardFrame, diamondFrame        *domain.PartVariant
	matte, shiny, red                  *domain.PartVariant
}

func newRoadBike() *roadBike {
	c := newFakeCatalog()
	rb := &roadBike{catalog: c}
	rb.product = c.addProduct("Road Bike", "200.00", true)

	handlebar := c.addPart(rb.product.ID, "Handlebar")
	wheels := c.addPart(rb.product.ID, "Wheels")
	frame := c.addPart(rb.product.ID, "Frame")
	finish := c.addPart(rb.product.ID, "Finish")

	rb.standardHandlebar = c.addVariant(handlebar.ID, "Standard Road Handlebar", "100.00", true, 2)
	rb.carbonHandlebar = c.addVariant(handlebar.ID, "Custom Carbon Fiber Road Handlebar", "200.00", true, 5)
	rb.standardWheel = c.addVariant(wheels.ID, "Standard Road Wheel", "200.00", true, 10)
	rb.thinWheel = c.addVariant(wheels.ID, "Thin Road Wheel", "240.00", true, 5)
	rb.standardFrame = c.addVariant(frame.ID, "Standard Road Frame", "100.00", true, 10)
	rb.diamondFrame = c.addVariant(frame.ID, "Diamond Road Frame", "200.00", true, 10)
	rb.matte = c.addVariant(finish.ID, "Matte", "100.00", true, 15)
	rb.shiny = c.addVariant(finish.ID, "Shiny", "200.00", true, 5)
	rb.red = c.addVariant(finish.ID, "Red", "100.00", false, 0)

	c.addRule(rb.matte.ID, rb.diamondFrame.ID, "50.00")
	c.addRule(rb.carbonHandlebar.ID, rb.diamondFrame.ID, "90.00")

	c.requires(rb.thinWheel.ID, rb.standardFrame.ID)
	c.requires(rb.diamondFrame.ID, rb.matte.ID)

	return rb
}

var errStorage = errors.New("connection reset by peer")

package pgdb

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
)

// Catalog — источник данных движка цен поверх репозиториев каталога.
type Catalog struct {
	products *ProductRepo
	parts    *PartRepo
	variants *VariantRepo
	deps     *DependencyRepo
	prices   *CustomPriceRepo
}

func NewCatalog(products *ProductRepo, parts *PartRepo, variants *VariantRepo, deps *DependencyRepo, prices *CustomPriceRepo) *Catalog {
	return &Catalog{
		products: products,
		parts:    parts,
		variants: variants,
		deps:     deps,
		prices:   prices,
	}
}

func (c *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return c.products.GetByID(ctx, id)
}

func (c *Catalog) GetPart(ctx context.Context, id uuid.UUID) (*domain.ProductPart, error) {
	return c.parts.GetByID(ctx, id)
}

func (c *Catalog) GetVariant(ctx context.Context, id uuid.UUID) (*domain.PartVariant, error) {
	return c.variants.GetByID(ctx, id)
}

func (c *Catalog) GetDependency(ctx context.Context, variantID uuid.UUID) (*domain.VariantDependency, error) {
	return c.deps.Get(ctx, variantID)
}

func (c *Catalog) ListPriceRules(ctx context.Context, variantID uuid.UUID) ([]domain.CustomPrice, error) {
	return c.prices.ListByVariant(ctx, variantID)
}

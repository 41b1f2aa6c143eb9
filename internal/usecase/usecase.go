package usecase

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	GetProductDetail(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UploadProductImages(ctx context.Context, req *UploadProductImagesReq) ([]domain.ProductImage, error)
}

type PartUC interface {
	CreatePart(ctx context.Context, req *CreatePartReq) (*domain.ProductPart, error)
	GetPart(ctx context.Context, id uuid.UUID) (*domain.ProductPart, error)
	ListParts(ctx context.Context) ([]domain.ProductPart, error)
	UpdatePart(ctx context.Context, id uuid.UUID, patch domain.ProductPartPatch) (*domain.ProductPart, error)
	DeletePart(ctx context.Context, id uuid.UUID) error
}

type VariantUC interface {
	CreateVariant(ctx context.Context, req *CreateVariantReq) (*domain.PartVariant, error)
	GetVariant(ctx context.Context, id uuid.UUID) (*domain.PartVariant, error)
	ListVariants(ctx context.Context) ([]domain.PartVariant, error)
	UpdateVariant(ctx context.Context, id uuid.UUID, patch domain.PartVariantPatch) (*domain.PartVariant, error)
	DeleteVariant(ctx context.Context, id uuid.UUID) error
}

type DependencyUC interface {
	CreateDependency(ctx context.Context, req *CreateDependencyReq) (*domain.VariantDependency, error)
	GetDependency(ctx context.Context, variantID uuid.UUID) (*domain.VariantDependency, error)
	ListDependencies(ctx context.Context) ([]domain.VariantDependency, error)
	UpdateDependency(ctx context.Context, variantID uuid.UUID, patch domain.VariantDependencyPatch) (*domain.VariantDependency, error)
	DeleteDependency(ctx context.Context, variantID uuid.UUID) error
}

type CustomPriceUC interface {
	CreateCustomPrice(ctx context.Context, req *CreateCustomPriceReq) (*domain.CustomPrice, error)
	GetCustomPrice(ctx context.Context, id uuid.UUID) (*domain.CustomPrice, error)
	ListCustomPrices(ctx context.Context) ([]domain.CustomPrice, error)
	UpdateCustomPrice(ctx context.Context, id uuid.UUID, patch domain.CustomPricePatch) (*domain.CustomPrice, error)
	DeleteCustomPrice(ctx context.Context, id uuid.UUID) error
}

type PricingUC interface {
	CalculatePrice(ctx context.Context, req *ConfigurationReq) (decimal.Decimal, error)
	ValidateConfiguration(ctx context.Context, req *ConfigurationReq) error
}

type CartUC interface {
	CreateCart(ctx context.Context, req *CreateCartReq) (*domain.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
	UpdateCart(ctx context.Context, id uuid.UUID, req *UpdateCartReq) (*domain.Cart, error)
}

// UseCases собирает все сценарии для транспортного слоя.
type UseCases struct {
	Products     ProductUC
	Parts        PartUC
	Variants     VariantUC
	Dependencies DependencyUC
	CustomPrices CustomPriceUC
	Pricing      PricingUC
	Carts        CartUC
}

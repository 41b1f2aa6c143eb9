package usecase

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
)

// TxManager выполняет fn в одной транзакции. Репозитории берут транзакцию из контекста.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PartRepository interface {
	Create(ctx context.Context, part *domain.ProductPart) (*domain.ProductPart, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductPart, error)
	List(ctx context.Context) ([]domain.ProductPart, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.ProductPart, error)
	Update(ctx context.Context, part *domain.ProductPart) (*domain.ProductPart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VariantRepository interface {
	Create(ctx context.Context, variant *domain.PartVariant) (*domain.PartVariant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PartVariant, error)
	List(ctx context.Context) ([]domain.PartVariant, error)
	ListByParts(ctx context.Context, partIDs []uuid.UUID) ([]domain.PartVariant, error)
	Update(ctx context.Context, variant *domain.PartVariant) (*domain.PartVariant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DependencyRepository interface {
	Create(ctx context.Context, dep *domain.VariantDependency) (*domain.VariantDependency, error)
	Get(ctx context.Context, variantID uuid.UUID) (*domain.VariantDependency, error)
	List(ctx context.Context) ([]domain.VariantDependency, error)
	Update(ctx context.Context, dep *domain.VariantDependency) (*domain.VariantDependency, error)
	Delete(ctx context.Context, variantID uuid.UUID) error
}

type CustomPriceRepository interface {
	Create(ctx context.Context, price *domain.CustomPrice) (*domain.CustomPrice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomPrice, error)
	List(ctx context.Context) ([]domain.CustomPrice, error)
	ListByVariant(ctx context.Context, variantID uuid.UUID) ([]domain.CustomPrice, error)
	Update(ctx context.Context, price *domain.CustomPrice) (*domain.CustomPrice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CartRepository interface {
	// Create сохраняет корзину вместе с позициями.
	Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
	// MarkPurchased помечает корзину купленной. Повторная покупка — e.ErrCartAlreadyPurchased.
	MarkPurchased(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
}

type ProductImageRepository interface {
	CreateBatch(ctx context.Context, images []domain.ProductImage) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.ProductImage, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// CacheRepository кэширует карточки товара. Ошибки кэша не должны ломать чтение.
type CacheRepository interface {
	GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.ProductDetail, error)
	SetProducts(ctx context.Context, products []domain.ProductDetail) error
	DeleteProducts(ctx context.Context, ids []uuid.UUID) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

package usecase

import (
	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PRODUCTS

// CreateProductReq — запрос на создание товара.
type CreateProductReq struct {
	Name          string
	Description   *string
	Category      string
	BasePrice     decimal.Decimal
	IsCustom      bool
	IsAvailable   bool
	StockQuantity int
}

// ListProductsReq — страница каталога. Page начинается с 1.
type ListProductsReq struct {
	Page     int
	PageSize int
}

type ListProductsRes struct {
	Products []domain.Product
	Total    int
	Page     int
	PageSize int
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type, определённый по содержимому (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

type UploadProductImagesReq struct {
	ProductID uuid.UUID
	Images    []ProductImage
}

// PARTS, VARIANTS, RULES

type CreatePartReq struct {
	ProductID uuid.UUID
	Name      string
}

type CreateVariantReq struct {
	PartID        uuid.UUID
	Name          string
	Price         decimal.Decimal
	IsAvailable   bool
	StockQuantity int
}

type CreateDependencyReq struct {
	VariantID    uuid.UUID
	Restrictions []uuid.UUID
}

type CreateCustomPriceReq struct {
	VariantID          uuid.UUID
	DependentVariantID uuid.UUID
	CustomPrice        decimal.Decimal
}

// PRICING

// ConfigurationReq — товар и выбранные варианты его частей.
type ConfigurationReq struct {
	ProductID  uuid.UUID
	VariantIDs []uuid.UUID
}

// CARTS

type CreateCartReq struct {
	Items []ConfigurationReq
}

type UpdateCartReq struct {
	Purchased bool
}

// INFRASTRUCTURE

// UploadImagesReq — запрос на загрузку изображений товара. Prefix задаёт каталог объектов в бакете.
type UploadImagesReq struct {
	Prefix string
	Images []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO), в порядке входных изображений.
type UploadImagesRes struct {
	ImagesKeys []string
}

// MAPPERS

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(prefix string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Prefix: prefix,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewConfigurationReq(productID uuid.UUID, variantIDs []uuid.UUID) *ConfigurationReq {
	return &ConfigurationReq{
		ProductID:  productID,
		VariantIDs: variantIDs,
	}
}

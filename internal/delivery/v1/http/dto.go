package http

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// REQUESTS

type createProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description"`
	Category      string          `json:"category" validate:"required"`
	BasePrice     decimal.Decimal `json:"base_price"`
	IsCustom      bool            `json:"is_custom"`
	IsAvailable   bool            `json:"is_available"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
}

func (r *createProductRequest) toUC() *usecase.CreateProductReq {
	return &usecase.CreateProductReq{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		BasePrice:     r.BasePrice,
		IsCustom:      r.IsCustom,
		IsAvailable:   r.IsAvailable,
		StockQuantity: r.StockQuantity,
	}
}

type createPartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
}

type createVariantRequest struct {
	PartID        uuid.UUID       `json:"part_id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	IsAvailable   bool            `json:"is_available"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
}

type createDependencyRequest struct {
	VariantID    uuid.UUID   `json:"variant_id" validate:"required"`
	Restrictions []uuid.UUID `json:"restrictions"`
}

type createCustomPriceRequest struct {
	VariantID          uuid.UUID       `json:"variant_id" validate:"required"`
	DependentVariantID uuid.UUID       `json:"dependent_variant_id" validate:"required"`
	CustomPrice        decimal.Decimal `json:"custom_price"`
}

// configurationRequest — товар и выбранные варианты.
type configurationRequest struct {
	ProductID  uuid.UUID   `json:"product_id" validate:"required"`
	VariantIDs []uuid.UUID `json:"variant_ids"`
}

type cartItemRequest struct {
	ProductID     uuid.UUID   `json:"product_id" validate:"required"`
	SelectedParts []uuid.UUID `json:"selected_parts"`
}

type createCartRequest struct {
	Items []cartItemRequest `json:"items" validate:"dive"`
}

func (r *createCartRequest) toUC() *usecase.CreateCartReq {
	items := make([]usecase.ConfigurationReq, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, *usecase.NewConfigurationReq(it.ProductID, it.SelectedParts))
	}
	return &usecase.CreateCartReq{Items: items}
}

type updateCartRequest struct {
	Purchased *bool `json:"purchased" validate:"required"`
}

// RESPONSES

// money сериализует сумму числом с двумя знаками после запятой.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type productResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Description   *string     `json:"description"`
	Category      string      `json:"category"`
	BasePrice     json.Number `json:"base_price"`
	IsCustom      bool        `json:"is_custom"`
	IsAvailable   bool        `json:"is_available"`
	StockQuantity int         `json:"stock_quantity"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type productListResponse struct {
	Items    []productResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type productDetailResponse struct {
	productResponse
	Parts  []partDetailResponse `json:"parts"`
	Images []imageResponse      `json:"images"`
}

type partResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type partDetailResponse struct {
	partResponse
	Variants []variantResponse `json:"variants"`
}

type variantResponse struct {
	ID            uuid.UUID   `json:"id"`
	PartID        uuid.UUID   `json:"part_id"`
	Name          string      `json:"name"`
	Price         json.Number `json:"price"`
	IsAvailable   bool        `json:"is_available"`
	StockQuantity int         `json:"stock_quantity"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type dependencyResponse struct {
	VariantID    uuid.UUID   `json:"variant_id"`
	Restrictions []uuid.UUID `json:"restrictions"`
}

type customPriceResponse struct {
	ID                 uuid.UUID   `json:"id"`
	VariantID          uuid.UUID   `json:"variant_id"`
	DependentVariantID uuid.UUID   `json:"dependent_variant_id"`
	CustomPrice        json.Number `json:"custom_price"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type imageResponse struct {
	ID          uuid.UUID `json:"id"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type priceResponse struct {
	TotalPrice json.Number `json:"total_price"`
}

type validResponse struct {
	Valid bool `json:"valid"`
}

type cartItemResponse struct {
	ID            uuid.UUID   `json:"id"`
	CartID        uuid.UUID   `json:"cart_id"`
	ProductID     uuid.UUID   `json:"product_id"`
	SelectedParts []uuid.UUID `json:"selected_parts"`
	TotalPrice    json.Number `json:"total_price"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type cartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Purchased  bool               `json:"purchased"`
	TotalPrice json.Number        `json:"total_price"`
	Items      []cartItemResponse `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// MAPPERS

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		BasePrice:     money(p.BasePrice),
		IsCustom:      p.IsCustom,
		IsAvailable:   p.IsAvailable,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductListResponse(res *usecase.ListProductsRes) productListResponse {
	items := make([]productResponse, 0, len(res.Products))
	for i := range res.Products {
		items = append(items, toProductResponse(&res.Products[i]))
	}
	return productListResponse{
		Items:    items,
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	}
}

func toProductDetailResponse(d *domain.ProductDetail) productDetailResponse {
	parts := make([]partDetailResponse, 0, len(d.Parts))
	for i := range d.Parts {
		variants := make([]variantResponse, 0, len(d.Parts[i].Variants))
		for j := range d.Parts[i].Variants {
			variants = append(variants, toVariantResponse(&d.Parts[i].Variants[j]))
		}
		parts = append(parts, partDetailResponse{
			partResponse: toPartResponse(&d.Parts[i].Part),
			Variants:     variants,
		})
	}

	return productDetailResponse{
		productResponse: toProductResponse(&d.Product),
		Parts:           parts,
		Images:          toImageResponses(d.Images),
	}
}

func toPartResponse(p *domain.ProductPart) partResponse {
	return partResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPartResponses(parts []domain.ProductPart) []partResponse {
	res := make([]partResponse, 0, len(parts))
	for i := range parts {
		res = append(res, toPartResponse(&parts[i]))
	}
	return res
}

func toVariantResponse(v *domain.PartVariant) variantResponse {
	return variantResponse{
		ID:            v.ID,
		PartID:        v.PartID,
		Name:          v.Name,
		Price:         money(v.Price),
		IsAvailable:   v.IsAvailable,
		StockQuantity: v.StockQuantity,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toVariantResponses(variants []domain.PartVariant) []variantResponse {
	res := make([]variantResponse, 0, len(variants))
	for i := range variants {
		res = append(res, toVariantResponse(&variants[i]))
	}
	return res
}

func toDependencyResponse(d *domain.VariantDependency) dependencyResponse {
	restrictions := d.Restrictions
	if restrictions == nil {
		restrictions = []uuid.UUID{}
	}
	return dependencyResponse{VariantID: d.VariantID, Restrictions: restrictions}
}

func toDependencyResponses(deps []domain.VariantDependency) []dependencyResponse {
	res := make([]dependencyResponse, 0, len(deps))
	for i := range deps {
		res = append(res, toDependencyResponse(&deps[i]))
	}
	return res
}

func toCustomPriceResponse(c *domain.CustomPrice) customPriceResponse {
	return customPriceResponse{
		ID:                 c.ID,
		VariantID:          c.VariantID,
		DependentVariantID: c.DependentVariantID,
		CustomPrice:        money(c.CustomPrice),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toCustomPriceResponses(prices []domain.CustomPrice) []customPriceResponse {
	res := make([]customPriceResponse, 0, len(prices))
	for i := range prices {
		res = append(res, toCustomPriceResponse(&prices[i]))
	}
	return res
}

func toImageResponses(images []domain.ProductImage) []imageResponse {
	res := make([]imageResponse, 0, len(images))
	for _, img := range images {
		res = append(res, imageResponse{
			ID:          img.ID,
			ObjectKey:   img.ObjectKey,
			ContentType: img.ContentType,
			Size:        img.Size,
			CreatedAt:   img.CreatedAt,
		})
	}
	return res
}

func toCartResponse(c *domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		parts := it.SelectedParts
		if parts == nil {
			parts = []uuid.UUID{}
		}
		items = append(items, cartItemResponse{
			ID:            it.ID,
			CartID:        it.CartID,
			ProductID:     it.ProductID,
			SelectedParts: parts,
			TotalPrice:    money(it.TotalPrice),
			CreatedAt:     it.CreatedAt,
			UpdatedAt:     it.UpdatedAt,
		})
	}

	return cartResponse{
		ID:         c.ID,
		Purchased:  c.Purchased,
		TotalPrice: money(c.TotalPrice),
		Items:      items,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDetailRedisModel — карточка товара в кэше (JSON).
type ProductDetailRedisModel struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Category      string            `json:"category"`
	BasePrice     decimal.Decimal   `json:"base_price"`
	IsCustom      bool              `json:"is_custom"`
	IsAvailable   bool              `json:"is_available"`
	StockQuantity int               `json:"stock_quantity"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Parts         []PartRedisModel  `json:"parts"`
	Images        []ImageRedisModel `json:"images"`
}

type PartRedisModel struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Variants  []VariantRedisModel `json:"variants"`
}

type VariantRedisModel struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	IsAvailable   bool            `json:"is_available"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ImageRedisModel struct {
	ID          uuid.UUID `json:"id"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

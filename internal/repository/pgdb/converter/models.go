package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            uuid.UUID       `db:"id"`
	Name          string          `db:"name"`
	Description   *string         `db:"description"`
	Category      string          `db:"category"`
	BasePrice     decimal.Decimal `db:"base_price"`
	IsCustom      bool            `db:"is_custom"`
	IsAvailable   bool            `db:"is_available"`
	StockQuantity int             `db:"stock_quantity"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// ProductPartModel представляет запись таблицы product_parts.
type ProductPartModel struct {
	ID        uuid.UUID `db:"id"`
	ProductID uuid.UUID `db:"product_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PartVariantModel представляет запись таблицы part_variants.
type PartVariantModel struct {
	ID            uuid.UUID       `db:"id"`
	PartID        uuid.UUID       `db:"part_id"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	IsAvailable   bool            `db:"is_available"`
	StockQuantity int             `db:"stock_quantity"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type VariantDependencyModel struct {
	VariantID    uuid.UUID   `db:"variant_id"`
	Restrictions []uuid.UUID `db:"restrictions"`
}

type CustomPriceModel struct {
	ID                 uuid.UUID       `db:"id"`
	VariantID          uuid.UUID       `db:"variant_id"`
	DependentVariantID uuid.UUID       `db:"dependent_variant_id"`
	CustomPrice        decimal.Decimal `db:"custom_price"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

type ProductImageModel struct {
	ID          uuid.UUID `db:"id"`
	ProductID   uuid.UUID `db:"product_id"`
	ObjectKey   string    `db:"object_key"`
	ContentType string    `db:"content_type"`
	Size        int64     `db:"size"`
	CreatedAt   time.Time `db:"created_at"`
}

// CartModel представляет запись таблицы carts. Позиции хранятся в cart_items.
type CartModel struct {
	ID         uuid.UUID       `db:"id"`
	Purchased  bool            `db:"purchased"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

type CartItemModel struct {
	ID            uuid.UUID       `db:"id"`
	CartID        uuid.UUID       `db:"cart_id"`
	ProductID     uuid.UUID       `db:"product_id"`
	SelectedParts []uuid.UUID     `db:"selected_parts"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID uuid.UUID  `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}

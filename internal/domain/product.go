package domain

import (
	"time"

	"github.com/DRSN-tech/bikeshop-backend/pkg/opt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product описывает товар. Кастомизируемый товар (IsCustom) собирается из вариантов своих частей.
type Product struct {
	ID            uuid.UUID
	Name          string
	Description   *string
	Category      string
	BasePrice     decimal.Decimal
	IsCustom      bool
	IsAvailable   bool
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewProduct(name string, description *string, category string, basePrice decimal.Decimal,
	isCustom, isAvailable bool, stock int) *Product {
	return &Product{
		ID:            uuid.New(),
		Name:          name,
		Description:   description,
		Category:      category,
		BasePrice:     basePrice,
		IsCustom:      isCustom,
		IsAvailable:   isAvailable,
		StockQuantity: stock,
	}
}

// Sellable сообщает, можно ли продать товар прямо сейчас.
func (p *Product) Sellable() bool {
	return p.IsAvailable && p.StockQuantity > 0
}

// ProductPatch — частичное обновление товара.
type ProductPatch struct {
	Name          opt.Field[string]          `json:"name"`
	Description   opt.Field[*string]         `json:"description"`
	Category      opt.Field[string]          `json:"category"`
	BasePrice     opt.Field[decimal.Decimal] `json:"base_price"`
	IsCustom      opt.Field[bool]            `json:"is_custom"`
	IsAvailable   opt.Field[bool]            `json:"is_available"`
	StockQuantity opt.Field[int]             `json:"stock_quantity"`
}

// Apply применяет установленные поля к товару и сообщает, изменилось ли что-нибудь.
func (p ProductPatch) Apply(pr *Product) bool {
	changed := p.Name.Apply(&pr.Name)
	changed = p.Description.Apply(&pr.Description) || changed
	changed = p.Category.Apply(&pr.Category) || changed
	changed = p.BasePrice.Apply(&pr.BasePrice) || changed
	changed = p.IsCustom.Apply(&pr.IsCustom) || changed
	changed = p.IsAvailable.Apply(&pr.IsAvailable) || changed
	changed = p.StockQuantity.Apply(&pr.StockQuantity) || changed

	return changed
}

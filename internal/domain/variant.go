package domain

import (
	"time"

	"github.com/DRSN-tech/bikeshop-backend/pkg/opt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartVariant — конкретный вариант части со своей ценой и остатком.
type PartVariant struct {
	ID            uuid.UUID
	PartID        uuid.UUID
	Name          string
	Price         decimal.Decimal
	IsAvailable   bool
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPartVariant(partID uuid.UUID, name string, price decimal.Decimal, isAvailable bool, stock int) *PartVariant {
	return &PartVariant{
		ID:            uuid.New(),
		PartID:        partID,
		Name:          name,
		Price:         price,
		IsAvailable:   isAvailable,
		StockQuantity: stock,
	}
}

type PartVariantPatch struct {
	PartID        opt.Field[uuid.UUID]       `json:"part_id"`
	Name          opt.Field[string]          `json:"name"`
	Price         opt.Field[decimal.Decimal] `json:"price"`
	IsAvailable   opt.Field[bool]            `json:"is_available"`
	StockQuantity opt.Field[int]             `json:"stock_quantity"`
}

func (p PartVariantPatch) Apply(v *PartVariant) bool {
	changed := p.PartID.Apply(&v.PartID)
	changed = p.Name.Apply(&v.Name) || changed
	changed = p.Price.Apply(&v.Price) || changed
	changed = p.IsAvailable.Apply(&v.IsAvailable) || changed
	changed = p.StockQuantity.Apply(&v.StockQuantity) || changed

	return changed
}

package domain

import (
	"time"

	"github.com/DRSN-tech/bikeshop-backend/pkg/opt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomPrice — условная надбавка: CustomPrice добавляется к цене,
// только если выбраны одновременно VariantID и DependentVariantID.
type CustomPrice struct {
	ID                 uuid.UUID
	VariantID          uuid.UUID
	DependentVariantID uuid.UUID
	CustomPrice        decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewCustomPrice(variantID, dependentVariantID uuid.UUID, surcharge decimal.Decimal) *CustomPrice {
	return &CustomPrice{
		ID:                 uuid.New(),
		VariantID:          variantID,
		DependentVariantID: dependentVariantID,
		CustomPrice:        surcharge,
	}
}

type CustomPricePatch struct {
	VariantID          opt.Field[uuid.UUID]       `json:"variant_id"`
	DependentVariantID opt.Field[uuid.UUID]       `json:"dependent_variant_id"`
	CustomPrice        opt.Field[decimal.Decimal] `json:"custom_price"`
}

func (p CustomPricePatch) Apply(c *CustomPrice) bool {
	changed := p.VariantID.Apply(&c.VariantID)
	changed = p.DependentVariantID.Apply(&c.DependentVariantID) || changed
	changed = p.CustomPrice.Apply(&c.CustomPrice) || changed

	return changed
}

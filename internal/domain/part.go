package domain

import (
	"time"

	"github.com/DRSN-tech/bikeshop-backend/pkg/opt"
	"github.com/google/uuid"
)

// ProductPart — слот товара (рама, колёса и т.д.). Цены не имеет, только группирует варианты.
type ProductPart struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProductPart(productID uuid.UUID, name string) *ProductPart {
	return &ProductPart{
		ID:        uuid.New(),
		ProductID: productID,
		Name:      name,
	}
}

type ProductPartPatch struct {
	ProductID opt.Field[uuid.UUID] `json:"product_id"`
	Name      opt.Field[string]    `json:"name"`
}

func (p ProductPartPatch) Apply(part *ProductPart) bool {
	changed := p.ProductID.Apply(&part.ProductID)
	changed = p.Name.Apply(&part.Name) || changed

	return changed
}

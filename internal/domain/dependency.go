package domain

import (
	"github.com/DRSN-tech/bikeshop-backend/pkg/opt"
	"github.com/google/uuid"
)

// VariantDependency ограничивает выбор варианта VariantID.
// Restrictions — список вариантов, хотя бы один из которых должен быть выбран вместе с ним.
// Пустой список ничего не ограничивает.
type VariantDependency struct {
	VariantID    uuid.UUID
	Restrictions []uuid.UUID
}

func NewVariantDependency(variantID uuid.UUID, restrictions []uuid.UUID) *VariantDependency {
	return &VariantDependency{
		VariantID:    variantID,
		Restrictions: restrictions,
	}
}

type VariantDependencyPatch struct {
	Restrictions opt.Field[[]uuid.UUID] `json:"restrictions"`
}

func (p VariantDependencyPatch) Apply(d *VariantDependency) bool {
	return p.Restrictions.Apply(&d.Restrictions)
}

package pricing

import (
	"errors"
	"fmt"

	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
)

// Kind — причина отклонения конфигурации.
type Kind int

const (
	KindProductNotFound Kind = iota + 1
	KindProductUnavailable
	KindProductOutOfStock
	KindProductNotCustomisable
	KindVariantNotFound
	KindVariantUnavailable
	KindVariantOutOfStock
	KindVariantNotInProduct
	KindDependencyUnmet
)

type kindInfo struct {
	name    string
	subject string
	err     error
}

var kinds = map[Kind]kindInfo{
	KindProductNotFound:        {"ProductNotFound", "product", e.ErrProductNotFound},
	KindProductUnavailable:     {"ProductUnavailable", "product", e.ErrProductUnavailable},
	KindProductOutOfStock:      {"ProductOutOfStock", "product", e.ErrProductOutOfStock},
	KindProductNotCustomisable: {"ProductNotCustomisable", "product", e.ErrProductNotCustomisable},
	KindVariantNotFound:        {"VariantNotFound", "variant", e.ErrVariantNotFound},
	KindVariantUnavailable:     {"VariantUnavailable", "variant", e.ErrVariantUnavailable},
	KindVariantOutOfStock:      {"VariantOutOfStock", "variant", e.ErrVariantOutOfStock},
	KindVariantNotInProduct:    {"VariantNotInProduct", "variant", e.ErrVariantNotInProduct},
	KindDependencyUnmet:        {"DependencyUnmet", "variant", e.ErrDependencyUnmet},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Reason возвращает человекочитаемую причину без префикса вида ошибки.
func (k Kind) Reason() string {
	switch k {
	case KindProductNotFound:
		return "product not found"
	case KindProductUnavailable:
		return "product is unavailable"
	case KindProductOutOfStock:
		return "product is out of stock"
	case KindProductNotCustomisable:
		return "product is not customisable"
	case KindVariantNotFound:
		return "variant not found"
	case KindVariantUnavailable:
		return "variant is unavailable"
	case KindVariantOutOfStock:
		return "variant is out of stock"
	case KindVariantNotInProduct:
		return "variant does not belong to product"
	case KindDependencyUnmet:
		return "unmet dependency"
	default:
		return "rejected"
	}
}

// Rejection — типизированный отказ с идентификатором проблемной сущности.
// Разворачивается в сентинел из pkg/e, поэтому пригоден для errors.Is.
type Rejection struct {
	Kind Kind
	ID   uuid.UUID
}

func reject(kind Kind, id uuid.UUID) *Rejection {
	return &Rejection{Kind: kind, ID: id}
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s %s: %s", kinds[r.Kind].subject, r.ID, r.Kind.Reason())
}

func (r *Rejection) Unwrap() error {
	return kinds[r.Kind].err
}

// AsRejection извлекает Rejection из цепочки ошибок.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// Package pricing вычисляет цену сконфигурированного товара и проверяет допустимость конфигурации.
//
// Движок не хранит состояния: все данные читаются из каталога в момент вызова.
// Цена = базовая цена товара + цены выбранных вариантов + условные надбавки,
// у которых выбраны оба варианта пары.
package pricing

import (
	"context"
	"errors"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog — источник данных движка. Отсутствие записи сообщается ошибкой вида e.ErrNotFound.
type Catalog interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetPart(ctx context.Context, id uuid.UUID) (*domain.ProductPart, error)
	GetVariant(ctx context.Context, id uuid.UUID) (*domain.PartVariant, error)
	GetDependency(ctx context.Context, variantID uuid.UUID) (*domain.VariantDependency, error)
	ListPriceRules(ctx context.Context, variantID uuid.UUID) ([]domain.CustomPrice, error)
}

type Options struct {
	// EnforceOwnership требует, чтобы каждый вариант принадлежал части оцениваемого товара,
	// а сам товар был кастомизируемым.
	EnforceOwnership bool
	// CheckDependencies включает проверку зависимостей внутри PriceConfiguration.
	CheckDependencies bool
}

type Option func(*Options)

func WithOwnershipCheck(enabled bool) Option {
	return func(o *Options) { o.EnforceOwnership = enabled }
}

func WithDependencyCheck(enabled bool) Option {
	return func(o *Options) { o.CheckDependencies = enabled }
}

type Engine struct {
	catalog Catalog
	opts    Options
}

// NewEngine создаёт движок. По умолчанию принадлежность вариантов проверяется, зависимости — нет.
func NewEngine(catalog Catalog, opts ...Option) *Engine {
	o := Options{EnforceOwnership: true}
	for _, apply := range opts {
		apply(&o)
	}

	return &Engine{catalog: catalog, opts: o}
}

func (en *Engine) Options() Options {
	return en.opts
}

type mode struct {
	checkDependencies bool
	price             bool
}

type rulePair struct {
	subject   uuid.UUID
	dependent uuid.UUID
}

// PriceConfiguration возвращает итоговую цену конфигурации либо *Rejection.
// Ошибки сообщаются в порядке входного списка: побеждает первый проблемный вариант.
func (en *Engine) PriceConfiguration(ctx context.Context, productID uuid.UUID, variantIDs []uuid.UUID) (decimal.Decimal, error) {
	return en.evaluate(ctx, productID, variantIDs, mode{checkDependencies: en.opts.CheckDependencies, price: true})
}

// ValidateConfiguration выполняет все проверки, включая зависимости, без расчёта цены.
func (en *Engine) ValidateConfiguration(ctx context.Context, productID uuid.UUID, variantIDs []uuid.UUID) error {
	_, err := en.evaluate(ctx, productID, variantIDs, mode{checkDependencies: true})
	return err
}

// PriceValidConfiguration считает цену с обязательной проверкой зависимостей.
func (en *Engine) PriceValidConfiguration(ctx context.Context, productID uuid.UUID, variantIDs []uuid.UUID) (decimal.Decimal, error) {
	return en.evaluate(ctx, productID, variantIDs, mode{checkDependencies: true, price: true})
}

// IsVariantAllowed проверяет правило зависимости варианта против выбранного набора.
func (en *Engine) IsVariantAllowed(ctx context.Context, variantID uuid.UUID, selected Set) (bool, error) {
	const op = "pricing.IsVariantAllowed"

	dep, err := en.catalog.GetDependency(ctx, variantID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return true, nil
		}
		return false, e.Wrap(op, err)
	}

	return Allowed(dep, selected), nil
}

// CheckVariantSellable проверяет доступность и остаток варианта. nil означает отсутствующий вариант.
func CheckVariantSellable(id uuid.UUID, v *domain.PartVariant) error {
	switch {
	case v == nil:
		return reject(KindVariantNotFound, id)
	case !v.IsAvailable:
		return reject(KindVariantUnavailable, id)
	case v.StockQuantity <= 0:
		return reject(KindVariantOutOfStock, id)
	}
	return nil
}

func checkProductSellable(p *domain.Product) error {
	switch {
	case !p.IsAvailable:
		return reject(KindProductUnavailable, p.ID)
	case p.StockQuantity <= 0:
		return reject(KindProductOutOfStock, p.ID)
	}
	return nil
}

func (en *Engine) evaluate(ctx context.Context, productID uuid.UUID, variantIDs []uuid.UUID, m mode) (decimal.Decimal, error) {
	const op = "pricing.Engine.evaluate"

	product, err := en.catalog.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, lookupError(op, err, KindProductNotFound, productID)
	}

	if err := checkProductSellable(product); err != nil {
		return decimal.Zero, err
	}

	ids := Dedupe(variantIDs)
	if len(ids) > 0 && en.opts.EnforceOwnership && !product.IsCustom {
		return decimal.Zero, reject(KindProductNotCustomisable, productID)
	}

	var (
		selected = NewSet(ids)
		total    = product.BasePrice
		fired    = make(map[rulePair]struct{})
		owners   = make(map[uuid.UUID]uuid.UUID) // part -> product
	)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, e.Wrap(op, err)
		}

		variant, err := en.catalog.GetVariant(ctx, id)
		if err != nil {
			return decimal.Zero, lookupError(op, err, KindVariantNotFound, id)
		}

		if err := CheckVariantSellable(id, variant); err != nil {
			return decimal.Zero, err
		}

		if en.opts.EnforceOwnership {
			owned, err := en.belongsTo(ctx, variant, productID, owners)
			if err != nil {
				return decimal.Zero, e.Wrap(op, err)
			}
			if !owned {
				return decimal.Zero, reject(KindVariantNotInProduct, id)
			}
		}

		if m.checkDependencies {
			allowed, err := en.IsVariantAllowed(ctx, id, selected)
			if err != nil {
				return decimal.Zero, e.Wrap(op, err)
			}
			if !allowed {
				return decimal.Zero, reject(KindDependencyUnmet, id)
			}
		}

		if !m.price {
			continue
		}

		total = total.Add(variant.Price)

		rules, err := en.catalog.ListPriceRules(ctx, id)
		if err != nil {
			return decimal.Zero, e.Wrap(op, err)
		}
		for _, rule := range rules {
			if !selected.Has(rule.DependentVariantID) {
				continue
			}
			key := rulePair{subject: id, dependent: rule.DependentVariantID}
			if _, ok := fired[key]; ok {
				continue
			}
			fired[key] = struct{}{}
			total = total.Add(rule.CustomPrice)
		}
	}

	return total, nil
}

// belongsTo проверяет, что часть варианта принадлежит товару. Части кэшируются в пределах запроса.
func (en *Engine) belongsTo(ctx context.Context, v *domain.PartVariant, productID uuid.UUID, owners map[uuid.UUID]uuid.UUID) (bool, error) {
	owner, ok := owners[v.PartID]
	if !ok {
		part, err := en.catalog.GetPart(ctx, v.PartID)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		owner = part.ProductID
		owners[v.PartID] = owner
	}

	return owner == productID, nil
}

func lookupError(op string, err error, kind Kind, id uuid.UUID) error {
	if errors.Is(err, e.ErrNotFound) {
		return reject(kind, id)
	}
	return e.Wrap(op, err)
}

// Package seed загружает демонстрационный каталог из YAML.
package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Catalog — содержимое файла сида. Записи ссылаются друг на друга по ключам.
type Catalog struct {
	Products     []Product     `yaml:"products"`
	CustomPrices []CustomPrice `yaml:"custom_prices"`
	Dependencies []Dependency  `yaml:"dependencies"`
}

type Product struct {
	Key           string  `yaml:"key"`
	Name          string  `yaml:"name"`
	Description   *string `yaml:"description"`
	Category      string  `yaml:"category"`
	BasePrice     string  `yaml:"base_price"`
	IsCustom      bool    `yaml:"is_custom"`
	IsAvailable   bool    `yaml:"is_available"`
	StockQuantity int     `yaml:"stock_quantity"`
	Parts         []Part  `yaml:"parts"`
}

type Part struct {
	Key      string    `yaml:"key"`
	Name     string    `yaml:"name"`
	Variants []Variant `yaml:"variants"`
}

type Variant struct {
	Key           string `yaml:"key"`
	Name          string `yaml:"name"`
	Price         string `yaml:"price"`
	IsAvailable   bool   `yaml:"is_available"`
	StockQuantity int    `yaml:"stock_quantity"`
}

type CustomPrice struct {
	Variant          string `yaml:"variant"`
	DependentVariant string `yaml:"dependent_variant"`
	CustomPrice      string `yaml:"custom_price"`
}

type Dependency struct {
	Variant      string   `yaml:"variant"`
	Restrictions []string `yaml:"restrictions"`
}

// Load читает каталог и проверяет ссылки между записями.
func Load(r io.Reader) (*Catalog, error) {
	const op = "seed.Load"

	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := c.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &c, nil
}

// Validate проверяет уникальность ключей, цены и ссылки правил на существующие варианты.
func (c *Catalog) Validate() error {
	keys := make(map[string]struct{})
	variants := make(map[string]struct{})

	unique := func(key string) error {
		if key == "" {
			return fmt.Errorf("%w: empty key", e.ErrMissingFields)
		}
		if _, ok := keys[key]; ok {
			return fmt.Errorf("%w: duplicate key %q", e.ErrValidation, key)
		}
		keys[key] = struct{}{}
		return nil
	}

	for _, p := range c.Products {
		if err := unique(p.Key); err != nil {
			return err
		}
		if _, err := parseMoney(p.BasePrice); err != nil {
			return fmt.Errorf("product %q: %w", p.Key, err)
		}
		for _, part := range p.Parts {
			if err := unique(part.Key); err != nil {
				return err
			}
			for _, v := range part.Variants {
				if err := unique(v.Key); err != nil {
					return err
				}
				if _, err := parseMoney(v.Price); err != nil {
					return fmt.Errorf("variant %q: %w", v.Key, err)
				}
				variants[v.Key] = struct{}{}
			}
		}
	}

	known := func(key string) error {
		if _, ok := variants[key]; !ok {
			return fmt.Errorf("%w: unknown variant %q", e.ErrValidation, key)
		}
		return nil
	}

	for _, cp := range c.CustomPrices {
		if err := known(cp.Variant); err != nil {
			return err
		}
		if err := known(cp.DependentVariant); err != nil {
			return err
		}
		if cp.Variant == cp.DependentVariant {
			return fmt.Errorf("%w: custom price %q references itself", e.ErrValidation, cp.Variant)
		}
		if _, err := parseMoney(cp.CustomPrice); err != nil {
			return fmt.Errorf("custom price %q: %w", cp.Variant, err)
		}
	}

	for _, d := range c.Dependencies {
		if err := known(d.Variant); err != nil {
			return err
		}
		for _, r := range d.Restrictions {
			if err := known(r); err != nil {
				return err
			}
		}
	}

	return nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", e.ErrInvalidPrice, s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", e.ErrInvalidPrice, s)
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", e.ErrPricePrecision, s)
	}
	return d, nil
}

// Purger очищает таблицы перед загрузкой.
type Purger interface {
	Purge(ctx context.Context) error
}

// Seeder пишет каталог через репозитории в одной транзакции.
type Seeder struct {
	txManager    usecase.TxManager
	purger       Purger
	products     usecase.ProductRepository
	parts        usecase.PartRepository
	variants     usecase.VariantRepository
	dependencies usecase.DependencyRepository
	customPrices usecase.CustomPriceRepository
	logger       logger.Logger
}

func NewSeeder(
	txManager usecase.TxManager,
	purger Purger,
	products usecase.ProductRepository,
	parts usecase.PartRepository,
	variants usecase.VariantRepository,
	dependencies usecase.DependencyRepository,
	customPrices usecase.CustomPriceRepository,
	logger logger.Logger,
) *Seeder {
	return &Seeder{
		txManager:    txManager,
		purger:       purger,
		products:     products,
		parts:        parts,
		variants:     variants,
		dependencies: dependencies,
		customPrices: customPrices,
		logger:       logger,
	}
}

// Result — идентификаторы созданных записей по ключам сида.
type Result struct {
	Products map[string]uuid.UUID
	Parts    map[string]uuid.UUID
	Variants map[string]uuid.UUID
}

// Run удаляет существующие данные и загружает каталог заново.
func (s *Seeder) Run(ctx context.Context, c *Catalog) (*Result, error) {
	const op = "Seeder.Run"

	res := &Result{
		Products: make(map[string]uuid.UUID),
		Parts:    make(map[string]uuid.UUID),
		Variants: make(map[string]uuid.UUID),
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.purger.Purge(ctx); err != nil {
			return err
		}

		for _, p := range c.Products {
			if err := s.createProduct(ctx, p, res); err != nil {
				return err
			}
		}

		for _, cp := range c.CustomPrices {
			surcharge, _ := parseMoney(cp.CustomPrice)
			price := domain.NewCustomPrice(res.Variants[cp.Variant], res.Variants[cp.DependentVariant], surcharge)
			if _, err := s.customPrices.Create(ctx, price); err != nil {
				return fmt.Errorf("custom price %s/%s: %w", cp.Variant, cp.DependentVariant, err)
			}
		}

		for _, d := range c.Dependencies {
			restrictions := make([]uuid.UUID, 0, len(d.Restrictions))
			for _, r := range d.Restrictions {
				restrictions = append(restrictions, res.Variants[r])
			}
			if _, err := s.dependencies.Create(ctx, domain.NewVariantDependency(res.Variants[d.Variant], restrictions)); err != nil {
				return fmt.Errorf("dependency %s: %w", d.Variant, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Infof("seeded %d products, %d parts, %d variants, %d custom prices, %d dependencies",
		len(res.Products), len(res.Parts), len(res.Variants), len(c.CustomPrices), len(c.Dependencies))

	return res, nil
}

func (s *Seeder) createProduct(ctx context.Context, p Product, res *Result) error {
	basePrice, _ := parseMoney(p.BasePrice)
	product, err := s.products.Create(ctx, domain.NewProduct(
		p.Name, p.Description, p.Category, basePrice, p.IsCustom, p.IsAvailable, p.StockQuantity,
	))
	if err != nil {
		return fmt.Errorf("product %s: %w", p.Key, err)
	}
	res.Products[p.Key] = product.ID

	for _, part := range p.Parts {
		created, err := s.parts.Create(ctx, domain.NewProductPart(product.ID, part.Name))
		if err != nil {
			return fmt.Errorf("part %s: %w", part.Key, err)
		}
		res.Parts[part.Key] = created.ID

		for _, v := range part.Variants {
			price, _ := parseMoney(v.Price)
			variant, err := s.variants.Create(ctx, domain.NewPartVariant(created.ID, v.Name, price, v.IsAvailable, v.StockQuantity))
			if err != nil {
				return fmt.Errorf("variant %s: %w", v.Key, err)
			}
			res.Variants[v.Key] = variant.ID
		}
	}

	return nil
}

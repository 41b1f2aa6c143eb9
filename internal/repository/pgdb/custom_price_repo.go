package pgdb

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const customPriceColumns = `id, variant_id, dependent_variant_id, custom_price, created_at, updated_at`

// CustomPriceRepo хранит условные надбавки.
type CustomPriceRepo struct {
	pool *pgxpool.Pool
	conv converter.CustomPriceConverter
}

func NewCustomPriceRepo(pool *pgxpool.Pool, conv converter.CustomPriceConverter) *CustomPriceRepo {
	return &CustomPriceRepo{pool: pool, conv: conv}
}

func scanCustomPrice(row pgx.Row) (*converter.CustomPriceModel, error) {
	var m converter.CustomPriceModel
	err := row.Scan(&m.ID, &m.VariantID, &m.DependentVariantID, &m.CustomPrice, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (c *CustomPriceRepo) Create(ctx context.Context, price *domain.CustomPrice) (*domain.CustomPrice, error) {
	model := c.conv.ToModel(price)
	query := `
		INSERT INTO custom_prices (id, variant_id, dependent_variant_id, custom_price)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + customPriceColumns

	created, err := scanCustomPrice(conn(ctx, c.pool).QueryRow(ctx, query,
		model.ID, model.VariantID, model.DependentVariantID, model.CustomPrice,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrCustomPriceNotFound))
	}
	return c.conv.ToEntity(created), nil
}

func (c *CustomPriceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomPrice, error) {
	model, err := scanCustomPrice(conn(ctx, c.pool).QueryRow(ctx,
		`SELECT `+customPriceColumns+` FROM custom_prices WHERE id = $1`, id,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrCustomPriceNotFound))
	}
	return c.conv.ToEntity(model), nil
}

func (c *CustomPriceRepo) List(ctx context.Context) ([]domain.CustomPrice, error) {
	return c.list(ctx, `SELECT `+customPriceColumns+` FROM custom_prices ORDER BY created_at, id`)
}

// ListByVariant возвращает правила, у которых variant_id совпадает с переданным, в порядке создания.
func (c *CustomPriceRepo) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]domain.CustomPrice, error) {
	return c.list(ctx,
		`SELECT `+customPriceColumns+` FROM custom_prices WHERE variant_id = $1 ORDER BY created_at, id`, variantID)
}

func (c *CustomPriceRepo) list(ctx context.Context, query string, args ...any) ([]domain.CustomPrice, error) {
	rows, err := conn(ctx, c.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.CustomPrice, 0)
	for rows.Next() {
		model, err := scanCustomPrice(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *c.conv.ToEntity(model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (c *CustomPriceRepo) Update(ctx context.Context, price *domain.CustomPrice) (*domain.CustomPrice, error) {
	model := c.conv.ToModel(price)
	query := `
		UPDATE custom_prices
		SET variant_id = $2, dependent_variant_id = $3, custom_price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + customPriceColumns

	updated, err := scanCustomPrice(conn(ctx, c.pool).QueryRow(ctx, query,
		model.ID, model.VariantID, model.DependentVariantID, model.CustomPrice,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrCustomPriceNotFound))
	}
	return c.conv.ToEntity(updated), nil
}

func (c *CustomPriceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, c.pool).Exec(ctx, `DELETE FROM custom_prices WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := expectOne(tag, e.ErrCustomPriceNotFound); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

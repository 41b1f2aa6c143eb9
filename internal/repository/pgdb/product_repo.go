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

const productColumns = `id, name, description, category, base_price, is_custom, is_available, stock_quantity, created_at, updated_at`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var m converter.ProductModel
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Category, &m.BasePrice,
		&m.IsCustom, &m.IsAvailable, &m.StockQuantity, &m.CreatedAt, &m.UpdatedAt,
	)
	return &m, err
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (id, name, description, category, base_price, is_custom, is_available, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	created, err := scanProduct(conn(ctx, p.pool).QueryRow(ctx, query,
		model.ID, model.Name, model.Description, model.Category, model.BasePrice,
		model.IsCustom, model.IsAvailable, model.StockQuantity,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(created), nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	model, err := scanProduct(conn(ctx, p.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(model), nil
}

// List возвращает страницу товаров в порядке создания и общее количество товаров.
func (p *ProductRepo) List(ctx context.Context, limit, offset int) ([]domain.Product, int, error) {
	q := conn(ctx, p.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0, limit)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *p.conv.ToEntity(model))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, total, nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, base_price = $5,
			is_custom = $6, is_available = $7, stock_quantity = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(conn(ctx, p.pool).QueryRow(ctx, query,
		model.ID, model.Name, model.Description, model.Category, model.BasePrice,
		model.IsCustom, model.IsAvailable, model.StockQuantity,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrProductNotFound))
	}

	return p.conv.ToEntity(updated), nil
}

// Delete удаляет товар. Товар с частями или позициями в корзинах удалить нельзя (e.ErrReferencedRecord).
func (p *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, p.pool).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrProductNotFound))
	}

	if err := expectOne(tag, e.ErrProductNotFound); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

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

const partColumns = `id, product_id, name, created_at, updated_at`

// PartRepo хранит части товаров.
type PartRepo struct {
	pool *pgxpool.Pool
	conv converter.PartConverter
}

func NewPartRepo(pool *pgxpool.Pool, conv converter.PartConverter) *PartRepo {
	return &PartRepo{pool: pool, conv: conv}
}

func scanPart(row pgx.Row) (*converter.ProductPartModel, error) {
	var m converter.ProductPartModel
	err := row.Scan(&m.ID, &m.ProductID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (p *PartRepo) Create(ctx context.Context, part *domain.ProductPart) (*domain.ProductPart, error) {
	model := p.conv.ToModel(part)
	query := `INSERT INTO product_parts (id, product_id, name) VALUES ($1, $2, $3) RETURNING ` + partColumns

	created, err := scanPart(conn(ctx, p.pool).QueryRow(ctx, query, model.ID, model.ProductID, model.Name))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrPartNotFound))
	}
	return p.conv.ToEntity(created), nil
}

func (p *PartRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductPart, error) {
	query := `SELECT ` + partColumns + ` FROM product_parts WHERE id = $1`

	model, err := scanPart(conn(ctx, p.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrPartNotFound))
	}
	return p.conv.ToEntity(model), nil
}

func (p *PartRepo) List(ctx context.Context) ([]domain.ProductPart, error) {
	return p.list(ctx, `SELECT `+partColumns+` FROM product_parts ORDER BY created_at, id`)
}

func (p *PartRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.ProductPart, error) {
	return p.list(ctx, `SELECT `+partColumns+` FROM product_parts WHERE product_id = $1 ORDER BY created_at, id`, productID)
}

func (p *PartRepo) list(ctx context.Context, query string, args ...any) ([]domain.ProductPart, error) {
	rows, err := conn(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.ProductPart, 0)
	for rows.Next() {
		model, err := scanPart(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *p.conv.ToEntity(model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (p *PartRepo) Update(ctx context.Context, part *domain.ProductPart) (*domain.ProductPart, error) {
	model := p.conv.ToModel(part)
	query := `
		UPDATE product_parts SET product_id = $2, name = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + partColumns

	updated, err := scanPart(conn(ctx, p.pool).QueryRow(ctx, query, model.ID, model.ProductID, model.Name))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrPartNotFound))
	}
	return p.conv.ToEntity(updated), nil
}

func (p *PartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, p.pool).Exec(ctx, `DELETE FROM product_parts WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrPartNotFound))
	}
	if err := expectOne(tag, e.ErrPartNotFound); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

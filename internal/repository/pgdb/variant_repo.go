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

const variantColumns = `id, part_id, name, price, is_available, stock_quantity, created_at, updated_at`

// VariantRepo хранит варианты частей.
type VariantRepo struct {
	pool *pgxpool.Pool
	conv converter.VariantConverter
}

func NewVariantRepo(pool *pgxpool.Pool, conv converter.VariantConverter) *VariantRepo {
	return &VariantRepo{pool: pool, conv: conv}
}

func scanVariant(row pgx.Row) (*converter.PartVariantModel, error) {
	var m converter.PartVariantModel
	err := row.Scan(
		&m.ID, &m.PartID, &m.Name, &m.Price, &m.IsAvailable, &m.StockQuantity, &m.CreatedAt, &m.UpdatedAt,
	)
	return &m, err
}

func (v *VariantRepo) Create(ctx context.Context, variant *domain.PartVariant) (*domain.PartVariant, error) {
	model := v.conv.ToModel(variant)
	query := `
		INSERT INTO part_variants (id, part_id, name, price, is_available, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + variantColumns

	created, err := scanVariant(conn(ctx, v.pool).QueryRow(ctx, query,
		model.ID, model.PartID, model.Name, model.Price, model.IsAvailable, model.StockQuantity,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrVariantNotFound))
	}
	return v.conv.ToEntity(created), nil
}

func (v *VariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PartVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM part_variants WHERE id = $1`

	model, err := scanVariant(conn(ctx, v.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrVariantNotFound))
	}
	return v.conv.ToEntity(model), nil
}

func (v *VariantRepo) List(ctx context.Context) ([]domain.PartVariant, error) {
	return v.list(ctx, `SELECT `+variantColumns+` FROM part_variants ORDER BY created_at, id`)
}

// ListByParts возвращает варианты перечисленных частей одним запросом.
func (v *VariantRepo) ListByParts(ctx context.Context, partIDs []uuid.UUID) ([]domain.PartVariant, error) {
	return v.list(ctx, `SELECT `+variantColumns+` FROM part_variants WHERE part_id = ANY($1) ORDER BY created_at, id`, partIDs)
}

func (v *VariantRepo) list(ctx context.Context, query string, args ...any) ([]domain.PartVariant, error) {
	rows, err := conn(ctx, v.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.PartVariant, 0)
	for rows.Next() {
		model, err := scanVariant(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *v.conv.ToEntity(model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (v *VariantRepo) Update(ctx context.Context, variant *domain.PartVariant) (*domain.PartVariant, error) {
	model := v.conv.ToModel(variant)
	query := `
		UPDATE part_variants
		SET part_id = $2, name = $3, price = $4, is_available = $5, stock_quantity = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + variantColumns

	updated, err := scanVariant(conn(ctx, v.pool).QueryRow(ctx, query,
		model.ID, model.PartID, model.Name, model.Price, model.IsAvailable, model.StockQuantity,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrVariantNotFound))
	}
	return v.conv.ToEntity(updated), nil
}

func (v *VariantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, v.pool).Exec(ctx, `DELETE FROM part_variants WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrVariantNotFound))
	}
	if err := expectOne(tag, e.ErrVariantNotFound); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

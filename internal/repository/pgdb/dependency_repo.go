package pgdb

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// DependencyRepo хранит правила совместимости. На вариант приходится не более одного правила.
type DependencyRepo struct {
	pool *pgxpool.Pool
	conv converter.DependencyConverter
}

func NewDependencyRepo(pool *pgxpool.Pool, conv converter.DependencyConverter) *DependencyRepo {
	return &DependencyRepo{pool: pool, conv: conv}
}

func (d *DependencyRepo) Create(ctx context.Context, dep *domain.VariantDependency) (*domain.VariantDependency, error) {
	model := d.conv.ToModel(dep)
	query := `
		INSERT INTO variant_dependencies (variant_id, restrictions) VALUES ($1, $2)
		RETURNING variant_id, restrictions
	`

	var created converter.VariantDependencyModel
	err := conn(ctx, d.pool).QueryRow(ctx, query, model.VariantID, model.Restrictions).
		Scan(&created.VariantID, &created.Restrictions)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrDependencyExists)
		}
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrVariantNotFound))
	}

	return d.conv.ToEntity(&created), nil
}

func (d *DependencyRepo) Get(ctx context.Context, variantID uuid.UUID) (*domain.VariantDependency, error) {
	var model converter.VariantDependencyModel
	err := conn(ctx, d.pool).QueryRow(ctx,
		`SELECT variant_id, restrictions FROM variant_dependencies WHERE variant_id = $1`, variantID,
	).Scan(&model.VariantID, &model.Restrictions)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrDependencyNotFound))
	}

	return d.conv.ToEntity(&model), nil
}

func (d *DependencyRepo) List(ctx context.Context) ([]domain.VariantDependency, error) {
	rows, err := conn(ctx, d.pool).Query(ctx, `SELECT variant_id, restrictions FROM variant_dependencies ORDER BY variant_id`)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.VariantDependency, 0)
	for rows.Next() {
		var model converter.VariantDependencyModel
		if err := rows.Scan(&model.VariantID, &model.Restrictions); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *d.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (d *DependencyRepo) Update(ctx context.Context, dep *domain.VariantDependency) (*domain.VariantDependency, error) {
	model := d.conv.ToModel(dep)

	var updated converter.VariantDependencyModel
	err := conn(ctx, d.pool).QueryRow(ctx,
		`UPDATE variant_dependencies SET restrictions = $2 WHERE variant_id = $1 RETURNING variant_id, restrictions`,
		model.VariantID, model.Restrictions,
	).Scan(&updated.VariantID, &updated.Restrictions)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrDependencyNotFound))
	}

	return d.conv.ToEntity(&updated), nil
}

func (d *DependencyRepo) Delete(ctx context.Context, variantID uuid.UUID) error {
	tag, err := conn(ctx, d.pool).Exec(ctx, `DELETE FROM variant_dependencies WHERE variant_id = $1`, variantID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := expectOne(tag, e.ErrDependencyNotFound); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

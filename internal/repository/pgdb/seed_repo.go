package pgdb

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// SeedRepo обслуживает загрузку демонстрационного каталога.
type SeedRepo struct {
	pool *pgxpool.Pool
}

func NewSeedRepo(pool *pgxpool.Pool) *SeedRepo {
	return &SeedRepo{pool: pool}
}

// Purge удаляет все данные каталога и корзин. Должен вызываться внутри транзакции.
func (s *SeedRepo) Purge(ctx context.Context) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	_, err = tx.Exec(ctx, `
		TRUNCATE TABLE
			cart_items, carts, custom_prices, variant_dependencies,
			product_images, part_variants, product_parts, products, outbox_events
		RESTART IDENTITY CASCADE`)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

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

// ProductImageRepo хранит записи об изображениях товаров, сами файлы лежат в MinIO.
type ProductImageRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductImageConverter
}

func NewProductImageRepo(pool *pgxpool.Pool, conv converter.ProductImageConverter) *ProductImageRepo {
	return &ProductImageRepo{pool: pool, conv: conv}
}

// CreateBatch вставляет записи одним батчем. Требует транзакцию в контексте.
func (p *ProductImageRepo) CreateBatch(ctx context.Context, images []domain.ProductImage) error {
	q := conn(ctx, p.pool)

	batch := &pgx.Batch{}
	for i := range images {
		m := p.conv.ToModel(&images[i])
		batch.Queue(`
			INSERT INTO product_images (id, product_id, object_key, content_type, size)
			VALUES ($1, $2, $3, $4, $5)`,
			m.ID, m.ProductID, m.ObjectKey, m.ContentType, m.Size,
		)
	}

	sender, ok := q.(interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	})
	if !ok {
		return e.Wrap(whereami.WhereAmI(), e.ErrTransactionNotFound)
	}

	br := sender.SendBatch(ctx, batch)
	defer br.Close()

	for range images {
		if _, err := br.Exec(); err != nil {
			return e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrProductNotFound))
		}
	}

	return nil
}

func (p *ProductImageRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.ProductImage, error) {
	rows, err := conn(ctx, p.pool).Query(ctx, `
		SELECT id, product_id, object_key, content_type, size, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY created_at, object_key`, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.ProductImage, 0)
	for rows.Next() {
		var m converter.ProductImageModel
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ObjectKey, &m.ContentType, &m.Size, &m.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *p.conv.ToEntity(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

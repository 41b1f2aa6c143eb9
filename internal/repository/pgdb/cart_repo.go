package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CartRepo хранит корзины и их позиции.
type CartRepo struct {
	pool *pgxpool.Pool
	conv converter.CartConverter
}

func NewCartRepo(pool *pgxpool.Pool, conv converter.CartConverter) *CartRepo {
	return &CartRepo{pool: pool, conv: conv}
}

// Create сохраняет корзину вместе с позициями. Должен вызываться внутри транзакции.
func (c *CartRepo) Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, items := c.conv.ToModel(cart)

	var saved converter.CartModel
	err = tx.QueryRow(ctx, `
		INSERT INTO carts (id, purchased, total_price) VALUES ($1, $2, $3)
		RETURNING id, purchased, total_price, created_at, updated_at`,
		model.ID, model.Purchased, model.TotalPrice,
	).Scan(&saved.ID, &saved.Purchased, &saved.TotalPrice, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrCartNotFound))
	}

	savedItems := make([]converter.CartItemModel, 0, len(items))
	for i, it := range items {
		var s converter.CartItemModel
		err := tx.QueryRow(ctx, `
			INSERT INTO cart_items (id, cart_id, position, product_id, selected_parts, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+cartItemColumns,
			it.ID, it.CartID, i, it.ProductID, it.SelectedParts, it.TotalPrice,
		).Scan(&s.ID, &s.CartID, &s.ProductID, &s.SelectedParts, &s.TotalPrice, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrProductNotFound))
		}
		savedItems = append(savedItems, s)
	}

	return c.conv.ToEntity(&saved, savedItems), nil
}

const cartItemColumns = `id, cart_id, product_id, selected_parts, total_price, created_at, updated_at`

func (c *CartRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	q := conn(ctx, c.pool)

	var model converter.CartModel
	err := q.QueryRow(ctx,
		`SELECT id, purchased, total_price, created_at, updated_at FROM carts WHERE id = $1`, id,
	).Scan(&model.ID, &model.Purchased, &model.TotalPrice, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapErr(err, e.ErrCartNotFound))
	}

	items, err := c.items(ctx, q, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model, items), nil
}

// MarkPurchased атомарно переводит корзину в купленные. Повторный вызов возвращает e.ErrCartAlreadyPurchased.
func (c *CartRepo) MarkPurchased(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	q := conn(ctx, c.pool)

	var model converter.CartModel
	err := q.QueryRow(ctx, `
		UPDATE carts SET purchased = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT purchased
		RETURNING id, purchased, total_price, created_at, updated_at`, id,
	).Scan(&model.ID, &model.Purchased, &model.TotalPrice, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		// строк нет: корзины нет либо она уже куплена
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if exists {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCartAlreadyPurchased)
		}
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCartNotFound)
	}

	items, err := c.items(ctx, q, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model, items), nil
}

func (c *CartRepo) items(ctx context.Context, q querier, cartID uuid.UUID) ([]converter.CartItemModel, error) {
	rows, err := q.Query(ctx,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 ORDER BY position`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]converter.CartItemModel, 0)
	for rows.Next() {
		var s converter.CartItemModel
		if err := rows.Scan(&s.ID, &s.CartID, &s.ProductID, &s.SelectedParts, &s.TotalPrice, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}

	return items, rows.Err()
}

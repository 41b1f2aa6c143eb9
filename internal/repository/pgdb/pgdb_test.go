package pgdb

import (
	"errors"
	"testing"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, e.ErrProductNotFound},
		{"wrapped no rows", e.Wrap("scan", pgx.ErrNoRows), e.ErrProductNotFound},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "product_parts_product_id_fkey"}, e.ErrReferencedRecord},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation}, e.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapErr(tt.err, e.ErrProductNotFound), tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, mapErr(other, e.ErrProductNotFound))
	assert.NoError(t, mapErr(nil, e.ErrProductNotFound))
}

func TestPostgresDuplicate(t *testing.T) {
	assert.True(t, postgresDuplicate(e.Wrap("insert", &pgconn.PgError{Code: pgUniqueViolation})))
	assert.False(t, postgresDuplicate(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, postgresDuplicate(errors.New("x")))
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne(pgconn.NewCommandTag("DELETE 0"), e.ErrCartNotFound), e.ErrCartNotFound)
	assert.NoError(t, expectOne(pgconn.NewCommandTag("DELETE 1"), e.ErrCartNotFound))
}

func TestCartConverter_RoundTrip(t *testing.T) {
	conv := converter.CartConverterImpl{}
	cart := domain.NewCart([]domain.CartItem{
		domain.NewCartItem(uuid.New(), nil, decimal.NewFromInt(800)),
		domain.NewCartItem(uuid.New(), []uuid.UUID{uuid.New()}, decimal.RequireFromString("550.00")),
	})

	model, items := conv.ToModel(cart)
	require.Len(t, items, 2)
	assert.NotNil(t, items[0].SelectedParts)
	assert.Equal(t, cart.ID, items[1].CartID)

	back := conv.ToEntity(model, items)
	assert.Equal(t, cart.ID, back.ID)
	assert.True(t, cart.TotalPrice.Equal(back.TotalPrice))
	assert.Equal(t, cart.Items[1].SelectedParts, back.Items[1].SelectedParts)
}

func TestDependencyConverter_NeverNil(t *testing.T) {
	m := converter.DependencyConverterImpl{}.ToModel(domain.NewVariantDependency(uuid.New(), nil))
	assert.NotNil(t, m.Restrictions)
	assert.Empty(t, m.Restrictions)
}

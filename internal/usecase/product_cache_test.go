package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedDetail() domain.ProductDetail {
	return domain.ProductDetail{
		Product: *domain.NewProduct("Road Bike", nil, "Bike", decimal.NewFromInt(200), true, true, 1),
	}
}

func TestProductCache_PutIfCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("writes when nothing was invalidated", func(t *testing.T) {
		inner := newFakeCache()
		c := NewProductCache(inner)
		d := cachedDetail()

		stored, err := c.PutIfCurrent(ctx, c.Generation(), []domain.ProductDetail{d})
		require.NoError(t, err)
		assert.True(t, stored)
		assert.Equal(t, 1, inner.setCount())
	})

	t.Run("skips card loaded before invalidation", func(t *testing.T) {
		inner := newFakeCache()
		c := NewProductCache(inner)
		d := cachedDetail()

		gen := c.Generation()
		require.NoError(t, c.DeleteProducts(ctx, []uuid.UUID{d.Product.ID}))

		stored, err := c.PutIfCurrent(ctx, gen, []domain.ProductDetail{d})
		require.NoError(t, err)
		assert.False(t, stored)
		assert.Zero(t, inner.setCount())

		got, err := c.GetProducts(ctx, []uuid.UUID{d.Product.ID})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete bumps generation", func(t *testing.T) {
		inner := newFakeCache()
		c := NewProductCache(inner)
		id := uuid.New()

		before := c.Generation()
		require.NoError(t, c.DeleteProducts(ctx, []uuid.UUID{id}))
		assert.Equal(t, before+1, c.Generation())
		assert.Equal(t, []uuid.UUID{id}, inner.deletedIDs())
	})
}

func TestProductUseCase_GetProductDetail_StaleLoadNotCached(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()

	p, err := f.uc.CreateProduct(ctx, roadBikeReq())
	require.NoError(t, err)

	// изменение каталога во время чтения карточки из БД
	f.products.onGet = func() {
		require.NoError(t, f.guard.DeleteProducts(ctx, []uuid.UUID{p.ID}))
	}

	_, err = f.uc.GetProductDetail(ctx, p.ID)
	require.NoError(t, err)

	assert.Never(t, func() bool { return f.cache.setCount() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestProductUseCase_GetProductDetail_ReturnsOwnCopy(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()

	p, err := f.uc.CreateProduct(ctx, roadBikeReq())
	require.NoError(t, err)
	frame := domain.NewProductPart(p.ID, "Frame")
	f.parts.items[frame.ID] = frame
	f.variants.add(frame.ID, "Diamond", "200.00")

	detail, err := f.uc.GetProductDetail(ctx, p.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.cache.setCount() == 1 }, time.Second, 10*time.Millisecond)

	detail.Parts[0].Variants[0].Name = "changed"

	cached, err := f.cache.GetProducts(ctx, []uuid.UUID{p.ID})
	require.NoError(t, err)
	assert.Equal(t, "Diamond", cached[p.ID].Parts[0].Variants[0].Name)
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/DRSN-tech/bikeshop-backend/pkg/opt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	uc       *ProductUseCase
	products *fakeProductRepo
	parts    *fakePartRepo
	variants *fakeVariantRepo
	images   *fakeImageRepo
	cache    *fakeCache
	guard    *ProductCache
	infra    *fakeImagesInfra
	tx       *fakeTx
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products: newFakeProductRepo(),
		parts:    newFakePartRepo(),
		variants: newFakeVariantRepo(),
		images:   &fakeImageRepo{},
		cache:    newFakeCache(),
		infra:    &fakeImagesInfra{},
		tx:       &fakeTx{},
	}
	f.guard = NewProductCache(f.cache)
	f.uc = NewProductUC(f.products, f.parts, f.variants, f.images, f.guard, f.infra, f.tx, logger.NewNop())
	return f
}

func roadBikeReq() *CreateProductReq {
	return &CreateProductReq{
		Name:          "Road Bike",
		Category:      "Bike",
		BasePrice:     decimal.RequireFromString("200.00"),
		IsCustom:      true,
		IsAvailable:   true,
		StockQuantity: 10,
	}
}

func TestProductUseCase_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		f := newProductFixture()
		p, err := f.uc.CreateProduct(ctx, roadBikeReq())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Contains(t, f.products.items, p.ID)
	})

	tests := []struct {
		name   string
		mutate func(r *CreateProductReq)
		want   error
	}{
		{"empty name", func(r *CreateProductReq) { r.Name = "  " }, e.ErrNameRequired},
		{"negative price", func(r *CreateProductReq) { r.BasePrice = decimal.NewFromInt(-1) }, e.ErrInvalidPrice},
		{"too precise", func(r *CreateProductReq) { r.BasePrice = decimal.RequireFromString("10.005") }, e.ErrPricePrecision},
		{"negative stock", func(r *CreateProductReq) { r.StockQuantity = -1 }, e.ErrNegativeStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProductFixture()
			req := roadBikeReq()
			tt.mutate(req)

			_, err := f.uc.CreateProduct(ctx, req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, e.ErrValidation)
			assert.Empty(t, f.products.items)
		})
	}
}

func TestProductUseCase_ListProducts(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	for i := 0; i < 3; i++ {
		_, err := f.uc.CreateProduct(ctx, roadBikeReq())
		require.NoError(t, err)
	}

	res, err := f.uc.ListProducts(ctx, &ListProductsReq{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, res.Products, 1)
	assert.Equal(t, 3, res.Total)

	for _, bad := range []ListProductsReq{{Page: 0, PageSize: 10}, {Page: 1, PageSize: 0}, {Page: 1, PageSize: 101}} {
		_, err := f.uc.ListProducts(ctx, &bad)
		assert.ErrorIs(t, err, e.ErrInvalidPagination)
	}
}

func TestProductUseCase_GetProductDetail(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()

	p, err := f.uc.CreateProduct(ctx, roadBikeReq())
	require.NoError(t, err)
	frame := domain.NewProductPart(p.ID, "Frame")
	f.parts.items[frame.ID] = frame
	diamond := f.variants.add(frame.ID, "Diamond", "200.00")

	detail, err := f.uc.GetProductDetail(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Parts, 1)
	assert.Equal(t, "Frame", detail.Parts[0].Part.Name)
	require.Len(t, detail.Parts[0].Variants, 1)
	assert.Equal(t, diamond.ID, detail.Parts[0].Variants[0].ID)

	// карточка попадает в кэш в фоне
	assert.Eventually(t, func() bool { return f.cache.setCount() == 1 }, time.Second, 10*time.Millisecond)

	// второй запрос обслуживается кэшем, даже если товар пропал из БД
	delete(f.products.items, p.ID)
	cached, err := f.uc.GetProductDetail(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, cached.Product.ID)
}

func TestProductUseCase_GetProductDetail_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	f.cache.getErr = errBoom

	p, err := f.uc.CreateProduct(ctx, roadBikeReq())
	require.NoError(t, err)

	detail, err := f.uc.GetProductDetail(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, detail.Product.Name)

	_, err = f.uc.GetProductDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestProductUseCase_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	p, err := f.uc.CreateProduct(ctx, roadBikeReq())
	require.NoError(t, err)

	t.Run("no fields", func(t *testing.T) {
		got, err := f.uc.UpdateProduct(ctx, p.ID, domain.ProductPatch{})
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		assert.Zero(t, f.products.updates)
	})

	t.Run("partial", func(t *testing.T) {
		got, err := f.uc.UpdateProduct(ctx, p.ID, domain.ProductPatch{
			BasePrice:   opt.Some(decimal.RequireFromString("250.00")),
			IsAvailable: opt.Some(false),
		})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("250").Equal(got.BasePrice))
		assert.False(t, got.IsAvailable)
		assert.Equal(t, "Road Bike", got.Name)
		assert.Contains(t, f.cache.deletedIDs(), p.ID)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := f.uc.UpdateProduct(ctx, p.ID, domain.ProductPatch{StockQuantity: opt.Some(-5)})
		assert.ErrorIs(t, err, e.ErrNegativeStock)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.uc.UpdateProduct(ctx, uuid.New(), domain.ProductPatch{Name: opt.Some("x")})
		assert.ErrorIs(t, err, e.ErrProductNotFound)
	})
}

func TestProductUseCase_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	p, err := f.uc.CreateProduct(ctx, roadBikeReq())
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(ctx, p.ID))
	assert.Contains(t, f.cache.deletedIDs(), p.ID)
	assert.ErrorIs(t, f.uc.DeleteProduct(ctx, p.ID), e.ErrProductNotFound)

	q, err := f.uc.CreateProduct(ctx, roadBikeReq())
	require.NoError(t, err)
	f.products.deleteErr = e.ErrReferencedRecord
	assert.ErrorIs(t, f.uc.DeleteProduct(ctx, q.ID), e.ErrConflict)
}

func TestProductUseCase_UploadProductImages(t *testing.T) {
	ctx := context.Background()
	images := []ProductImage{
		*NewProductImage([]byte("a"), "image/png", 1, "front"),
		*NewProductImage([]byte("b"), "image/jpeg", 1, "side"),
	}

	t.Run("ok", func(t *testing.T) {
		f := newProductFixture()
		p, err := f.uc.CreateProduct(ctx, roadBikeReq())
		require.NoError(t, err)

		got, err := f.uc.UploadProductImages(ctx, &UploadProductImagesReq{ProductID: p.ID, Images: images})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, p.ID.String()+"/front", got[0].ObjectKey)
		assert.Equal(t, "image/jpeg", got[1].ContentType)
		assert.Len(t, f.images.items, 2)
		assert.Equal(t, 1, f.tx.calls)
		assert.Contains(t, f.cache.deletedIDs(), p.ID)
	})

	t.Run("db failure cleans up uploads", func(t *testing.T) {
		f := newProductFixture()
		f.images.createErr = errBoom
		p, err := f.uc.CreateProduct(ctx, roadBikeReq())
		require.NoError(t, err)

		_, err = f.uc.UploadProductImages(ctx, &UploadProductImagesReq{ProductID: p.ID, Images: images})
		assert.ErrorIs(t, err, errBoom)
		require.Len(t, f.infra.cleaned, 1)
		assert.ElementsMatch(t, f.infra.keys, f.infra.cleaned[0])
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newProductFixture()
		_, err := f.uc.UploadProductImages(ctx, &UploadProductImagesReq{ProductID: uuid.New(), Images: images})
		assert.ErrorIs(t, err, e.ErrProductNotFound)
		assert.Empty(t, f.infra.keys)
	})

	t.Run("limits", func(t *testing.T) {
		f := newProductFixture()
		_, err := f.uc.UploadProductImages(ctx, &UploadProductImagesReq{ProductID: uuid.New()})
		assert.ErrorIs(t, err, e.ErrNoImages)

		many := make([]ProductImage, maxUploadImages+1)
		_, err = f.uc.UploadProductImages(ctx, &UploadProductImagesReq{ProductID: uuid.New(), Images: many})
		assert.ErrorIs(t, err, e.ErrTooManyImages)
	})
}

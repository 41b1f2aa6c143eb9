package redis

import (
	"encoding/json"
	"testing"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/redis/converter"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductKey(t *testing.T) {
	id := uuid.MustParse("6f1c1f7e-4a8a-4b52-9f0e-0f8b7d1f2a11")
	assert.Equal(t, "product:6f1c1f7e-4a8a-4b52-9f0e-0f8b7d1f2a11", productKey(id))
	assert.Len(t, buildProductCacheKeys([]uuid.UUID{id, uuid.New()}), 2)
}

func TestRedisValueToBytes(t *testing.T) {
	b, err := redisValueToBytes("abc", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), b)

	b, err = redisValueToBytes(nil, "k")
	require.NoError(t, err)
	assert.Nil(t, b)

	_, err = redisValueToBytes(42, "k")
	assert.Error(t, err)
}

func TestProductDetailCacheRoundTrip(t *testing.T) {
	product := domain.NewProduct("Road Bike", nil, "Bike", decimal.RequireFromString("200.00"), true, true, 10)
	frame := domain.NewProductPart(product.ID, "Frame")
	diamond := domain.NewPartVariant(frame.ID, "Diamond", decimal.RequireFromString("200.00"), true, 10)
	image := domain.NewProductImage(product.ID, product.ID.String()+"/front.png", "image/png", 512)

	detail := domain.ProductDetail{
		Product: *product,
		Parts:   []domain.PartDetail{{Part: *frame, Variants: []domain.PartVariant{*diamond}}},
		Images:  []domain.ProductImage{*image},
	}

	conv := converter.ProductDetailConverterImpl{}
	data, err := json.Marshal(conv.ToRedisModel(&detail))
	require.NoError(t, err)

	model, err := unmarshalProductFromCache(data)
	require.NoError(t, err)
	got := conv.ToDomain(model)

	assert.Equal(t, product.ID, got.Product.ID)
	assert.True(t, product.BasePrice.Equal(got.Product.BasePrice))
	require.Len(t, got.Parts, 1)
	assert.Equal(t, product.ID, got.Parts[0].Part.ProductID)
	require.Len(t, got.Parts[0].Variants, 1)
	assert.Equal(t, frame.ID, got.Parts[0].Variants[0].PartID)
	assert.Equal(t, "200", got.Parts[0].Variants[0].Price.String())
	require.Len(t, got.Images, 1)
	assert.Equal(t, image.ObjectKey, got.Images[0].ObjectKey)
}

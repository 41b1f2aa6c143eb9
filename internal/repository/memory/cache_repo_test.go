package memory

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(name string) domain.ProductDetail {
	return domain.ProductDetail{
		Product: *domain.NewProduct(name, nil, "Bike", decimal.NewFromInt(200), true, true, 1),
	}
}

func TestCacheRepo(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCacheRepo(&cfg.CacheCfg{Size: 2, ProductTTL: time.Minute})
	require.NoError(t, err)

	road, mtb, fixed := detail("Road Bike"), detail("Mountain Bike"), detail("Fixed-Gear Bike")
	require.NoError(t, repo.SetProducts(ctx, []domain.ProductDetail{road, mtb}))

	got, err := repo.GetProducts(ctx, []uuid.UUID{road.Product.ID, mtb.Product.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Road Bike", got[road.Product.ID].Product.Name)

	t.Run("evicts least recently used", func(t *testing.T) {
		_, _ = repo.GetProducts(ctx, []uuid.UUID{road.Product.ID})
		require.NoError(t, repo.SetProducts(ctx, []domain.ProductDetail{fixed}))

		got, _ := repo.GetProducts(ctx, []uuid.UUID{road.Product.ID, mtb.Product.ID, fixed.Product.ID})
		assert.Contains(t, got, road.Product.ID)
		assert.Contains(t, got, fixed.Product.ID)
		assert.NotContains(t, got, mtb.Product.ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteProducts(ctx, []uuid.UUID{road.Product.ID}))
		got, _ := repo.GetProducts(ctx, []uuid.UUID{road.Product.ID})
		assert.Empty(t, got)
	})
}

func TestCacheRepo_Expiry(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCacheRepo(&cfg.CacheCfg{Size: 10, ProductTTL: time.Minute})
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	d := detail("Road Bike")
	require.NoError(t, repo.SetProducts(ctx, []domain.ProductDetail{d}))

	now = now.Add(59 * time.Second)
	got, _ := repo.GetProducts(ctx, []uuid.UUID{d.Product.ID})
	assert.Len(t, got, 1)

	now = now.Add(2 * time.Second)
	got, _ = repo.GetProducts(ctx, []uuid.UUID{d.Product.ID})
	assert.Empty(t, got)
}

func TestCacheRepo_ReturnsIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCacheRepo(&cfg.CacheCfg{Size: 10, ProductTTL: time.Minute})
	require.NoError(t, err)

	d := detail("Road Bike")
	part := domain.NewProductPart(d.Product.ID, "Frame")
	d.Parts = []domain.PartDetail{{
		Part:     *part,
		Variants: []domain.PartVariant{*domain.NewPartVariant(part.ID, "Diamond", decimal.NewFromInt(200), true, 10)},
	}}
	require.NoError(t, repo.SetProducts(ctx, []domain.ProductDetail{d}))

	// изменение исходной карточки после записи
	d.Parts[0].Variants[0].Name = "changed"

	got, _ := repo.GetProducts(ctx, []uuid.UUID{d.Product.ID})
	first := got[d.Product.ID]
	require.Len(t, first.Parts, 1)
	assert.Equal(t, "Diamond", first.Parts[0].Variants[0].Name)

	// изменение прочитанной карточки
	first.Parts[0].Variants[0].Name = "mutated"
	first.Parts = append(first.Parts, domain.PartDetail{})

	got, _ = repo.GetProducts(ctx, []uuid.UUID{d.Product.ID})
	second := got[d.Product.ID]
	require.Len(t, second.Parts, 1)
	assert.Equal(t, "Diamond", second.Parts[0].Variants[0].Name)
}

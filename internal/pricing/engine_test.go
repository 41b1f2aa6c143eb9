package pricing

import (
	"context"
	"testing"

	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(vs ...uuid.UUID) []uuid.UUID { return vs }

func assertPrice(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.StringFixed(2))
}

func TestEngine_PriceConfiguration_Scenarios(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)
	ctx := context.Background()

	tests := []struct {
		name     string
		variants []uuid.UUID
		want     string
		wantKind Kind
	}{
		{
			name:     "handlebar and wheel",
			variants: ids(rb.standardHandlebar.ID, rb.standardWheel.ID),
			want:     "500.00",
		},
		{
			name:     "surcharge subject not selected",
			variants: ids(rb.diamondFrame.ID, rb.shiny.ID),
			want:     "600.00",
		},
		{
			name:     "surcharge fires when both selected",
			variants: ids(rb.diamondFrame.ID, rb.matte.ID),
			want:     "550.00",
		},
		{
			name:     "unavailable variant",
			variants: ids(rb.red.ID),
			wantKind: KindVariantUnavailable,
		},
		{
			name:     "empty selection",
			variants: nil,
			want:     "200.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := engine.PriceConfiguration(ctx, rb.product.ID, tt.variants)
			if tt.wantKind != 0 {
				require.Error(t, err)
				rej, ok := AsRejection(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantKind, rej.Kind)
				assert.True(t, total.IsZero())
				return
			}
			require.NoError(t, err)
			assertPrice(t, tt.want, total)
		})
	}
}

func TestEngine_UnknownProduct(t *testing.T) {
	engine := NewEngine(newFakeCatalog())
	unknown := uuid.New()

	_, err := engine.PriceConfiguration(context.Background(), unknown, nil)

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, KindProductNotFound, rej.Kind)
	assert.Equal(t, unknown, rej.ID)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestEngine_Idempotent(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)
	sel := ids(rb.carbonHandlebar.ID, rb.diamondFrame.ID, rb.matte.ID)

	first, err := engine.PriceConfiguration(context.Background(), rb.product.ID, sel)
	require.NoError(t, err)
	second, err := engine.PriceConfiguration(context.Background(), rb.product.ID, sel)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	// 200 + 200 + 200 + 100 + 90 + 50
	assertPrice(t, "840.00", first)
}

func TestEngine_Additivity(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)
	ctx := context.Background()

	v1 := ids(rb.standardHandlebar.ID)
	v2 := ids(rb.standardWheel.ID, rb.shiny.ID)

	p1, err := engine.PriceConfiguration(ctx, rb.product.ID, v1)
	require.NoError(t, err)
	p2, err := engine.PriceConfiguration(ctx, rb.product.ID, v2)
	require.NoError(t, err)
	both, err := engine.PriceConfiguration(ctx, rb.product.ID, append(v1, v2...))
	require.NoError(t, err)

	base := rb.product.BasePrice
	assert.True(t, both.Equal(p1.Sub(base).Add(p2.Sub(base)).Add(base)))
}

func TestEngine_SurchargeNeedsBothVariants(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)
	ctx := context.Background()

	onlySubject, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.matte.ID))
	require.NoError(t, err)
	assertPrice(t, "300.00", onlySubject)

	onlyDependent, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.diamondFrame.ID))
	require.NoError(t, err)
	assertPrice(t, "400.00", onlyDependent)

	// порядок выбора не влияет на срабатывание
	reversed, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.matte.ID, rb.diamondFrame.ID))
	require.NoError(t, err)
	assertPrice(t, "550.00", reversed)
}

func TestEngine_DuplicateIDs(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)
	ctx := context.Background()

	once, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.matte.ID, rb.diamondFrame.ID))
	require.NoError(t, err)
	twice, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.matte.ID, rb.matte.ID, rb.diamondFrame.ID, rb.diamondFrame.ID))
	require.NoError(t, err)

	assert.True(t, once.Equal(twice))
}

func TestEngine_DuplicateRuleRowsFireOnce(t *testing.T) {
	rb := newRoadBike()
	rb.catalog.addRule(rb.matte.ID, rb.diamondFrame.ID, "50.00")
	engine := NewEngine(rb.catalog)

	total, err := engine.PriceConfiguration(context.Background(), rb.product.ID, ids(rb.diamondFrame.ID, rb.matte.ID))
	require.NoError(t, err)
	assertPrice(t, "550.00", total)
}

func TestEngine_OutOfStockVariant(t *testing.T) {
	rb := newRoadBike()
	rb.standardWheel.StockQuantity = 0
	engine := NewEngine(rb.catalog)

	total, err := engine.PriceConfiguration(context.Background(), rb.product.ID, ids(rb.standardHandlebar.ID, rb.standardWheel.ID))

	require.Error(t, err)
	assert.True(t, total.IsZero())
	assert.ErrorIs(t, err, e.ErrVariantOutOfStock)
	rej, _ := AsRejection(err)
	assert.Equal(t, rb.standardWheel.ID, rej.ID)
}

func TestEngine_UnknownVariantReportsFirstOffender(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)
	first, second := uuid.New(), uuid.New()

	_, err := engine.PriceConfiguration(context.Background(), rb.product.ID, ids(rb.standardHandlebar.ID, first, second))

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, KindVariantNotFound, rej.Kind)
	assert.Equal(t, first, rej.ID)
}

func TestEngine_ProductSellability(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)

	rb.product.StockQuantity = 0
	_, err := engine.PriceConfiguration(context.Background(), rb.product.ID, nil)
	assert.ErrorIs(t, err, e.ErrProductOutOfStock)

	rb.product.IsAvailable = false
	_, err = engine.PriceConfiguration(context.Background(), rb.product.ID, nil)
	assert.ErrorIs(t, err, e.ErrProductUnavailable)
	// вариант не запрашивался
	assert.Zero(t, rb.catalog.variantCalls)
}

func TestEngine_Ownership(t *testing.T) {
	rb := newRoadBike()
	other := rb.catalog.addProduct("Mountain Bike", "800.00", true)
	foreignPart := rb.catalog.addPart(other.ID, "Suspension")
	foreign := rb.catalog.addVariant(foreignPart.ID, "Full Suspension", "300.00", true, 3)
	fixed := rb.catalog.addProduct("Fixed-Gear Bike", "920.00", false)

	t.Run("enforced", func(t *testing.T) {
		engine := NewEngine(rb.catalog)
		_, err := engine.PriceConfiguration(context.Background(), rb.product.ID, ids(rb.matte.ID, foreign.ID))
		rej, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, KindVariantNotInProduct, rej.Kind)
		assert.Equal(t, foreign.ID, rej.ID)
	})

	t.Run("not customisable", func(t *testing.T) {
		engine := NewEngine(rb.catalog)
		_, err := engine.PriceConfiguration(context.Background(), fixed.ID, ids(rb.matte.ID))
		assert.ErrorIs(t, err, e.ErrProductNotCustomisable)

		total, err := engine.PriceConfiguration(context.Background(), fixed.ID, nil)
		require.NoError(t, err)
		assertPrice(t, "920.00", total)
	})

	t.Run("trusting", func(t *testing.T) {
		engine := NewEngine(rb.catalog, WithOwnershipCheck(false))
		total, err := engine.PriceConfiguration(context.Background(), rb.product.ID, ids(rb.matte.ID, foreign.ID))
		require.NoError(t, err)
		assertPrice(t, "600.00", total)
	})
}

func TestEngine_Dependencies(t *testing.T) {
	rb := newRoadBike()
	ctx := context.Background()

	t.Run("not checked by default", func(t *testing.T) {
		engine := NewEngine(rb.catalog)
		total, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.thinWheel.ID, rb.diamondFrame.ID, rb.shiny.ID))
		require.NoError(t, err)
		assertPrice(t, "840.00", total)
	})

	t.Run("checked when enabled", func(t *testing.T) {
		engine := NewEngine(rb.catalog, WithDependencyCheck(true))
		_, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.thinWheel.ID, rb.diamondFrame.ID, rb.matte.ID))
		rej, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, KindDependencyUnmet, rej.Kind)
		assert.Equal(t, rb.thinWheel.ID, rej.ID)
		assert.ErrorIs(t, err, e.ErrValidation)
	})

	t.Run("satisfied", func(t *testing.T) {
		engine := NewEngine(rb.catalog, WithDependencyCheck(true))
		total, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.thinWheel.ID, rb.standardFrame.ID))
		require.NoError(t, err)
		assertPrice(t, "540.00", total)
	})

	t.Run("validate always checks", func(t *testing.T) {
		engine := NewEngine(rb.catalog)
		err := engine.ValidateConfiguration(ctx, rb.product.ID, ids(rb.diamondFrame.ID, rb.shiny.ID))
		assert.ErrorIs(t, err, e.ErrDependencyUnmet)

		assert.NoError(t, engine.ValidateConfiguration(ctx, rb.product.ID, ids(rb.diamondFrame.ID, rb.matte.ID)))
	})
}

func TestEngine_StorageErrorIsNotRejection(t *testing.T) {
	c := newFakeCatalog()
	c.failWith = errStorage
	engine := NewEngine(c)

	_, err := engine.PriceConfiguration(context.Background(), uuid.New(), nil)

	require.Error(t, err)
	_, ok := AsRejection(err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, errStorage)
}

func TestEngine_CancelledContext(t *testing.T) {
	rb := newRoadBike()
	engine := NewEngine(rb.catalog)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	total, err := engine.PriceConfiguration(ctx, rb.product.ID, ids(rb.matte.ID))

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, total.IsZero())
}

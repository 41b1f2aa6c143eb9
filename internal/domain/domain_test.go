package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPatch_Apply(t *testing.T) {
	desc := "steel frame"
	p := NewProduct("Road Bike", &desc, "bikes", decimal.RequireFromString("200"), true, true, 3)

	t.Run("only present keys change", func(t *testing.T) {
		var patch ProductPatch
		require.NoError(t, json.Unmarshal([]byte(`{"base_price":"250.50","description":null}`), &patch))

		pr := *p
		assert.True(t, patch.Apply(&pr))
		assert.True(t, decimal.RequireFromString("250.50").Equal(pr.BasePrice))
		assert.Nil(t, pr.Description)
		assert.Equal(t, "Road Bike", pr.Name)
		assert.Equal(t, 3, pr.StockQuantity)
	})

	t.Run("empty patch", func(t *testing.T) {
		var patch ProductPatch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))

		pr := *p
		assert.False(t, patch.Apply(&pr))
		assert.Equal(t, *p, pr)
	})
}

func TestProduct_Sellable(t *testing.T) {
	p := NewProduct("Fixie", nil, "bikes", decimal.NewFromInt(150), false, true, 1)
	assert.True(t, p.Sellable())

	p.StockQuantity = 0
	assert.False(t, p.Sellable())

	p.StockQuantity = 1
	p.IsAvailable = false
	assert.False(t, p.Sellable())
}

func TestVariantDependencyPatch(t *testing.T) {
	required := uuid.New()
	dep := NewVariantDependency(uuid.New(), nil)

	var patch VariantDependencyPatch
	require.NoError(t, json.Unmarshal([]byte(`{"restrictions":["`+required.String()+`"]}`), &patch))

	assert.True(t, patch.Apply(dep))
	assert.Equal(t, []uuid.UUID{required}, dep.Restrictions)
}

func TestNewCart_Totals(t *testing.T) {
	productID := uuid.New()
	cart := NewCart([]CartItem{
		NewCartItem(productID, nil, decimal.RequireFromString("550.00")),
		NewCartItem(productID, []uuid.UUID{uuid.New()}, decimal.RequireFromString("800.00")),
	})

	assert.Equal(t, "1350.00", cart.TotalPrice.StringFixed(2))
	require.Len(t, cart.Items, 2)
	for _, it := range cart.Items {
		assert.Equal(t, cart.ID, it.CartID)
		assert.NotEqual(t, uuid.Nil, it.ID)
	}
	assert.False(t, cart.Purchased)
}

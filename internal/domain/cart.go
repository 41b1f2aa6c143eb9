package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart — корзина. Пользователь пока не привязывается.
type Cart struct {
	ID         uuid.UUID
	Purchased  bool
	TotalPrice decimal.Decimal
	Items      []CartItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem — сконфигурированный товар в корзине с зафиксированной ценой.
type CartItem struct {
	ID            uuid.UUID
	CartID        uuid.UUID
	ProductID     uuid.UUID
	SelectedParts []uuid.UUID
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewCart(items []CartItem) *Cart {
	cart := &Cart{
		ID:         uuid.New(),
		TotalPrice: decimal.Zero,
	}
	for _, item := range items {
		item.ID = uuid.New()
		item.CartID = cart.ID
		cart.Items = append(cart.Items, item)
		cart.TotalPrice = cart.TotalPrice.Add(item.TotalPrice)
	}

	return cart
}

func NewCartItem(productID uuid.UUID, selectedParts []uuid.UUID, total decimal.Decimal) CartItem {
	return CartItem{
		ProductID:     productID,
		SelectedParts: selectedParts,
		TotalPrice:    total,
	}
}

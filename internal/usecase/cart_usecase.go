package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/infrastructure/metrics"
	"github.com/DRSN-tech/bikeshop-backend/internal/pricing"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/DRSN-tech/bikeshop-backend/pkg/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// CartUseCase собирает корзины. Цена каждой позиции пересчитывается на сервере,
// корзина и событие outbox пишутся в одной транзакции.
type CartUseCase struct {
	cartRepo   CartRepository
	outboxRepo OutboxRepository
	engine     PriceEngine
	txManager  TxManager
	logger     logger.Logger
	now        func() time.Time
}

func NewCartUC(
	cartRepo CartRepository,
	outboxRepo OutboxRepository,
	engine PriceEngine,
	txManager TxManager,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:   cartRepo,
		outboxRepo: outboxRepo,
		engine:     engine,
		txManager:  txManager,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateCart оценивает каждую позицию с проверкой зависимостей и сохраняет корзину.
func (c *CartUseCase) CreateCart(ctx context.Context, req *CreateCartReq) (*domain.Cart, error) {
	const op = "CartUseCase.CreateCart"

	ctx, span := tracing.StartSpan(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.Int("items", len(req.Items)))

	if len(req.Items) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyCart)
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		// в позиции хранится ровно тот набор, за который посчитана цена
		selected := pricing.Dedupe(it.VariantIDs)
		total, err := c.engine.PriceValidConfiguration(ctx, it.ProductID, selected)
		if err != nil {
			tracing.Fail(span, err)
			return nil, e.Wrap(op, err)
		}
		items = append(items, domain.NewCartItem(it.ProductID, selected, total))
	}

	cart := domain.NewCart(items)

	var saved *domain.Cart
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		if saved, err = c.cartRepo.Create(ctx, cart); err != nil {
			return err
		}
		return c.publish(ctx, CartCreated, saved)
	})
	if err != nil {
		tracing.Fail(span, err)
		return nil, e.Wrap(op, err)
	}

	metrics.CartsCreatedTotal.Inc()
	c.logger.Infof("cart created: id=%s items=%d total=%s", saved.ID, len(saved.Items), saved.TotalPrice.StringFixed(2))
	return saved, nil
}

func (c *CartUseCase) GetCart(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	cart, err := c.cartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap("CartUseCase.GetCart", err)
	}
	return cart, nil
}

// UpdateCart помечает корзину купленной. Покупка возможна один раз, отменить её нельзя.
func (c *CartUseCase) UpdateCart(ctx context.Context, id uuid.UUID, req *UpdateCartReq) (*domain.Cart, error) {
	const op = "CartUseCase.UpdateCart"

	if !req.Purchased {
		cart, err := c.cartRepo.GetByID(ctx, id)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if cart.Purchased {
			return nil, e.Wrap(op, e.ErrCartAlreadyPurchased)
		}
		return cart, nil
	}

	var cart *domain.Cart
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		if cart, err = c.cartRepo.MarkPurchased(ctx, id); err != nil {
			return err
		}
		return c.publish(ctx, CartPurchased, cart)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	metrics.CartsPurchasedTotal.Inc()
	c.logger.Infof("cart purchased: id=%s total=%s", cart.ID, cart.TotalPrice.StringFixed(2))
	return cart, nil
}

func (c *CartUseCase) publish(ctx context.Context, eventType OutboxEventType, cart *domain.Cart) error {
	event, err := NewCartEvent(eventType, cart, c.now())
	if err != nil {
		return err
	}

	_, err = c.outboxRepo.Create(ctx, event)
	return err
}

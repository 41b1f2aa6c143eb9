package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed" // брокер отверг сообщение
)

type OutboxEventType string

const (
	CartCreated   OutboxEventType = "cart.created"
	CartPurchased OutboxEventType = "cart.purchased"
)

// OutboxEvent — событие, записанное в той же транзакции, что и изменение корзины.
// AggregateID используется как ключ сообщения Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     uuid.UUID
	EventType   OutboxEventType
	AggregateID uuid.UUID
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// CartEventPayload — тело событий cart.*.
type CartEventPayload struct {
	EventID    uuid.UUID       `json:"event_id"`
	EventType  OutboxEventType `json:"event_type"`
	CartID     uuid.UUID       `json:"cart_id"`
	Purchased  bool            `json:"purchased"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []CartEventItem `json:"items"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type CartEventItem struct {
	ProductID     uuid.UUID       `json:"product_id"`
	SelectedParts []uuid.UUID     `json:"selected_parts"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

func NewCartEvent(eventType OutboxEventType, cart *domain.Cart, now time.Time) (*OutboxEvent, error) {
	eventID := uuid.New()

	items := make([]CartEventItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartEventItem{
			ProductID:     item.ProductID,
			SelectedParts: item.SelectedParts,
			TotalPrice:    item.TotalPrice,
		})
	}

	payload, err := json.Marshal(CartEventPayload{
		EventID:    eventID,
		EventType:  eventType,
		CartID:     cart.ID,
		Purchased:  cart.Purchased,
		TotalPrice: cart.TotalPrice,
		Items:      items,
		OccurredAt: now.UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: cart.ID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   now,
	}, nil
}

// WriteRawMessageReq — готовое сообщение для брокера. Key задаёт партицию.
type WriteRawMessageReq struct {
	Key       string
	EventType OutboxEventType
	Payload   []byte
}

func NewWriteRawMessageReq(key string, eventType OutboxEventType, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       key,
		EventType: eventType,
		Payload:   payload,
	}
}

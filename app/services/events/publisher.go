// Package events announces order lifecycle changes to other systems.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

type EventType string

const (
	OrderCreated       EventType = "order.created"
	OrderStatusChanged EventType = "order.status_changed"
	OrderPaymentSynced EventType = "order.payment_updated"
)

type OrderEvent struct {
	Type          EventType            `json:"type"`
	OrderID       string               `json:"orderId"`
	OrderNumber   string               `json:"orderNumber"`
	UserID        string               `json:"userId"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	FinalAmount   decimal.Decimal      `json:"finalAmount"`
	KitchenIDs    []string             `json:"kitchenIds"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

func NewOrderEvent(t EventType, order *models.Order) OrderEvent {
	seen := map[string]bool{}
	var kitchens []string
	for _, item := range order.Items {
		if !seen[item.KitchenID] {
			seen[item.KitchenID] = true
			kitchens = append(kitchens, item.KitchenID)
		}
	}
	return OrderEvent{
		Type:          t,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		FinalAmount:   order.FinalAmount,
		KitchenIDs:    kitchens,
		OccurredAt:    time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// LogPublisher writes events to the application log only.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	zap.L().Info("order event", zap.String("type", string(event.Type)), zap.ByteString("event", body))
	return nil
}

func (LogPublisher) Close() error { return nil }

// MemoryPublisher keeps published events for inspection.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
	Err    error
}

func (m *MemoryPublisher) Publish(ctx context.Context, event OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MemoryPublisher) Close() error { return nil }

func (m *MemoryPublisher) Events() []OrderEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]OrderEvent, len(m.events))
	copy(out, m.events)
	return out
}

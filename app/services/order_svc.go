package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
	"github.com/trinetrasoft/cloud-kitchen/app/services/events"
)

type OrderItemView struct {
	ID                  string             `json:"id"`
	KitchenID           string             `json:"kitchenId"`
	KitchenName         string             `json:"kitchenName"`
	MenuItemID          string             `json:"menuItemId"`
	MenuItemName        string             `json:"menuItemName"`
	Quantity            int                `json:"quantity"`
	PriceAtTime         decimal.Decimal    `json:"priceAtTime"`
	Status              models.OrderStatus `json:"status"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
}

// OrderSummary is an order as shown to customers and kitchen owners.
type OrderSummary struct {
	*models.Order
	CustomerName string             `json:"customerName,omitempty"`
	NextStatus   models.OrderStatus `json:"nextStatus,omitempty"`
	Items        []OrderItemView    `json:"items"`
}

func NewOrderSummary(order *models.Order) OrderSummary {
	summary := OrderSummary{Order: order, Items: make([]OrderItemView, 0, len(order.Items))}
	if order.User != nil {
		summary.CustomerName = order.User.FullName()
	}
	if next, ok := models.NextOrderStatus(order.Status); ok {
		summary.NextStatus = next
	}
	for i := range order.Items {
		item := &order.Items[i]
		summary.Items = append(summary.Items, OrderItemView{
			ID:                  item.ID,
			KitchenID:           item.KitchenID,
			KitchenName:         item.KitchenName(),
			MenuItemID:          item.MenuItemID,
			MenuItemName:        item.MenuItemName(),
			Quantity:            item.Quantity,
			PriceAtTime:         item.PriceAtTime,
			Status:              item.Status,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return summary
}

type OrderService struct {
	orderRepo   repositories.OrderRepository
	kitchenRepo repositories.KitchenRepository
	publisher   events.Publisher
}

func NewOrderService(orderRepo repositories.OrderRepository, kitchenRepo repositories.KitchenRepository, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &OrderService{orderRepo: orderRepo, kitchenRepo: kitchenRepo, publisher: publisher}
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]OrderSummary, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	out := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderSummary(&orders[i]))
	}
	return out, nil
}

// Get returns the order only to the customer who placed it.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*OrderSummary, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	summary := NewOrderSummary(order)
	return &summary, nil
}

func (s *OrderService) ownedKitchenIDs(ctx context.Context, ownerID string) ([]string, error) {
	kitchens, err := s.kitchenRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load kitchens: %w", err)
	}
	ids := make([]string, 0, len(kitchens))
	for _, k := range kitchens {
		ids = append(ids, k.ID)
	}
	return ids, nil
}

// ListForKitchenOwner returns orders containing items from any kitchen the
// owner runs. An empty status lists every order.
func (s *OrderService) ListForKitchenOwner(ctx context.Context, ownerID string, status models.OrderStatus) ([]OrderSummary, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	ids, err := s.ownedKitchenIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByKitchenIDs(ctx, ids, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list kitchen orders: %w", err)
	}
	out := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderSummary(&orders[i]))
	}
	return out, nil
}

// UpdateStatusAsOwner writes status onto the order and onto the lines of
// every kitchen the owner runs on it. Any known status may be written.
func (s *OrderService) UpdateStatusAsOwner(ctx context.Context, ownerID, orderID string, status models.OrderStatus) (*OrderSummary, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	ids, err := s.ownedKitchenIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var kitchenIDs []string
	for _, id := range ids {
		if order.HasKitchen(id) {
			kitchenIDs = append(kitchenIDs, id)
		}
	}
	if len(kitchenIDs) == 0 {
		return nil, ErrForbidden
	}

	if err := s.orderRepo.UpdateKitchenStatus(ctx, order.ID, kitchenIDs, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	previous := order.Status
	order.Status = status
	for i := range order.Items {
		if slices.Contains(kitchenIDs, order.Items[i].KitchenID) {
			order.Items[i].Status = status
		}
	}

	if err := s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderStatusChanged, order)); err != nil {
		zap.S().Warnf("OrderService.UpdateStatusAsOwner: failed to publish event for %s: %v", order.OrderNumber, err)
	}
	zap.S().Infof("OrderService.UpdateStatusAsOwner: order %s moved from %s to %s by kitchens %s", order.OrderNumber, previous, status, strings.Join(kitchenIDs, ","))

	summary := NewOrderSummary(order)
	return &summary, nil
}

// Reject cancels an order on behalf of a kitchen owner.
func (s *OrderService) Reject(ctx context.Context, ownerID, orderID string) (*OrderSummary, error) {
	return s.UpdateStatusAsOwner(ctx, ownerID, orderID, models.OrderStatusCanceled)
}

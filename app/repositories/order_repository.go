package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindByKitchenIDs(ctx context.Context, kitchenIDs []string, status models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	UpdateKitchenStatus(ctx context.Context, orderID string, kitchenIDs []string, status models.OrderStatus) error
	UpdatePaymentStatusAndOrderStatus(ctx context.Context, orderID string, paymentStatus models.PaymentStatus, status models.OrderStatus) error
	UpdatePaymentDetails(ctx context.Context, orderID, intentID, paymentURL string) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Kitchen").
		Preload("Items.MenuItem")
}

// CreateWithItems writes the order and its items in one transaction.
func (r *gormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			order.Items = items
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				order.Items = items
				return fmt.Errorf("failed to create order items: %w", err)
			}
		}
		order.Items = items
		return nil
	})
}

func (r *gormOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.withItems(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.withItems(ctx).First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withItems(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) FindByKitchenIDs(ctx context.Context, kitchenIDs []string, status models.OrderStatus) ([]models.Order, error) {
	if len(kitchenIDs) == 0 {
		return nil, nil
	}

	sub := r.db.Model(&models.OrderItem{}).Select("order_id").Where("kitchen_id IN ?", kitchenIDs)
	query := r.withItems(ctx).Preload("User").Where("id IN (?)", sub)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error
}

// UpdateKitchenStatus moves the order and the lines of the given kitchens
// together.
func (r *gormOrderRepository) UpdateKitchenStatus(ctx context.Context, orderID string, kitchenIDs []string, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Model(&models.OrderItem{}).
			Where("order_id = ? AND kitchen_id IN ?", orderID, kitchenIDs).
			Update("status", status).Error
	})
}

func (r *gormOrderRepository) UpdatePaymentStatusAndOrderStatus(ctx context.Context, orderID string, paymentStatus models.PaymentStatus, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"payment_status": paymentStatus,
		"status":         status,
	}).Error
}

func (r *gormOrderRepository) UpdatePaymentDetails(ctx context.Context, orderID, intentID, paymentURL string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"payment_intent_id": intentID,
		"payment_url":       paymentURL,
	}).Error
}

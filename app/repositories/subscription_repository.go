package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	CreateWithPayment(ctx context.Context, sub *models.Subscription, payment *models.Payment) error
	FindByID(ctx context.Context, id string) (*models.Subscription, error)
	FindActiveByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	FindAwaitingPaymentByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	UpdateStatus(ctx context.Context, id string, status models.SubscriptionStatus) error
}

type gormSubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &gormSubscriptionRepository{db: db}
}

// CreateWithPayment stores the subscription and the payment that pays for
// it in one transaction.
func (r *gormSubscriptionRepository) CreateWithPayment(ctx context.Context, sub *models.Subscription, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		subID := sub.ID
		payment.SubID = &subID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create subscription payment: %w", err)
		}
		return nil
	})
}

func (r *gormSubscriptionRepository) FindByID(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *gormSubscriptionRepository) FindActiveByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Order("current_period_end DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// FindAwaitingPaymentByUserID returns a paused subscription whose payment
// is still pending.
func (r *gormSubscriptionRepository) FindAwaitingPaymentByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	pending := r.db.Model(&models.Payment{}).
		Select("subscription_id").
		Where("purpose = ? AND status = ?", models.PaymentForSubscription, models.PaymentStatusPending)

	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionPaused).
		Where("id IN (?)", pending).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *gormSubscriptionRepository) UpdateStatus(ctx context.Context, id string, status models.SubscriptionStatus) error {
	return r.db.WithContext(ctx).Model(&models.Subscription{}).Where("id = ?", id).Update("status", status).Error
}

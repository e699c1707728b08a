package repositories

import (
	"context"
	"errors"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByReference(ctx context.Context, reference string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus, method string) error
}

type PaymentRepositoryImpl struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{DB: db}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *models.Payment) error {
	return r.DB.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	var payment models.Payment
	err := r.DB.WithContext(ctx).Where("reference = ?", reference).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus, method string) error {
	updates := map[string]interface{}{"status": status}
	if method != "" {
		updates["method"] = method
	}
	return r.DB.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error
}

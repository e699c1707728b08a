package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentPurpose string

const (
	PaymentForOrder        PaymentPurpose = "ORDER"
	PaymentForSubscription PaymentPurpose = "SUBSCRIPTION"
)

// Payment records one attempt to collect money through a payment provider.
type Payment struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Reference string          `gorm:"size:191;not null;uniqueIndex" json:"reference"`
	Purpose   PaymentPurpose  `gorm:"size:20;not null" json:"purpose"`
	OrderID   *string         `gorm:"size:36;index" json:"orderId,omitempty"`
	SubID     *string         `gorm:"column:subscription_id;size:36;index" json:"subscriptionId,omitempty"`
	UserID    string          `gorm:"size:36;not null;index" json:"userId"`
	Provider  string          `gorm:"size:30;not null" json:"provider"`
	IntentID  string          `gorm:"size:191" json:"intentId"`
	Amount    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	Status    PaymentStatus   `gorm:"size:20;not null" json:"status"`
	Method    string          `gorm:"size:50" json:"method,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

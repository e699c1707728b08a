package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// NextOrderStatus is the kitchen dashboard's suggested next step. The
// second result is false once an order leaves the kitchen's hands.
func NextOrderStatus(s OrderStatus) (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusConfirmed, true
	case OrderStatusConfirmed:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	}
	return "", false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type OrderType string

const (
	OrderTypeRegular OrderType = "REGULAR"
	OrderTypeParty   OrderType = "PARTY"
)

type Order struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderNumber string    `gorm:"size:64;not null;uniqueIndex" json:"orderNumber"`
	UserID      string    `gorm:"size:36;not null;index" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	OrderType   OrderType `gorm:"size:20;default:'REGULAR'" json:"orderType"`

	Status        OrderStatus   `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null" json:"paymentStatus"`

	TotalAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"totalAmount"`
	PlatformFee    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"platformFee"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"deliveryFee"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"taxAmount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"discountAmount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"finalAmount"`

	DeliveryAddress     DeliveryAddress `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress"`
	SpecialInstructions string          `gorm:"type:text" json:"specialInstructions,omitempty"`

	PaymentIntentID string `gorm:"size:191;index" json:"paymentIntentId,omitempty"`
	PaymentURL      string `gorm:"type:text" json:"paymentUrl,omitempty"`

	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime"`

	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// HasKitchen reports whether any line of the order is prepared by kitchenID.
func (o *Order) HasKitchen(kitchenID string) bool {
	for _, item := range o.Items {
		if item.KitchenID == kitchenID {
			return true
		}
	}
	return false
}

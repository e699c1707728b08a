package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID                  string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID             string          `gorm:"size:36;not null;index" json:"orderId"`
	KitchenID           string          `gorm:"size:36;not null;index" json:"kitchenId"`
	Kitchen             *Kitchen        `gorm:"foreignKey:KitchenID" json:"-"`
	MenuItemID          string          `gorm:"size:36;not null;index" json:"menuItemId"`
	MenuItem            *MenuItem       `gorm:"foreignKey:MenuItemID" json:"-"`
	Quantity            int             `gorm:"not null" json:"quantity"`
	PriceAtTime         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"priceAtTime"`
	Status              OrderStatus     `gorm:"size:20;not null" json:"status"`
	SpecialInstructions string          `gorm:"type:text" json:"specialInstructions,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func (oi *OrderItem) KitchenName() string {
	if oi.Kitchen == nil {
		return ""
	}
	return oi.Kitchen.Name
}

func (oi *OrderItem) MenuItemName() string {
	if oi.MenuItem == nil {
		return ""
	}
	return oi.MenuItem.Name
}

func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.PriceAtTime.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

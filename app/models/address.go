package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserAddress struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	Label     string    `gorm:"size:50" json:"label"`
	Street    string    `gorm:"size:255;not null" json:"street"`
	City      string    `gorm:"size:100;not null" json:"city"`
	State     string    `gorm:"size:100;not null" json:"state"`
	ZipCode   string    `gorm:"size:20;not null" json:"zipCode"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	IsDefault bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *UserAddress) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// DeliveryAddress is the address snapshot stored on an order.
type DeliveryAddress struct {
	Label     string   `gorm:"size:50" json:"label,omitempty"`
	Street    string   `gorm:"size:255" json:"street,omitempty"`
	City      string   `gorm:"size:100" json:"city,omitempty"`
	State     string   `gorm:"size:100" json:"state,omitempty"`
	ZipCode   string   `gorm:"size:20" json:"zipCode,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (a UserAddress) Snapshot() DeliveryAddress {
	return DeliveryAddress{
		Label:     a.Label,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

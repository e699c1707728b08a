package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID            string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	KitchenID     string    `gorm:"size:36;not null;index" json:"kitchenId"`
	UserID        string    `gorm:"size:36;not null;index" json:"userId"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderID       *string   `gorm:"size:36" json:"orderId,omitempty"`
	OverallRating int       `gorm:"not null" json:"overallRating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

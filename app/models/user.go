package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer     Role = "CUSTOMER"
	RoleKitchenOwner Role = "KITCHEN_OWNER"
	RoleAdmin        Role = "ADMIN"
)

type User struct {
	ID         string        `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ExternalID *string       `gorm:"size:191;uniqueIndex" json:"externalId,omitempty"`
	FirstName  string        `gorm:"size:100;not null" json:"firstName"`
	LastName   string        `gorm:"size:100" json:"lastName"`
	Email      string        `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Phone      string        `gorm:"size:20" json:"phone,omitempty"`
	Password   string        `gorm:"size:255" json:"-"`
	Role       Role          `gorm:"size:20;default:'CUSTOMER';not null" json:"role"`
	Addresses  []UserAddress `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

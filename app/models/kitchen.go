package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

type Kitchen struct {
	ID                 string             `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OwnerID            string             `gorm:"size:36;index" json:"ownerId"`
	Owner              *User              `gorm:"foreignKey:OwnerID" json:"-"`
	Slug               string             `gorm:"size:191;not null;uniqueIndex" json:"slug"`
	Name               string             `gorm:"size:255;not null" json:"name"`
	Description        string             `gorm:"type:text" json:"description"`
	Story              string             `gorm:"type:text" json:"story"`
	CuisineTypes       []string           `gorm:"type:text;serializer:json" json:"cuisineTypes"`
	RegionTags         []string           `gorm:"type:text;serializer:json" json:"regionTags"`
	Street             string             `gorm:"size:255" json:"street"`
	City               string             `gorm:"size:100" json:"city"`
	State              string             `gorm:"size:100" json:"state"`
	ZipCode            string             `gorm:"size:20" json:"zipCode"`
	Latitude           float64            `json:"latitude"`
	Longitude          float64            `json:"longitude"`
	Phone              string             `gorm:"size:20" json:"phone"`
	Email              string             `gorm:"size:191" json:"email"`
	ImageURL           string             `gorm:"size:255" json:"imageUrl"`
	VerificationStatus VerificationStatus `gorm:"size:20;default:'PENDING'" json:"verificationStatus"`
	HygieneScore       string             `gorm:"size:10" json:"hygieneScore"`
	IsActive           bool               `gorm:"default:true;index" json:"isActive"`
	AvgPrepTimeMinutes int                `gorm:"default:30" json:"avgPrepTimeMinutes"`
	MenuItems          []MenuItem         `gorm:"foreignKey:KitchenID" json:"menuItems,omitempty"`
	Reviews            []Review           `gorm:"foreignKey:KitchenID" json:"reviews,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func (k *Kitchen) BeforeCreate(tx *gorm.DB) (err error) {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	return
}

func (k *Kitchen) ServesCuisine(cuisine string) bool {
	return containsTag(k.CuisineTypes, cuisine)
}

func (k *Kitchen) InRegion(region string) bool {
	return containsTag(k.RegionTags, region)
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID                     string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	KitchenID              string          `gorm:"size:36;not null;index" json:"kitchenId"`
	Kitchen                *Kitchen        `gorm:"foreignKey:KitchenID" json:"kitchen,omitempty"`
	Name                   string          `gorm:"size:255;not null" json:"name"`
	Slug                   string          `gorm:"size:191;not null;index" json:"slug"`
	Description            string          `gorm:"type:text" json:"description"`
	Category               string          `gorm:"size:100;not null;index" json:"category"`
	Price                  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	PreparationTimeMinutes int             `gorm:"default:20" json:"preparationTimeMinutes"`
	ServingSize            string          `gorm:"size:100" json:"servingSize"`
	SpiceLevel             *int            `json:"spiceLevel"`
	DietaryTags            []string        `gorm:"type:text;serializer:json" json:"dietaryTags"`
	Ingredients            []string        `gorm:"type:text;serializer:json" json:"ingredients"`
	Allergens              []string        `gorm:"type:text;serializer:json" json:"allergens"`
	ImageURL               string          `gorm:"size:255" json:"imageUrl"`
	IsAvailable            bool            `gorm:"default:true" json:"isAvailable"`
	IsSeasonalSpecial      bool            `gorm:"default:false" json:"isSeasonalSpecial"`
	DisplayOrder           int             `gorm:"default:0" json:"displayOrder"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (m *MenuItem) HasDietaryTag(tag string) bool {
	return containsTag(m.DietaryTags, tag)
}

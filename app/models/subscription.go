package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubscriptionTier string

const (
	TierBasic    SubscriptionTier = "BASIC"
	TierFamily   SubscriptionTier = "FAMILY"
	TierPartyPro SubscriptionTier = "PARTY_PRO"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionPaused   SubscriptionStatus = "PAUSED"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

type Subscription struct {
	ID                     string             `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID                 string             `gorm:"size:36;not null;index" json:"userId"`
	Tier                   SubscriptionTier   `gorm:"size:20;not null" json:"tier"`
	Status                 SubscriptionStatus `gorm:"size:20;not null;index" json:"status"`
	ExternalSubscriptionID string             `gorm:"size:191" json:"externalSubscriptionId"`
	CurrentPeriodStart     time.Time          `json:"currentPeriodStart"`
	CurrentPeriodEnd       time.Time          `json:"currentPeriodEnd"`
	CreatedAt              time.Time          `json:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

type SubscriptionPlan struct {
	Tier         SubscriptionTier `json:"tier"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	Discount     decimal.Decimal  `json:"discount"`
	FreeDelivery bool             `json:"freeDelivery"`
	// FreeDeliveryMinimum is the subtotal from which delivery is free; zero
	// means every order.
	FreeDeliveryMinimum decimal.Decimal `json:"freeDeliveryMinimum"`
	Features            []string        `json:"features"`
}

var SubscriptionPlans = []SubscriptionPlan{
	{
		Tier:     TierBasic,
		Name:     "Basic",
		Price:    decimal.RequireFromString("9.99"),
		Discount: decimal.NewFromInt(15),
		Features: []string{
			"15% off all orders",
			"Early access to seasonal specials",
			"Priority customer support",
		},
	},
	{
		Tier:                TierFamily,
		Name:                "Family",
		Price:               decimal.RequireFromString("19.99"),
		Discount:            decimal.NewFromInt(20),
		FreeDelivery:        true,
		FreeDeliveryMinimum: decimal.NewFromInt(30),
		Features: []string{
			"20% off all orders",
			"Free delivery on orders $30+",
			"Family-size portions discount",
			"Weekly meal planning",
			"Priority customer support",
		},
	},
	{
		Tier:         TierPartyPro,
		Name:         "Party Pro",
		Price:        decimal.RequireFromString("39.99"),
		Discount:     decimal.NewFromInt(25),
		FreeDelivery: true,
		Features: []string{
			"25% off all orders",
			"Free delivery on all orders",
			"Dedicated party planner",
			"Custom catering menus",
			"Bulk order discounts",
			"Priority customer support",
		},
	},
}

func PlanFor(tier SubscriptionTier) (SubscriptionPlan, bool) {
	for _, p := range SubscriptionPlans {
		if p.Tier == tier {
			return p, true
		}
	}
	return SubscriptionPlan{}, false
}

// DeliveryIsFree applies the plan's free-delivery rule to a subtotal.
func (p SubscriptionPlan) DeliveryIsFree(subtotal decimal.Decimal) bool {
	if !p.FreeDelivery {
		return false
	}
	return subtotal.GreaterThanOrEqual(p.FreeDeliveryMinimum)
}

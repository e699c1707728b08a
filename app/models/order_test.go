package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNextOrderStatus(t *testing.T) {
	tests := []struct {
		from   OrderStatus
		want   OrderStatus
		wantOK bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, "", false},
		{OrderStatusDelivered, "", false},
		{OrderStatusCanceled, "", false},
	}

	for _, tt := range tests {
		got, ok := NextOrderStatus(tt.from)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NextOrderStatus(%s): expected (%q, %v), got (%q, %v)", tt.from, tt.want, tt.wantOK, got, ok)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	if !OrderStatusOutForDelivery.Valid() {
		t.Errorf("expected OUT_FOR_DELIVERY to be valid")
	}
	if OrderStatus("SHIPPED").Valid() {
		t.Errorf("expected SHIPPED to be invalid")
	}
}

func TestPlanDeliveryIsFree(t *testing.T) {
	tests := []struct {
		tier     SubscriptionTier
		subtotal string
		want     bool
	}{
		{TierBasic, "100.00", false},
		{TierFamily, "29.99", false},
		{TierFamily, "30.00", true},
		{TierPartyPro, "5.00", true},
	}

	for _, tt := range tests {
		plan, ok := PlanFor(tt.tier)
		if !ok {
			t.Fatalf("expected plan for %s", tt.tier)
		}
		if got := plan.DeliveryIsFree(decimal.RequireFromString(tt.subtotal)); got != tt.want {
			t.Errorf("%s at %s: expected free delivery %v, got %v", tt.tier, tt.subtotal, tt.want, got)
		}
	}
}

func TestOrderHasKitchen(t *testing.T) {
	o := Order{Items: []OrderItem{{KitchenID: "k1"}, {KitchenID: "k2"}}}
	if !o.HasKitchen("k2") || o.HasKitchen("k3") {
		t.Errorf("unexpected HasKitchen result")
	}
}

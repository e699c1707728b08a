package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/trinetrasoft/cloud-kitchen/app/cart"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/services/events"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/calc"
)

type recordingNotifier struct {
	orders []string
	err    error
}

func (n *recordingNotifier) OrderPlaced(ctx context.Context, order *models.Order, customer *models.User) error {
	n.orders = append(n.orders, order.OrderNumber)
	return n.err
}

type checkoutFixture struct {
	svc       *CheckoutService
	orders    *fakeOrderRepo
	subs      *fakeSubRepo
	payments  *fakePaymentRepo
	provider  *stubProvider
	publisher *events.MemoryPublisher
	notifier  *recordingNotifier
	customer  *models.User
}

func newCheckoutFixture(t *testing.T, subs ...models.Subscription) *checkoutFixture {
	t.Helper()

	menu := newFakeMenuRepo(
		models.MenuItem{ID: "dosa", KitchenID: "k1", Name: "Masala Dosa", Price: decimal.RequireFromString("12.50"), IsAvailable: true},
		models.MenuItem{ID: "chai", KitchenID: "k1", Name: "Chai", Price: decimal.RequireFromString("2.50"), IsAvailable: true},
		models.MenuItem{ID: "tacos", KitchenID: "k2", Name: "Tacos", Price: decimal.RequireFromString("25.00"), IsAvailable: true},
		models.MenuItem{ID: "sold-out", KitchenID: "k2", Name: "Mole", Price: decimal.RequireFromString("18.00"), IsAvailable: false},
	)
	customer := &models.User{ID: "u1", FirstName: "Asha", Email: "asha@example.com"}
	users := &fakeUserRepo{
		users:   map[string]*models.User{"u1": customer},
		address: &models.UserAddress{UserID: "u1", Street: "1 Main St", City: "Austin", State: "TX", ZipCode: "78701", IsDefault: true},
	}

	f := &checkoutFixture{
		orders:    newFakeOrderRepo(),
		subs:      newFakeSubRepo(subs...),
		payments:  newFakePaymentRepo(),
		provider:  &stubProvider{settle: true},
		publisher: &events.MemoryPublisher{},
		notifier:  &recordingNotifier{},
		customer:  customer,
	}
	f.svc = NewCheckoutService(f.orders, menu, f.subs, f.payments, users, f.provider, f.publisher, f.notifier, calc.DefaultOptions())
	f.svc.newOrderNumber = func() string { return "ORD-TEST1" }
	return f
}

func line(kitchenID, menuItemID string, qty int) cart.CheckoutLine {
	return cart.CheckoutLine{KitchenID: kitchenID, MenuItemID: menuItemID, Quantity: qty}
}

func TestPlaceOrder_SettledPaymentConfirmsOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	result, err := f.svc.PlaceOrder(context.Background(), f.customer, PlaceOrderRequest{
		Items: []cart.CheckoutLine{line("k1", "dosa", 2), line("k2", "tacos", 3)},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	order := result.Order
	if order.Status != models.OrderStatusConfirmed || order.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("expected CONFIRMED/PAID, got %s/%s", order.Status, order.PaymentStatus)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected subtotal 100, got %s", order.TotalAmount)
	}
	if !order.FinalAmount.Equal(decimal.RequireFromString("118.24")) {
		t.Errorf("expected final 118.24, got %s", order.FinalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if !order.Items[0].PriceAtTime.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected price snapshot 12.50, got %s", order.Items[0].PriceAtTime)
	}
	if order.DeliveryAddress.City != "Austin" {
		t.Errorf("expected default address to be used, got %+v", order.DeliveryAddress)
	}
	if f.orders.get(order.ID) == nil {
		t.Errorf("expected order to be stored")
	}
	if p, _ := f.payments.FindByReference(context.Background(), "ORD-TEST1"); p == nil || p.Status != models.PaymentStatusPaid {
		t.Errorf("expected paid payment record, got %+v", p)
	}
	if got := len(f.publisher.Events()); got != 1 {
		t.Errorf("expected 1 event, got %d", got)
	}
	if len(f.notifier.orders) != 1 {
		t.Errorf("expected receipt to be sent")
	}
	if len(f.provider.requests) != 1 || !f.provider.requests[0].Amount.Equal(order.FinalAmount) {
		t.Errorf("expected provider to be charged the final amount")
	}
}

func TestPlaceOrder_PendingPaymentLeavesOrderPending(t *testing.T) {
	f := newCheckoutFixture(t)
	f.provider.settle = false

	result, err := f.svc.PlaceOrder(context.Background(), f.customer, PlaceOrderRequest{
		Items: []cart.CheckoutLine{line("k1", "chai", 1)},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if result.Order.Status != models.OrderStatusPending || result.Order.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("expected PENDING/PENDING, got %s/%s", result.Order.Status, result.Order.PaymentStatus)
	}
}

func TestPlaceOrder_AppliesSubscription(t *testing.T) {
	tests := []struct {
		name         string
		tier         models.SubscriptionTier
		items        []cart.CheckoutLine
		wantDelivery string
		wantDiscount string
		wantFinal    string
	}{
		{
			name:         "family below free delivery minimum",
			tier:         models.TierFamily,
			items:        []cart.CheckoutLine{line("k2", "tacos", 1)},
			wantDelivery: "4.99",
			wantDiscount: "5.00",
			wantFinal:    "28.30",
		},
		{
			name:         "family above free delivery minimum",
			tier:         models.TierFamily,
			items:        []cart.CheckoutLine{line("k2", "tacos", 2)},
			wantDelivery: "0",
			wantDiscount: "10.00",
			wantFinal:    "46.63",
		},
		{
			name:         "party pro always delivers free",
			tier:         models.TierPartyPro,
			items:        []cart.CheckoutLine{line("k1", "chai", 1)},
			wantDelivery: "0",
			wantDiscount: "0.63",
			wantFinal:    "2.21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t, models.Subscription{ID: "s1", UserID: "u1", Tier: tt.tier, Status: models.SubscriptionActive})

			result, err := f.svc.PlaceOrder(context.Background(), f.customer, PlaceOrderRequest{Items: tt.items})
			if err != nil {
				t.Fatalf("PlaceOrder returned error: %v", err)
			}
			b := result.Breakdown
			if !b.DeliveryFee.Equal(decimal.RequireFromString(tt.wantDelivery)) {
				t.Errorf("expected delivery %s, got %s", tt.wantDelivery, b.DeliveryFee)
			}
			if !b.DiscountAmount.Equal(decimal.RequireFromString(tt.wantDiscount)) {
				t.Errorf("expected discount %s, got %s", tt.wantDiscount, b.DiscountAmount)
			}
			if !b.FinalAmount.Equal(decimal.RequireFromString(tt.wantFinal)) {
				t.Errorf("expected final %s, got %s", tt.wantFinal, b.FinalAmount)
			}
		})
	}
}

func TestPlaceOrder_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		items []cart.CheckoutLine
		want  error
	}{
		{name: "empty", items: nil, want: ErrEmptyCart},
		{name: "unknown item", items: []cart.CheckoutLine{line("k1", "nope", 1)}, want: ErrInvalidItem},
		{name: "wrong kitchen", items: []cart.CheckoutLine{line("k2", "dosa", 1)}, want: ErrInvalidItem},
		{name: "unavailable", items: []cart.CheckoutLine{line("k2", "sold-out", 1)}, want: ErrInvalidItem},
		{name: "zero quantity", items: []cart.CheckoutLine{line("k1", "dosa", 0)}, want: ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			_, err := f.svc.PlaceOrder(context.Background(), f.customer, PlaceOrderRequest{Items: tt.items})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(f.orders.orders) != 0 {
				t.Errorf("expected no order to be stored")
			}
		})
	}
}

func TestPlaceOrder_PaymentFailureStoresNothing(t *testing.T) {
	f := newCheckoutFixture(t)
	f.provider.createErr = errBoom

	_, err := f.svc.PlaceOrder(context.Background(), f.customer, PlaceOrderRequest{Items: []cart.CheckoutLine{line("k1", "dosa", 1)}})
	if !errors.Is(err, ErrPaymentUnavailable) {
		t.Fatalf("expected ErrPaymentUnavailable, got %v", err)
	}
	if len(f.orders.orders) != 0 || len(f.payments.payments) != 0 {
		t.Errorf("expected nothing to be stored")
	}
}

func TestPlaceOrder_NotifierFailureDoesNotFailOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.notifier.err = errBoom
	f.publisher.Err = errBoom

	if _, err := f.svc.PlaceOrder(context.Background(), f.customer, PlaceOrderRequest{Items: []cart.CheckoutLine{line("k1", "dosa", 1)}}); err != nil {
		t.Fatalf("expected order to succeed, got %v", err)
	}
}

func TestCheckoutCart_ClearsOnlyOnSuccess(t *testing.T) {
	f := newCheckoutFixture(t)
	store := cart.NewMemoryStore()
	c := cart.New(store)
	c.AddItem(cart.LineItem{KitchenID: "k1", MenuItemID: "dosa", Name: "Masala Dosa", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 1})

	f.provider.createErr = errBoom
	if _, err := f.svc.CheckoutCart(context.Background(), f.customer, c, nil, ""); err == nil {
		t.Fatalf("expected checkout to fail")
	}
	if c.IsEmpty() {
		t.Fatalf("expected cart to be kept after a failed checkout")
	}

	f.provider.createErr = nil
	if _, err := f.svc.CheckoutCart(context.Background(), f.customer, c, nil, "ring the bell"); err != nil {
		t.Fatalf("CheckoutCart returned error: %v", err)
	}
	if !c.IsEmpty() {
		t.Errorf("expected cart to be cleared after checkout")
	}
	if state, _ := store.Load(); len(state.Items) != 0 {
		t.Errorf("expected cleared cart to be persisted")
	}
}

func TestCheckoutCart_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.CheckoutCart(context.Background(), f.customer, cart.New(cart.NewMemoryStore()), nil, "")
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestNewOrderNumber(t *testing.T) {
	a, b := NewOrderNumber(), NewOrderNumber()
	if !strings.HasPrefix(a, "ORD-") || a == b {
		t.Errorf("expected distinct ORD- numbers, got %s and %s", a, b)
	}
	if a != strings.ToUpper(a) {
		t.Errorf("expected upper case order number, got %s", a)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/cart"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
	"github.com/trinetrasoft/cloud-kitchen/app/services/events"
	"github.com/trinetrasoft/cloud-kitchen/app/services/payment"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/calc"
)

type PlaceOrderRequest struct {
	Items               []cart.CheckoutLine     `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress     *models.DeliveryAddress `json:"deliveryAddress"`
	SpecialInstructions string                  `json:"specialInstructions" validate:"max=1000"`
}

type PlaceOrderResult struct {
	Order     *models.Order   `json:"order"`
	Payment   *payment.Intent `json:"payment"`
	Breakdown calc.Breakdown  `json:"breakdown"`
}

// OrderNotifier is told about every order that was placed.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, order *models.Order, customer *models.User) error
}

type CheckoutService struct {
	orderRepo   repositories.OrderRepository
	menuRepo    repositories.MenuItemRepository
	subRepo     repositories.SubscriptionRepository
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	provider    payment.Provider
	publisher   events.Publisher
	notifier    OrderNotifier
	pricing     calc.Options

	newOrderNumber func() string
	now            func() time.Time
}

func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	menuRepo repositories.MenuItemRepository,
	subRepo repositories.SubscriptionRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	provider payment.Provider,
	publisher events.Publisher,
	notifier OrderNotifier,
	pricing calc.Options,
) *CheckoutService {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &CheckoutService{
		orderRepo:      orderRepo,
		menuRepo:       menuRepo,
		subRepo:        subRepo,
		paymentRepo:    paymentRepo,
		userRepo:       userRepo,
		provider:       provider,
		publisher:      publisher,
		notifier:       notifier,
		pricing:        pricing,
		newOrderNumber: NewOrderNumber,
		now:            time.Now,
	}
}

func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(cuid.Slug())
}

// PricingFor applies the customer's active subscription to the base rates.
func (s *CheckoutService) PricingFor(ctx context.Context, userID string, subtotal decimal.Decimal) (calc.Options, error) {
	opts := s.pricing
	if userID == "" {
		return opts, nil
	}

	sub, err := s.subRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return opts, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		return opts, nil
	}
	plan, ok := models.PlanFor(sub.Tier)
	if !ok {
		return opts, nil
	}

	opts.DiscountPercent = plan.Discount
	if plan.DeliveryIsFree(subtotal) {
		opts.DeliveryFee = decimal.Zero
	}
	return opts, nil
}

// Quote prices lines without placing an order.
func (s *CheckoutService) Quote(ctx context.Context, userID string, subtotal decimal.Decimal) (calc.Breakdown, error) {
	opts, err := s.PricingFor(ctx, userID, subtotal)
	if err != nil {
		return calc.Breakdown{}, err
	}
	return calc.Calculate(subtotal, opts), nil
}

// resolveItems checks every line against the catalogue and snapshots the
// catalogue price.
func (s *CheckoutService) resolveItems(ctx context.Context, lines []cart.CheckoutLine) ([]models.OrderItem, decimal.Decimal, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}
	menuItems, err := s.menuRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load menu items: %w", err)
	}
	byID := make(map[string]models.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		mi, ok := byID[line.MenuItemID]
		switch {
		case !ok:
			return nil, decimal.Zero, fmt.Errorf("%w: menu item %s does not exist", ErrInvalidItem, line.MenuItemID)
		case mi.KitchenID != line.KitchenID:
			return nil, decimal.Zero, fmt.Errorf("%w: menu item %s is not served by kitchen %s", ErrInvalidItem, line.MenuItemID, line.KitchenID)
		case !mi.IsAvailable:
			return nil, decimal.Zero, fmt.Errorf("%w: %s is currently unavailable", ErrInvalidItem, mi.Name)
		case line.Quantity <= 0:
			return nil, decimal.Zero, fmt.Errorf("%w: quantity for %s must be positive", ErrInvalidItem, mi.Name)
		}

		if !line.UnitPrice.IsZero() && !line.UnitPrice.Equal(mi.Price) {
			zap.S().Infof("CheckoutService.resolveItems: price of %s changed from %s to %s", mi.ID, line.UnitPrice, mi.Price)
		}

		items = append(items, models.OrderItem{
			KitchenID:           line.KitchenID,
			MenuItemID:          line.MenuItemID,
			Quantity:            line.Quantity,
			PriceAtTime:         mi.Price,
			Status:              models.OrderStatusPending,
			SpecialInstructions: line.SpecialInstructions,
		})
		subtotal = subtotal.Add(mi.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return items, subtotal, nil
}

func (s *CheckoutService) deliveryAddress(ctx context.Context, userID string, requested *models.DeliveryAddress) models.DeliveryAddress {
	if requested != nil {
		return *requested
	}
	addr, err := s.userRepo.DefaultAddress(ctx, userID)
	if err != nil {
		zap.S().Warnf("CheckoutService.deliveryAddress: failed to load default address for %s: %v", userID, err)
		return models.DeliveryAddress{}
	}
	if addr == nil {
		return models.DeliveryAddress{}
	}
	return addr.Snapshot()
}

// PlaceOrder prices the lines, collects payment through the configured
// provider and stores the order. Nothing is stored when pricing or payment
// initiation fails.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customer *models.User, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items, subtotal, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	opts, err := s.PricingFor(ctx, customer.ID, subtotal)
	if err != nil {
		return nil, err
	}
	breakdown := calc.Calculate(subtotal, opts)

	orderNumber := s.newOrderNumber()
	intent, err := s.provider.CreatePayment(ctx, payment.Request{
		Reference:   orderNumber,
		Amount:      breakdown.FinalAmount,
		Description: "Trinetra order " + orderNumber,
		Customer: payment.Customer{
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Email:     customer.Email,
			Phone:     customer.Phone,
		},
	})
	if err != nil {
		zap.S().Errorf("CheckoutService.PlaceOrder: payment initiation failed for %s: %v", orderNumber, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	status, paymentStatus := models.OrderStatusPending, models.PaymentStatusPending
	if intent.Settled {
		status, paymentStatus = models.OrderStatusConfirmed, models.PaymentStatusPaid
	}

	eta := s.now().Add(45 * time.Minute)
	order := &models.Order{
		OrderNumber:           orderNumber,
		UserID:                customer.ID,
		OrderType:             models.OrderTypeRegular,
		Status:                status,
		PaymentStatus:         paymentStatus,
		TotalAmount:           breakdown.Subtotal,
		PlatformFee:           breakdown.PlatformFee,
		DeliveryFee:           breakdown.DeliveryFee,
		TaxAmount:             breakdown.TaxAmount,
		DiscountAmount:        breakdown.DiscountAmount,
		FinalAmount:           breakdown.FinalAmount,
		DeliveryAddress:       s.deliveryAddress(ctx, customer.ID, req.DeliveryAddress),
		SpecialInstructions:   req.SpecialInstructions,
		PaymentIntentID:       intent.IntentID,
		PaymentURL:            intent.RedirectURL,
		EstimatedDeliveryTime: &eta,
		Items:                 items,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderID := order.ID
	record := &models.Payment{
		Reference: orderNumber,
		Purpose:   models.PaymentForOrder,
		OrderID:   &orderID,
		UserID:    customer.ID,
		Provider:  s.provider.Name(),
		IntentID:  intent.IntentID,
		Amount:    breakdown.FinalAmount,
		Status:    paymentStatus,
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		zap.S().Errorf("CheckoutService.PlaceOrder: failed to record payment for %s: %v", orderNumber, err)
	}

	if err := s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderCreated, order)); err != nil {
		zap.S().Warnf("CheckoutService.PlaceOrder: failed to publish order event for %s: %v", orderNumber, err)
	}
	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, order, customer); err != nil {
			zap.S().Warnf("CheckoutService.PlaceOrder: failed to send receipt for %s: %v", orderNumber, err)
		}
	}

	zap.S().Infof("CheckoutService.PlaceOrder: order %s placed for user %s (%s, %s)", orderNumber, customer.ID, status, paymentStatus)
	return &PlaceOrderResult{Order: order, Payment: intent, Breakdown: breakdown}, nil
}

// CheckoutCart places an order for the cart's lines and clears the cart
// only when the order was created.
func (s *CheckoutService) CheckoutCart(ctx context.Context, customer *models.User, c *cart.Cart, address *models.DeliveryAddress, instructions string) (*PlaceOrderResult, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	result, err := s.PlaceOrder(ctx, customer, PlaceOrderRequest{
		Items:               c.CheckoutLines(),
		DeliveryAddress:     address,
		SpecialInstructions: instructions,
	})
	if err != nil {
		return nil, err
	}

	c.Clear()
	return result, nil
}

func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrInvalidItem)
}

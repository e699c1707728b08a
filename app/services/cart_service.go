package services

import (
	"context"
	"fmt"

	"github.com/trinetrasoft/cloud-kitchen/app/cart"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/calc"
)

// CartSummary is the cart plus the price the customer would pay now.
type CartSummary struct {
	Groups    []cart.KitchenGroup `json:"groups"`
	ItemCount int                 `json:"itemCount"`
	Breakdown calc.Breakdown      `json:"breakdown"`
}

type CartService struct {
	menuRepo repositories.MenuItemRepository
	checkout *CheckoutService
}

func NewCartService(menuRepo repositories.MenuItemRepository, checkout *CheckoutService) *CartService {
	return &CartService{menuRepo: menuRepo, checkout: checkout}
}

// AddMenuItem looks the dish up in the catalogue and adds it to the cart
// with the current price and kitchen name.
func (s *CartService) AddMenuItem(ctx context.Context, c *cart.Cart, menuItemID string, qty int, instructions string) error {
	item, err := s.menuRepo.FindByID(ctx, menuItemID)
	if err != nil {
		return fmt.Errorf("failed to load menu item: %w", err)
	}
	if item == nil {
		return ErrMenuItemNotFound
	}
	if !item.IsAvailable {
		return fmt.Errorf("%w: %s is currently unavailable", ErrInvalidItem, item.Name)
	}

	kitchenName := ""
	if item.Kitchen != nil {
		kitchenName = item.Kitchen.Name
	}

	c.AddItem(cart.LineItem{
		KitchenID:           item.KitchenID,
		KitchenName:         kitchenName,
		MenuItemID:          item.ID,
		Name:                item.Name,
		UnitPrice:           item.Price,
		Quantity:            qty,
		ImageURL:            item.ImageURL,
		SpecialInstructions: instructions,
	})
	return nil
}

func (s *CartService) Summary(ctx context.Context, userID string, c *cart.Cart) (*CartSummary, error) {
	subtotal := c.TotalAmount()
	breakdown, err := s.checkout.Quote(ctx, userID, subtotal)
	if err != nil {
		return nil, err
	}
	groups := c.GroupsInOrder()
	if groups == nil {
		groups = []cart.KitchenGroup{}
	}
	return &CartSummary{Groups: groups, ItemCount: c.ItemCount(), Breakdown: breakdown}, nil
}

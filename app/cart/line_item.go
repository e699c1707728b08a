package cart

import "github.com/shopspring/decimal"

// LineItem is one menu item from one kitchen in the cart.
type LineItem struct {
	ID                  string          `json:"id"`
	KitchenID           string          `json:"kitchenId"`
	KitchenName         string          `json:"kitchenName"`
	MenuItemID          string          `json:"menuItemId"`
	Name                string          `json:"name"`
	UnitPrice           decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	ImageURL            string          `json:"imageUrl,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l LineItem) sameProduct(other LineItem) bool {
	return l.MenuItemID == other.MenuItemID && l.KitchenID == other.KitchenID
}

// KitchenGroup is the slice of the cart that one kitchen will prepare.
type KitchenGroup struct {
	KitchenID   string          `json:"kitchenId"`
	KitchenName string          `json:"kitchenName"`
	Items       []LineItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CheckoutLine is the shape handed to order creation.
type CheckoutLine struct {
	KitchenID           string          `json:"kitchenId" validate:"required"`
	MenuItemID          string          `json:"menuItemId" validate:"required"`
	Quantity            int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice           decimal.Decimal `json:"price"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

// State is everything that gets persisted between sessions.
type State struct {
	Items []LineItem `json:"items"`
}

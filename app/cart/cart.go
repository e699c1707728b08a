// Package cart keeps a customer's multi-kitchen basket and persists the
// whole of it after every change.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cart is not safe for concurrent use; each session owns its own.
type Cart struct {
	items []LineItem
	store Persister
	newID func() string
}

type Option func(*Cart)

// WithIDGenerator replaces the UUID generator used for new lines.
func WithIDGenerator(fn func() string) Option {
	return func(c *Cart) { c.newID = fn }
}

// New restores the cart from store. A store that fails to load yields an
// empty cart.
func New(store Persister, opts ...Option) *Cart {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Cart{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(c)
	}

	state, err := store.Load()
	if err != nil {
		zap.S().Debugf("Cart.New: failed to load persisted cart, starting empty: %v", err)
		return c
	}
	for _, item := range state.Items {
		if item.Quantity > 0 {
			c.items = append(c.items, item)
		}
	}
	return c
}

// AddItem merges candidate into the line with the same kitchen and menu
// item, or appends it as a new line.
func (c *Cart) AddItem(candidate LineItem) {
	if candidate.Quantity <= 0 {
		return
	}

	for i := range c.items {
		if c.items[i].sameProduct(candidate) {
			c.items[i].Quantity += candidate.Quantity
			c.persist()
			return
		}
	}

	candidate.ID = c.newID()
	c.items = append(c.items, candidate)
	c.persist()
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return
	}
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.persist()
}

func (c *Cart) RemoveItem(lineID string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != lineID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.persist()
}

func (c *Cart) UpdateSpecialInstructions(lineID, instructions string) {
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items[i].SpecialInstructions = instructions
			break
		}
	}
	c.persist()
}

func (c *Cart) Clear() {
	c.items = nil
	c.persist()
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Item(lineID string) (LineItem, bool) {
	for _, item := range c.items {
		if item.ID == lineID {
			return item, true
		}
	}
	return LineItem{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// KitchenGroups partitions the lines by kitchen id, keeping insertion order
// within each group.
func (c *Cart) KitchenGroups() map[string][]LineItem {
	groups := make(map[string][]LineItem)
	for _, item := range c.items {
		groups[item.KitchenID] = append(groups[item.KitchenID], item)
	}
	return groups
}

// GroupsInOrder is KitchenGroups ordered by each kitchen's first line.
func (c *Cart) GroupsInOrder() []KitchenGroup {
	index := make(map[string]int)
	var groups []KitchenGroup
	for _, item := range c.items {
		i, ok := index[item.KitchenID]
		if !ok {
			i = len(groups)
			index[item.KitchenID] = i
			groups = append(groups, KitchenGroup{
				KitchenID:   item.KitchenID,
				KitchenName: item.KitchenName,
				Subtotal:    decimal.Zero,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Subtotal = groups[i].Subtotal.Add(item.Subtotal())
	}
	return groups
}

func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) CheckoutLines() []CheckoutLine {
	lines := make([]CheckoutLine, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, CheckoutLine{
			KitchenID:           item.KitchenID,
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return lines
}

func (c *Cart) State() State {
	return State{Items: c.Items()}
}

func (c *Cart) persist() {
	if err := c.store.Save(c.State()); err != nil {
		zap.S().Warnf("Cart.persist: failed to save cart, keeping in-memory state: %v", err)
	}
}

package cart

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	})
}

func item(kitchenID, menuItemID, price string, qty int) LineItem {
	return LineItem{
		KitchenID:   kitchenID,
		KitchenName: "Kitchen " + kitchenID,
		MenuItemID:  menuItemID,
		Name:        "Dish " + menuItemID,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
	}
}

func TestAddItem_MergesSameKitchenAndMenuItem(t *testing.T) {
	c := New(NewMemoryStore(), sequentialIDs())

	c.AddItem(item("k1", "m1", "12.50", 1))
	c.AddItem(item("k1", "m1", "12.50", 2))

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", items[0].Quantity)
	}
	if items[0].ID != "line-1" {
		t.Errorf("expected merged line to keep id %q, got %q", "line-1", items[0].ID)
	}
}

func TestAddItem_SameMenuItemDifferentKitchenIsSeparateLine(t *testing.T) {
	c := New(NewMemoryStore(), sequentialIDs())

	c.AddItem(item("k1", "m1", "10.00", 1))
	c.AddItem(item("k2", "m1", "10.00", 1))

	if got := len(c.Items()); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
	if c.Items()[0].ID == c.Items()[1].ID {
		t.Errorf("expected distinct line ids")
	}
}

func TestAddItem_IgnoresNonPositiveQuantity(t *testing.T) {
	c := New(NewMemoryStore())

	c.AddItem(item("k1", "m1", "10.00", 0))
	c.AddItem(item("k1", "m2", "10.00", -2))

	if !c.IsEmpty() {
		t.Errorf("expected empty cart, got %d lines", len(c.Items()))
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
	}{
		{name: "sets positive quantity", quantity: 5, wantLines: 1, wantQty: 5},
		{name: "zero removes line", quantity: 0, wantLines: 0},
		{name: "negative removes line", quantity: -3, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(NewMemoryStore(), sequentialIDs())
			c.AddItem(item("k1", "m1", "8.00", 2))

			c.UpdateQuantity("line-1", tt.quantity)

			items := c.Items()
			if len(items) != tt.wantLines {
				t.Fatalf("expected %d lines, got %d", tt.wantLines, len(items))
			}
			if tt.wantLines == 1 && items[0].Quantity != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, items[0].Quantity)
			}
		})
	}
}

func TestUpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	c := New(NewMemoryStore(), sequentialIDs())
	c.AddItem(item("k1", "m1", "8.00", 2))

	c.UpdateQuantity("missing", 7)

	if c.ItemCount() != 2 {
		t.Errorf("expected item count 2, got %d", c.ItemCount())
	}
}

func TestRemoveItem_Idempotent(t *testing.T) {
	c := New(NewMemoryStore(), sequentialIDs())
	c.AddItem(item("k1", "m1", "8.00", 1))
	c.AddItem(item("k1", "m2", "4.00", 1))

	c.RemoveItem("line-1")
	c.RemoveItem("line-1")

	items := c.Items()
	if len(items) != 1 || items[0].MenuItemID != "m2" {
		t.Fatalf("expected only m2 to remain, got %+v", items)
	}
}

func TestUpdateSpecialInstructions(t *testing.T) {
	c := New(NewMemoryStore(), sequentialIDs())
	c.AddItem(item("k1", "m1", "8.00", 1))

	c.UpdateSpecialInstructions("line-1", "extra spicy")

	got, ok := c.Item("line-1")
	if !ok {
		t.Fatal("expected line-1 to exist")
	}
	if got.SpecialInstructions != "extra spicy" {
		t.Errorf("expected %q, got %q", "extra spicy", got.SpecialInstructions)
	}
}

func TestTotalsAndGroups(t *testing.T) {
	c := New(NewMemoryStore(), sequentialIDs())
	c.AddItem(item("k2", "m1", "12.50", 2))
	c.AddItem(item("k1", "m2", "3.25", 1))
	c.AddItem(item("k2", "m3", "1.10", 3))

	if want := decimal.RequireFromString("31.55"); !c.TotalAmount().Equal(want) {
		t.Errorf("expected total %s, got %s", want, c.TotalAmount())
	}
	if c.ItemCount() != 6 {
		t.Errorf("expected item count 6, got %d", c.ItemCount())
	}

	groups := c.KitchenGroups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 kitchen groups, got %d", len(groups))
	}
	k2 := groups["k2"]
	if len(k2) != 2 || k2[0].MenuItemID != "m1" || k2[1].MenuItemID != "m3" {
		t.Errorf("expected k2 lines in insertion order [m1 m3], got %+v", k2)
	}

	ordered := c.GroupsInOrder()
	if ordered[0].KitchenID != "k2" || ordered[1].KitchenID != "k1" {
		t.Errorf("expected kitchens ordered [k2 k1], got [%s %s]", ordered[0].KitchenID, ordered[1].KitchenID)
	}
	if want := decimal.RequireFromString("28.30"); !ordered[0].Subtotal.Equal(want) {
		t.Errorf("expected k2 subtotal %s, got %s", want, ordered[0].Subtotal)
	}

	sum := 0
	for _, lines := range groups {
		sum += len(lines)
	}
	if sum != len(c.Items()) {
		t.Errorf("expected groups to partition all %d lines, got %d", len(c.Items()), sum)
	}
}

func TestEmptyCart(t *testing.T) {
	c := New(NewMemoryStore())

	if !c.TotalAmount().IsZero() {
		t.Errorf("expected zero total, got %s", c.TotalAmount())
	}
	if c.ItemCount() != 0 {
		t.Errorf("expected zero items, got %d", c.ItemCount())
	}
	if len(c.KitchenGroups()) != 0 {
		t.Errorf("expected no groups")
	}
}

func TestClear(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	c.AddItem(item("k1", "m1", "8.00", 1))

	c.Clear()

	state, _ := store.Load()
	if len(state.Items) != 0 || !c.IsEmpty() {
		t.Errorf("expected cleared cart to persist empty state")
	}
}

func TestCheckoutLines(t *testing.T) {
	c := New(NewMemoryStore())
	li := item("k1", "m1", "9.99", 2)
	li.SpecialInstructions = "no onions"
	c.AddItem(li)

	lines := c.CheckoutLines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	got := lines[0]
	if got.KitchenID != "k1" || got.MenuItemID != "m1" || got.Quantity != 2 || got.SpecialInstructions != "no onions" {
		t.Errorf("unexpected checkout line %+v", got)
	}
	if !got.UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("expected unit price 9.99, got %s", got.UnitPrice)
	}
}

func TestPersistence_EveryMutationSaves(t *testing.T) {
	store := NewMemoryStore()
	c := New(store, sequentialIDs())

	c.AddItem(item("k1", "m1", "8.00", 1))
	c.UpdateQuantity("line-1", 3)
	c.UpdateSpecialInstructions("line-1", "mild")
	c.RemoveItem("line-1")
	c.Clear()

	if store.Saves != 5 {
		t.Errorf("expected 5 saves, got %d", store.Saves)
	}
}

func TestPersistence_SaveFailureKeepsCartUsable(t *testing.T) {
	store := NewMemoryStore()
	store.SaveErr = errors.New("quota exceeded")
	c := New(store)

	c.AddItem(item("k1", "m1", "8.00", 2))

	if c.ItemCount() != 2 {
		t.Errorf("expected in-memory cart to keep working, got count %d", c.ItemCount())
	}
}

func TestPersistence_RestoresFromStore(t *testing.T) {
	store := NewMemoryStore()
	first := New(store)
	first.AddItem(item("k1", "m1", "8.00", 2))

	second := New(store)

	if second.ItemCount() != 2 {
		t.Errorf("expected restored count 2, got %d", second.ItemCount())
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carts", "cart.json")
	c := New(NewFileStore(path), sequentialIDs())
	c.AddItem(item("k1", "m1", "12.50", 2))

	restored := New(NewFileStore(path))

	items := restored.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 restored line, got %d", len(items))
	}
	if !items[0].UnitPrice.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected price 12.50, got %s", items[0].UnitPrice)
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	c := New(NewFileStore(filepath.Join(t.TempDir(), "absent.json")))

	if !c.IsEmpty() {
		t.Errorf("expected empty cart from missing file")
	}
}

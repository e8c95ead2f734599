package store

import "encoding/json"

// CartItem is one bag line, keyed by variant id.
type CartItem struct {
	ProductID    string  `json:"productId"`
	VariantID    string  `json:"variantId"`
	ProductName  string  `json:"productName"`
	ProductSlug  string  `json:"productSlug"`
	ProductImage string  `json:"productImage"`
	VariantName  string  `json:"variantName"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	ColorHex     string  `json:"colorHex"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// Cart holds the shopper's bag. It is owned by the browser session:
// the server only ever hydrates it from a serialized snapshot, mutates
// it, and writes the snapshot back. All mutations go through methods.
type Cart struct {
	items []CartItem
	open  bool
}

func NewCart() *Cart { return &Cart{} }

// AddItem merges by variant id: an existing line gets +1 quantity, a
// new variant is appended with quantity 1. Adding opens the drawer.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.items {
		if c.items[i].VariantID == item.VariantID {
			c.items[i].Quantity++
			c.open = true
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	c.open = true
}

func (c *Cart) RemoveItem(variantID string) {
	out := c.items[:0]
	for _, it := range c.items {
		if it.VariantID != variantID {
			out = append(out, it)
		}
	}
	c.items = out
}

// UpdateQuantity sets the line quantity directly; anything below 1
// removes the line. No clamp against live stock; enforcement is
// deferred to checkout.
func (c *Cart) UpdateQuantity(variantID string, qty int) {
	if qty < 1 {
		c.RemoveItem(variantID)
		return
	}
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			c.items[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Clear() { c.items = nil }

func (c *Cart) Items() []CartItem { return c.items }

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (c *Cart) IsOpen() bool { return c.open }
func (c *Cart) OpenDrawer()  { c.open = true }
func (c *Cart) CloseDrawer() { c.open = false }

// Snapshot serializes the line items for client-side persistence. The
// drawer flag is transient and not persisted.
func (c *Cart) Snapshot() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// Restore hydrates the cart from a snapshot. A corrupt snapshot leaves
// the cart empty rather than failing the request.
func (c *Cart) Restore(data []byte) error {
	var items []CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		c.items = nil
		return err
	}
	c.items = items
	return nil
}

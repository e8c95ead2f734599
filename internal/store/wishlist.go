package store

import "encoding/json"

// WishlistItem is keyed by product id; presence only, no quantity.
type WishlistItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductSlug  string  `json:"productSlug"`
	ProductImage string  `json:"productImage"`
	Price        float64 `json:"price"`
}

type Wishlist struct {
	items []WishlistItem
}

func NewWishlist() *Wishlist { return &Wishlist{} }

// AddItem is a no-op if the product is already saved.
func (w *Wishlist) AddItem(item WishlistItem) {
	if w.Contains(item.ProductID) {
		return
	}
	w.items = append(w.items, item)
}

func (w *Wishlist) RemoveItem(productID string) {
	out := w.items[:0]
	for _, it := range w.items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	w.items = out
}

// ToggleItem removes the product if present, adds it otherwise.
func (w *Wishlist) ToggleItem(item WishlistItem) {
	if w.Contains(item.ProductID) {
		w.RemoveItem(item.ProductID)
		return
	}
	w.AddItem(item)
}

func (w *Wishlist) Contains(productID string) bool {
	for _, it := range w.items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Items() []WishlistItem { return w.items }
func (w *Wishlist) ItemCount() int        { return len(w.items) }
func (w *Wishlist) Clear()                { w.items = nil }

func (w *Wishlist) Snapshot() ([]byte, error) {
	if w.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(w.items)
}

func (w *Wishlist) Restore(data []byte) error {
	var items []WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		w.items = nil
		return err
	}
	w.items = items
	return nil
}

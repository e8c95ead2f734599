package store_test

import (
	"testing"

	"delphine/internal/store"
)

func saved(productID string) store.WishlistItem {
	return store.WishlistItem{
		ProductID:   productID,
		ProductName: "Aegean One Piece",
		ProductSlug: "aegean-one-piece",
		Price:       119,
	}
}

func TestWishlistToggleRoundTrip(t *testing.T) {
	w := store.NewWishlist()

	w.ToggleItem(saved("p-1"))
	if !w.Contains("p-1") {
		t.Fatal("first toggle should add")
	}
	w.ToggleItem(saved("p-1"))
	if w.Contains("p-1") {
		t.Fatal("second toggle should remove")
	}
	if w.ItemCount() != 0 {
		t.Fatalf("want empty wishlist, got %d items", w.ItemCount())
	}
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	w := store.NewWishlist()
	w.AddItem(saved("p-1"))
	w.AddItem(saved("p-1"))
	if w.ItemCount() != 1 {
		t.Fatalf("duplicate add should be a no-op, got %d items", w.ItemCount())
	}
}

func TestWishlistSnapshotRoundTrip(t *testing.T) {
	w := store.NewWishlist()
	w.AddItem(saved("p-1"))
	w.AddItem(saved("p-2"))

	snap, err := w.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	restored := store.NewWishlist()
	if err := restored.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if !restored.Contains("p-1") || !restored.Contains("p-2") || restored.ItemCount() != 2 {
		t.Fatalf("bad restore: %+v", restored.Items())
	}
}

func TestWishlistEmptySnapshot(t *testing.T) {
	w := store.NewWishlist()
	snap, err := w.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if string(snap) != "[]" {
		t.Fatalf("empty wishlist should serialize to [], got %s", snap)
	}
}

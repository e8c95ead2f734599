package catalog_test

import (
	"testing"

	"delphine/internal/catalog"
	"delphine/internal/domain"
)

func testVariants() []domain.ProductVariant {
	return []domain.ProductVariant{
		{ID: "v-1", ProductID: "p-1", Size: "S", Color: "Black", ColorHex: "#1a1a1a", StockQuantity: 3},
		{ID: "v-2", ProductID: "p-1", Size: "M", Color: "Black", ColorHex: "#1a1a1a", StockQuantity: 5},
		{ID: "v-3", ProductID: "p-1", Size: "M", Color: "Sand", ColorHex: "#d8c3a5", StockQuantity: 0},
		{ID: "v-4", ProductID: "p-1", Size: "L", Color: "Sand", ColorHex: "#d8c3a5", StockQuantity: 2, Price: 129},
	}
}

func TestResolveVariant(t *testing.T) {
	vs := testVariants()

	v := catalog.ResolveVariant(vs, "M", "Black")
	if v == nil || v.ID != "v-2" {
		t.Fatalf("want v-2, got %+v", v)
	}
	if v := catalog.ResolveVariant(vs, "L", "Black"); v != nil {
		t.Fatalf("want nil for missing combination, got %+v", v)
	}
}

func TestColorsDedupFirstWins(t *testing.T) {
	colors := catalog.Colors(testVariants())
	if len(colors) != 2 {
		t.Fatalf("want 2 colors, got %+v", colors)
	}
	if colors[0].Color != "Black" || colors[1].Color != "Sand" {
		t.Fatalf("unexpected order: %+v", colors)
	}
}

// Changing color must re-gate every size: M is buyable in Black but
// not in Sand (zero stock), L only in Sand.
func TestSizeAvailabilityPerColor(t *testing.T) {
	vs := testVariants()

	if !catalog.SizeAvailable(vs, "M", "Black") {
		t.Fatal("M/Black should be available")
	}
	if catalog.SizeAvailable(vs, "M", "Sand") {
		t.Fatal("M/Sand is out of stock, size must render disabled")
	}
	if catalog.SizeAvailable(vs, "L", "Black") {
		t.Fatal("L/Black does not exist, size must render disabled")
	}
	if !catalog.SizeAvailable(vs, "L", "Sand") {
		t.Fatal("L/Sand should be available")
	}
}

func TestDisplayPrice(t *testing.T) {
	p := domain.Product{ID: "p-1", Price: 119}
	vs := testVariants()

	if got := catalog.DisplayPrice(p, catalog.ResolveVariant(vs, "M", "Black")); got != 119 {
		t.Fatalf("variant without override should inherit product price, got %v", got)
	}
	if got := catalog.DisplayPrice(p, catalog.ResolveVariant(vs, "L", "Sand")); got != 129 {
		t.Fatalf("variant override should win, got %v", got)
	}
	if got := catalog.DisplayPrice(p, nil); got != 119 {
		t.Fatalf("nil variant should fall back to product price, got %v", got)
	}
}

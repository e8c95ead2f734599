package handlers

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "delphine/internal/log"
	"delphine/internal/store"
	"delphine/internal/validate"
)

const cartCookie = "delphine-cart"

type CartHandler struct{}

// loadCart hydrates the bag from its cookie snapshot. A missing or
// corrupt cookie yields an empty bag.
func loadCart(c *fiber.Ctx) *store.Cart {
	bag := store.NewCart()
	raw := c.Cookies(cartCookie)
	if raw == "" {
		return bag
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return bag
	}
	_ = bag.Restore(data)
	return bag
}

func saveCart(c *fiber.Ctx, bag *store.Cart) {
	snap, err := bag.Snapshot()
	if err != nil {
		applog.Error(c, "cart.persist.fail", err, nil)
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cartCookie,
		Value:    base64.StdEncoding.EncodeToString(snap),
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func cartJSON(c *fiber.Ctx, bag *store.Cart) error {
	items := bag.Items()
	if items == nil {
		items = []store.CartItem{}
	}
	return c.JSON(fiber.Map{
		"items":    items,
		"count":    bag.ItemCount(),
		"subtotal": bag.Subtotal(),
		"isOpen":   bag.IsOpen(),
	})
}

// View handles GET /api/cart.
func (h *CartHandler) View(c *fiber.Ctx) error {
	return cartJSON(c, loadCart(c))
}

// Add handles POST /api/cart: body is the line to add (quantity is
// ignored, merge semantics always add one).
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var item store.CartItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item"})
	}
	if _, ok := validate.ID(item.VariantID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing variantId"})
	}
	if _, ok := validate.ID(item.ProductID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}

	bag := loadCart(c)
	bag.AddItem(item)
	saveCart(c, bag)
	applog.Info(c, "cart.add", map[string]any{"variant": item.VariantID})
	return cartJSON(c, bag)
}

// UpdateQuantity handles POST /api/cart/update.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var body struct {
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if _, ok := validate.ID(body.VariantID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing variantId"})
	}

	bag := loadCart(c)
	bag.UpdateQuantity(body.VariantID, validate.Qty(body.Quantity))
	saveCart(c, bag)
	return cartJSON(c, bag)
}

// Remove handles POST /api/cart/remove.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var body struct {
		VariantID string `json:"variantId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	bag := loadCart(c)
	bag.RemoveItem(body.VariantID)
	saveCart(c, bag)
	return cartJSON(c, bag)
}

// Clear handles POST /api/cart/clear, invoked after order placement.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	bag := loadCart(c)
	bag.Clear()
	saveCart(c, bag)
	return cartJSON(c, bag)
}

package handlers

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "delphine/internal/log"
	"delphine/internal/store"
	"delphine/internal/validate"
)

const wishlistCookie = "delphine-wishlist"

type WishlistHandler struct{}

func loadWishlist(c *fiber.Ctx) *store.Wishlist {
	w := store.NewWishlist()
	raw := c.Cookies(wishlistCookie)
	if raw == "" {
		return w
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return w
	}
	_ = w.Restore(data)
	return w
}

func saveWishlist(c *fiber.Ctx, w *store.Wishlist) {
	snap, err := w.Snapshot()
	if err != nil {
		applog.Error(c, "wishlist.persist.fail", err, nil)
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     wishlistCookie,
		Value:    base64.StdEncoding.EncodeToString(snap),
		Path:     "/",
		Expires:  time.Now().Add(90 * 24 * time.Hour),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func wishlistJSON(c *fiber.Ctx, w *store.Wishlist) error {
	items := w.Items()
	if items == nil {
		items = []store.WishlistItem{}
	}
	return c.JSON(fiber.Map{"items": items, "count": w.ItemCount()})
}

// View handles GET /api/wishlist.
func (h *WishlistHandler) View(c *fiber.Ctx) error {
	return wishlistJSON(c, loadWishlist(c))
}

// Toggle handles POST /api/wishlist/toggle: present removes, absent
// adds.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	var item store.WishlistItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item"})
	}
	if _, ok := validate.ID(item.ProductID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}

	w := loadWishlist(c)
	w.ToggleItem(item)
	saveWishlist(c, w)
	return c.JSON(fiber.Map{
		"items": w.Items(), "count": w.ItemCount(), "saved": w.Contains(item.ProductID),
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "delphine/internal/log"
	"delphine/internal/services"
	"delphine/internal/validate"
)

type ShopHandler struct {
	Catalog *services.CatalogService

	ShippingFlat     float64
	FreeShippingOver float64
}

// Home renders the landing page: hero slides plus featured products.
func (h *ShopHandler) Home(c *fiber.Ctx) error {
	slides, err := h.Catalog.HeroSlides()
	if err != nil {
		applog.Error(c, "home.slides.fail", err, nil)
	}
	featured, err := h.Catalog.ListProducts(8, "")
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the shop"})
	}
	return render(c, "home", fiber.Map{"Slides": slides, "Featured": featured})
}

// Shop renders the full listing, optionally filtered by category slug.
func (h *ShopHandler) Shop(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != "" {
		if _, ok := validate.Slug(category); !ok {
			category = ""
		}
	}
	products, err := h.Catalog.ListProducts(60, category)
	if err != nil {
		applog.Error(c, "shop.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the shop"})
	}
	cats, _ := h.Catalog.ListCategories()
	return render(c, "shop", fiber.Map{
		"Products": products, "Categories": cats, "Category": category,
	})
}

// CheckoutPage renders the checkout form; the cart itself stays
// client-side and is posted as a snapshot to /api/checkout.
func (h *ShopHandler) CheckoutPage(c *fiber.Ctx) error {
	return render(c, "checkout", fiber.Map{
		"Cancelled":        c.Query("cancelled") == "true",
		"ShippingFlat":     h.ShippingFlat,
		"FreeShippingOver": h.FreeShippingOver,
	})
}

// CheckoutSuccess renders the thank-you page for ?order=<number>.
func (h *ShopHandler) CheckoutSuccess(c *fiber.Ctx) error {
	return render(c, "checkout_success", fiber.Map{"OrderNumber": c.Query("order")})
}

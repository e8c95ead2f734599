package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"delphine/internal/catalog"
	applog "delphine/internal/log"
	"delphine/internal/services"
	"delphine/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List handles GET /api/products?limit=&category=, ordered
// featured-first then newest-first.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := validate.Limit(c.Query("limit"), 50, 200)
	category := c.Query("category")
	if category != "" {
		if _, ok := validate.Slug(category); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
	}
	products, err := h.Catalog.ListProducts(limit, category)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON([]any{})
	}
	return c.JSON(products)
}

// Detail renders the product page with its color swatches and sizes.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProductBySlug(slug)
	if err != nil || p.ID == "" || !p.Active {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	variantsJSON, _ := json.Marshal(p.Variants)
	return render(c, "product", fiber.Map{
		"P":            p,
		"Colors":       catalog.Colors(p.Variants),
		"Sizes":        catalog.Sizes(p.Variants),
		"VariantsJSON": string(variantsJSON),
	})
}

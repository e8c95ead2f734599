package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"delphine/internal/domain"
	applog "delphine/internal/log"
	"delphine/internal/repos"
	"delphine/internal/validate"
)

type AdminHandler struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
	News     *repos.NewsletterRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ords, _ := h.Orders.ListLatest(10)
	return render(c, "admin_dashboard", fiber.Map{"Orders": ords})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if id == "" || domain.StatusRank(status) < 0 {
		return c.Status(400).SendString("missing id or invalid status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	prods, err := h.Products.ListAll()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin_products", fiber.Map{"Products": prods})
}

func parseProductForm(c *fiber.Ctx) (domain.Product, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return domain.Product{}, "name is required"
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return domain.Product{}, "valid price required"
	}
	compareAt, _ := strconv.ParseFloat(c.FormValue("compareAtPrice"), 64)
	if compareAt < 0 {
		compareAt = 0
	}
	stock, _ := strconv.Atoi(c.FormValue("stockQuantity"))
	if stock < 0 {
		stock = 0
	}
	return domain.Product{
		Name:           name,
		Description:    c.FormValue("description"),
		Price:          price,
		CompareAtPrice: compareAt,
		StockQuantity:  stock,
		Featured:       c.FormValue("featured") == "1",
		IsNew:          c.FormValue("isNew") == "1",
		Bestseller:     c.FormValue("bestseller") == "1",
	}, ""
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, msg := parseProductForm(c)
	if msg != "" {
		return c.Status(400).SendString(msg)
	}
	slug, ok := validate.Slug(c.FormValue("slug"))
	if !ok {
		return c.Status(400).SendString("valid slug required")
	}
	categoryID, ok := validate.ID(c.FormValue("categoryId"))
	if !ok {
		return c.Status(400).SendString("valid categoryId required")
	}
	p.ID = uuid.NewString()
	p.Slug = slug
	p.CategoryID = categoryID
	p.Active = true
	if err := h.Products.Create(p); err != nil {
		applog.Error(c, "admin.products.create.fail", err, map[string]any{"slug": slug})
		return c.Status(400).SendString("could not create product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID, "slug": slug})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	p, msg := parseProductForm(c)
	if msg != "" {
		return c.Status(400).SendString(msg)
	}
	p.ID = id
	if err := h.Products.Update(p); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not update product")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/active
func (h *AdminHandler) SetProductActive(c *fiber.Ctx) error {
	id := c.Params("id")
	active := c.FormValue("active") == "1"
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Products.SetActive(id, active); err != nil {
		applog.Error(c, "admin.products.active.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not update product")
	}
	applog.Audit(c, "admin.products.active", map[string]any{"product_id": id, "active": active})
	return c.Redirect("/admin/products")
}

// GET /admin/newsletter
func (h *AdminHandler) NewsletterPage(c *fiber.Ctx) error {
	subs, err := h.News.ListActive()
	if err != nil {
		applog.Error(c, "admin.newsletter.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load subscribers"})
	}
	return render(c, "admin_newsletter", fiber.Map{"Subscribers": subs})
}

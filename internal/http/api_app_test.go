package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"delphine/internal/config"
	"delphine/internal/http/handlers"
	"delphine/internal/repos"
	"delphine/internal/services"
)

// newAPIApp wires the JSON surface the storefront client talks to,
// backed by a fresh seeded in-memory database. The payment provider is
// left unconfigured so checkout takes the manual-payment path.
func newAPIApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{
		DBDSN:    ":memory:",
		MediaDir: "../../web/media",
		BaseURL:  "http://localhost:8080",
		Currency: "EUR",
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg, authSvc)
	api := app.Group("/api")
	api.Get("/products", deps.ProductHandler.List)
	api.Post("/checkout", deps.CheckoutHandler.Place)
	api.Post("/newsletter", deps.NewsletterHandler.Subscribe)
	api.Get("/webhooks/pok", deps.WebhookHandler.Verify)
	api.Post("/webhooks/pok", deps.WebhookHandler.Receive)
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/update", deps.CartHandler.UpdateQuantity)
	api.Post("/cart/remove", deps.CartHandler.Remove)
	api.Post("/cart/clear", deps.CartHandler.Clear)
	api.Get("/wishlist", deps.WishlistHandler.View)
	api.Post("/wishlist/toggle", deps.WishlistHandler.Toggle)

	return app, db
}

func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
	return out
}

package handlers

import (
	"delphine/internal/config"
	"delphine/internal/pok"
	"delphine/internal/repos"
	"delphine/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ShopHandler       *ShopHandler
	ProductHandler    *ProductHandler
	CartHandler       *CartHandler
	WishlistHandler   *WishlistHandler
	CheckoutHandler   *CheckoutHandler
	WebhookHandler    *WebhookHandler
	NewsletterHandler *NewsletterHandler
	AdminHandler      *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	newsRepo := repos.NewNewsletterRepo(db)
	slideRepo := repos.NewSlideRepo(db)

	pokClient := pok.NewClient(cfg.PokAPIURL, cfg.PokKeyID, cfg.PokKeySecret, cfg.PokMerchant)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, slideRepo)
	checkoutSvc := services.NewCheckoutService(orderRepo, pokClient, cfg.BaseURL, cfg.Currency)
	webhookSvc := services.NewWebhookService(orderRepo)
	newsSvc := services.NewNewsletterService(newsRepo)

	return &Deps{
		ShopHandler: &ShopHandler{
			Catalog:          catalogSvc,
			ShippingFlat:     cfg.ShippingFlat,
			FreeShippingOver: cfg.FreeShippingOver,
		},
		ProductHandler:    &ProductHandler{Catalog: catalogSvc},
		CartHandler:       &CartHandler{},
		WishlistHandler:   &WishlistHandler{},
		CheckoutHandler:   &CheckoutHandler{Checkout: checkoutSvc},
		WebhookHandler:    &WebhookHandler{Webhook: webhookSvc},
		NewsletterHandler: &NewsletterHandler{News: newsSvc},
		AdminHandler:      &AdminHandler{Orders: orderRepo, Products: prodRepo, News: newsRepo},
	}
}

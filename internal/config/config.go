package config

import (
	"log"
	"os"
	"strconv"
)

func envFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
			return f
		}
		log.Printf("[config] ignoring invalid %s=%q", key, os.Getenv(key))
	}
	return def
}

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string

	// Public base URL embedded in payment redirect/webhook callbacks.
	BaseURL string

	// POK payment provider. Empty key/secret/merchant disables hosted
	// payments and checkout falls back to the manual-payment path.
	PokAPIURL    string
	PokKeyID     string
	PokKeySecret string
	PokMerchant  string

	Currency string

	// Flat shipping rate and the subtotal above which shipping is free.
	ShippingFlat     float64
	FreeShippingOver float64
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "delphine.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./delphine.log"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}
	pokURL := os.Getenv("POK_API_URL")
	if pokURL == "" {
		pokURL = "https://api-staging.pokpay.io"
	}
	currency := os.Getenv("CURRENCY")
	if currency == "" {
		currency = "EUR"
	}
	shipFlat := envFloat("SHIPPING_FLAT", 8.99)
	freeOver := envFloat("FREE_SHIPPING_OVER", 150)

	cfg := Config{
		Port:         port,
		DBDSN:        dsn,
		MediaDir:     media,
		LogFile:      logFile,
		BaseURL:      baseURL,
		PokAPIURL:    pokURL,
		PokKeyID:     os.Getenv("POK_KEY_ID"),
		PokKeySecret: os.Getenv("POK_KEY_SECRET"),
		PokMerchant:  os.Getenv("POK_MERCHANT_ID"),
		Currency:     currency,

		ShippingFlat:     shipFlat,
		FreeShippingOver: freeOver,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s BASE_URL=%s POK=%s (merchant=%q)",
		cfg.Port, cfg.DBDSN, cfg.BaseURL, cfg.PokAPIURL, cfg.PokMerchant)
	return cfg
}

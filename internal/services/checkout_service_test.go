package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"delphine/internal/pok"
	"delphine/internal/repos"
	"delphine/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func checkoutInput() services.CheckoutInput {
	return services.CheckoutInput{
		Items: []services.CheckoutItem{
			{ProductID: "p-riviera", VariantID: "v-riviera-m-black", Name: "Riviera Bikini Set", Quantity: 2, Price: 89},
			{ProductID: "p-aegean", VariantID: "v-aegean-m-ivory", Name: "Aegean One Piece", Quantity: 1, Price: 119},
		},
		Shipping: services.ShippingInput{
			FirstName: "Ada", LastName: "Laurent", Email: "ada@example.com",
			Address: "12 Rue de la Mer", City: "Nice", PostalCode: "06000", Country: "FR",
		},
		Subtotal:     297,
		ShippingCost: 8.99,
		Total:        305.99,
	}
}

func fakePok(t *testing.T, handler http.HandlerFunc) *pok.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return pok.NewClient(srv.URL, "kid", "ksec", "m-1")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	svc := services.NewCheckoutService(orders, nil, "http://localhost:8080", "EUR")

	_, err := svc.PlaceOrder(context.Background(), services.CheckoutInput{})
	if err != services.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("empty checkout must create no order rows, got %d", n)
	}
}

func TestPlaceOrderManualFallbackWhenUnconfigured(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	// no credentials -> manual payment path
	svc := services.NewCheckoutService(orders, pok.NewClient("https://api-staging.pokpay.io", "", "", ""), "http://localhost:8080", "EUR")

	res, err := svc.PlaceOrder(context.Background(), checkoutInput())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Manual || res.PaymentURL != "" {
		t.Fatalf("want manual fallback, got %+v", res)
	}

	o, err := orders.ByOrderNumber(res.OrderNumber)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != "PENDING" || o.PaymentStatus != "PENDING" {
		t.Fatalf("new order must be PENDING/PENDING, got %s/%s", o.Status, o.PaymentStatus)
	}
	if o.ShippingAddressID == "" || o.ShippingAddressID != o.BillingAddressID {
		t.Fatalf("shipping and billing must share one address, got %q/%q", o.ShippingAddressID, o.BillingAddressID)
	}
	items, err := orders.Items(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 order items, got %d", len(items))
	}
}

func TestPlaceOrderHostedPayment(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)

	var wire pok.OrderRequest
	client := fakePok(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/sdk/login":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"token": "tok"}})
		case "/merchants/m-1/sdk-orders":
			_ = json.NewDecoder(r.Body).Decode(&wire)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{
				"id": "pok-55", "paymentUrl": "https://pay.pokpay.io/s/pok-55",
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	svc := services.NewCheckoutService(orders, client, "https://delphine.example", "EUR")
	res, err := svc.PlaceOrder(context.Background(), checkoutInput())
	if err != nil {
		t.Fatal(err)
	}
	if res.Manual || res.PaymentURL != "https://pay.pokpay.io/s/pok-55" {
		t.Fatalf("want hosted payment redirect, got %+v", res)
	}

	// amount on the wire is integer cents of the decimal total
	if wire.Amount != 30599 {
		t.Fatalf("want 30599 cents, got %d", wire.Amount)
	}
	if wire.ExternalID != res.OrderNumber {
		t.Fatalf("externalId must be the order number")
	}
	if wire.WebhookURL != "https://delphine.example/api/webhooks/pok" {
		t.Fatalf("bad webhook url %q", wire.WebhookURL)
	}

	o, err := orders.ByOrderNumber(res.OrderNumber)
	if err != nil {
		t.Fatal(err)
	}
	if o.PokOrderID != "pok-55" || o.PokPaymentURL == "" {
		t.Fatalf("payment session not persisted: %+v", o)
	}
}

func TestPlaceOrderProviderFailureKeepsOrder(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)

	client := fakePok(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := services.NewCheckoutService(orders, client, "http://localhost:8080", "EUR")
	res, err := svc.PlaceOrder(context.Background(), checkoutInput())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Manual {
		t.Fatalf("provider failure should degrade to manual payment, got %+v", res)
	}
	if _, err := orders.ByOrderNumber(res.OrderNumber); err != nil {
		t.Fatalf("order must survive provider failure: %v", err)
	}
}

func TestOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^DLP-[0-9A-Z]+-[0-9A-Z]{4}$`)
	for i := 0; i < 20; i++ {
		n := services.GenerateOrderNumber()
		if !re.MatchString(n) {
			t.Fatalf("bad order number %q", n)
		}
	}
}

func TestCreateWithItemsRollsBack(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	svc := services.NewCheckoutService(orders, nil, "http://localhost:8080", "EUR")

	in := checkoutInput()
	// zero quantity violates the order_items CHECK, failing the tx
	// after the address and order header were already inserted
	in.Items[1].Quantity = 0

	if _, err := svc.PlaceOrder(context.Background(), in); err == nil {
		t.Fatal("want error from failed item insert")
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("failed checkout must not leave an order row, got %d", n)
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM addresses`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("failed checkout must not leave an orphaned address, got %d", n)
	}
}

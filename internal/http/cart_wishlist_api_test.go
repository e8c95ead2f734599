package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const rivieraLine = `{"productId": "p-riviera", "variantId": "v-riviera-m-black", "productName": "Riviera Bikini Set", "productSlug": "riviera-bikini-set", "size": "M", "color": "Black", "price": 89, "quantity": 1}`

// carryCookies forwards every cookie from a response onto the next
// request, the way a browser keeps the bag across calls.
func carryCookies(req *http.Request, resp *http.Response) {
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
}

func postCart(t *testing.T, app *fiber.App, path, body string, prev *http.Response) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if prev != nil {
		carryCookies(req, prev)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestCartCookieRoundTrip(t *testing.T) {
	app, _ := newAPIApp(t)

	// First add
	resp := postCart(t, app, "/api/cart", rivieraLine, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("add: expected 200, got %d", resp.StatusCode)
	}
	hasCookie := false
	for _, ck := range resp.Cookies() {
		if ck.Name == "delphine-cart" && ck.Value != "" {
			hasCookie = true
		}
	}
	if !hasCookie {
		t.Fatal("add must set the delphine-cart cookie")
	}
	out := readJSON(t, resp)
	if out["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", out["count"])
	}

	// Same variant again merges into quantity 2
	resp2 := postCart(t, app, "/api/cart", rivieraLine, resp)
	out2 := readJSON(t, resp2)
	if out2["count"] != float64(2) {
		t.Fatalf("expected merged count 2, got %v", out2["count"])
	}
	if out2["subtotal"] != float64(178) {
		t.Fatalf("expected subtotal 178, got %v", out2["subtotal"])
	}
	if out2["isOpen"] != true {
		t.Fatalf("adding should open the drawer, got %v", out2["isOpen"])
	}

	// Bump the line to 3
	resp3 := postCart(t, app, "/api/cart/update", `{"variantId": "v-riviera-m-black", "quantity": 3}`, resp2)
	out3 := readJSON(t, resp3)
	if out3["count"] != float64(3) {
		t.Fatalf("expected count 3, got %v", out3["count"])
	}

	// Quantity zero removes the line entirely
	resp4 := postCart(t, app, "/api/cart/update", `{"variantId": "v-riviera-m-black", "quantity": 0}`, resp3)
	out4 := readJSON(t, resp4)
	if out4["count"] != float64(0) {
		t.Fatalf("expected empty bag, got %v", out4["count"])
	}
}

func TestCartSurvivesCorruptCookie(t *testing.T) {
	app, _ := newAPIApp(t)

	req := httptest.NewRequest("GET", "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "delphine-cart", Value: "%%%not-base64%%%"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for corrupt cookie, got %d", resp.StatusCode)
	}
	out := readJSON(t, resp)
	if out["count"] != float64(0) {
		t.Fatalf("corrupt cookie should yield an empty bag, got %v", out)
	}
}

func TestCartAddRequiresIdentity(t *testing.T) {
	app, _ := newAPIApp(t)

	resp := postCart(t, app, "/api/cart", `{"productName": "Mystery"}`, nil)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for missing ids, got %d", resp.StatusCode)
	}
}

func TestWishlistToggle(t *testing.T) {
	app, _ := newAPIApp(t)
	line := `{"productId": "p-riviera", "productName": "Riviera Bikini Set", "productSlug": "riviera-bikini-set", "price": 89}`

	resp := postCart(t, app, "/api/wishlist/toggle", line, nil)
	out := readJSON(t, resp)
	if out["saved"] != true || out["count"] != float64(1) {
		t.Fatalf("first toggle should save, got %v", out)
	}

	resp2 := postCart(t, app, "/api/wishlist/toggle", line, resp)
	out2 := readJSON(t, resp2)
	if out2["saved"] != false || out2["count"] != float64(0) {
		t.Fatalf("second toggle should remove, got %v", out2)
	}
}

package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewsletterSubscribeAndDuplicate(t *testing.T) {
	app, db := newAPIApp(t)

	body := `{"email": "Maya@Example.com"}`
	req := httptest.NewRequest("POST", "/api/newsletter", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if out := readJSON(t, resp); out["message"] != "Subscribed!" {
		t.Fatalf("unexpected body: %v", out)
	}

	// Stored lowercased
	var email string
	if err := db.Get(&email, `SELECT email FROM newsletter_subscribers WHERE email = ?`, "maya@example.com"); err != nil {
		t.Fatalf("subscriber row missing: %v", err)
	}

	// Second subscribe, any casing, is a conflict
	req2 := httptest.NewRequest("POST", "/api/newsletter", strings.NewReader(`{"email": "MAYA@example.com"}`))
	req2.Header.Set("Content-Type", "application/json")
	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != 400 {
		t.Fatalf("expected 400 for duplicate, got %d", resp2.StatusCode)
	}
	if out := readJSON(t, resp2); out["error"] != "Already subscribed" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestNewsletterRejectsBadEmail(t *testing.T) {
	app, _ := newAPIApp(t)

	for _, body := range []string{`{"email": ""}`, `{"email": "nope"}`, `not json`} {
		req := httptest.NewRequest("POST", "/api/newsletter", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("body %q: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

package services_test

import (
	"context"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"delphine/internal/repos"
	"delphine/internal/services"
)

func placeTestOrder(t *testing.T, orders *repos.OrderRepo) string {
	t.Helper()
	svc := services.NewCheckoutService(orders, nil, "http://localhost:8080", "EUR")
	res, err := svc.PlaceOrder(context.Background(), checkoutInput())
	if err != nil {
		t.Fatal(err)
	}
	return res.OrderNumber
}

func TestWebhookCompletedConfirmsOrder(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	num := placeTestOrder(t, orders)

	svc := services.NewWebhookService(orders)
	out, err := svc.Apply(num, "", "completed")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Applied || out.PaymentStatus != "PAID" || out.Status != "CONFIRMED" {
		t.Fatalf("want applied PAID/CONFIRMED, got %+v", out)
	}

	o, err := orders.ByOrderNumber(num)
	if err != nil {
		t.Fatal(err)
	}
	if o.PaymentStatus != "PAID" || o.Status != "CONFIRMED" {
		t.Fatalf("order not updated: %s/%s", o.PaymentStatus, o.Status)
	}
}

func TestWebhookUnknownOrder(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)

	svc := services.NewWebhookService(orders)
	if _, err := svc.Apply("DLP-NOPE-0000", "", "completed"); err != services.ErrOrderNotFound {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders WHERE payment_status != 'PENDING'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("unknown order must mutate nothing")
	}
}

func TestWebhookMappingTable(t *testing.T) {
	cases := []struct {
		status, paymentStatus string
		wantPayment, wantStat string
	}{
		{"", "completed", "PAID", "CONFIRMED"},
		{"", "paid", "PAID", "CONFIRMED"},
		{"completed", "", "PAID", "CONFIRMED"},
		{"", "failed", "FAILED", "PENDING"},
		{"", "refunded", "REFUNDED", "PENDING"},
		{"", "cancelled", "FAILED", "CANCELLED"},
		{"", "CANCELLED", "FAILED", "CANCELLED"}, // case-insensitive
		{"", "somethingelse", "PENDING", "PENDING"},
	}
	for _, tc := range cases {
		db := memdb(t)
		orders := repos.NewOrderRepo(db)
		num := placeTestOrder(t, orders)

		svc := services.NewWebhookService(orders)
		if _, err := svc.Apply(num, tc.status, tc.paymentStatus); err != nil {
			t.Fatal(err)
		}
		o, err := orders.ByOrderNumber(num)
		if err != nil {
			t.Fatal(err)
		}
		if o.PaymentStatus != tc.wantPayment || o.Status != tc.wantStat {
			t.Fatalf("(%q,%q): got %s/%s, want %s/%s",
				tc.status, tc.paymentStatus, o.PaymentStatus, o.Status, tc.wantPayment, tc.wantStat)
		}
	}
}

func TestWebhookIdempotentRepeat(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	num := placeTestOrder(t, orders)
	svc := services.NewWebhookService(orders)

	if _, err := svc.Apply(num, "", "completed"); err != nil {
		t.Fatal(err)
	}
	out, err := svc.Apply(num, "", "completed")
	if err != nil {
		t.Fatal(err)
	}
	if out.Applied {
		t.Fatal("identical repeat delivery should be a no-op")
	}
}

// A stale "cancelled" arriving after payment settled must not clobber
// the paid state or roll the order backward.
func TestWebhookOutOfOrderDelivery(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	num := placeTestOrder(t, orders)
	svc := services.NewWebhookService(orders)

	if _, err := svc.Apply(num, "", "completed"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Apply(num, "", "failed"); err != nil {
		t.Fatal(err)
	}

	o, err := orders.ByOrderNumber(num)
	if err != nil {
		t.Fatal(err)
	}
	if o.PaymentStatus != "PAID" || o.Status != "CONFIRMED" {
		t.Fatalf("late failure must not downgrade settled order, got %s/%s", o.PaymentStatus, o.Status)
	}

	// refund after payment is a legal forward move for payment status
	if _, err := svc.Apply(num, "", "refunded"); err != nil {
		t.Fatal(err)
	}
	o, _ = orders.ByOrderNumber(num)
	if o.PaymentStatus != "REFUNDED" || o.Status != "CONFIRMED" {
		t.Fatalf("refund should apply, got %s/%s", o.PaymentStatus, o.Status)
	}
}

// An admin-advanced order must not move backward when the payment
// confirmation finally lands.
func TestWebhookNoBackwardTransition(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	num := placeTestOrder(t, orders)
	svc := services.NewWebhookService(orders)

	o, err := orders.ByOrderNumber(num)
	if err != nil {
		t.Fatal(err)
	}
	if err := orders.UpdateStatus(o.ID, "SHIPPED"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Apply(num, "", "completed"); err != nil {
		t.Fatal(err)
	}
	o, _ = orders.ByOrderNumber(num)
	if o.Status != "SHIPPED" {
		t.Fatalf("confirmation must not roll back SHIPPED, got %s", o.Status)
	}
	if o.PaymentStatus != "PAID" {
		t.Fatalf("payment should still settle, got %s", o.PaymentStatus)
	}
}

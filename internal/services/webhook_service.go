package services

import (
	"database/sql"
	"errors"
	"strings"

	"delphine/internal/domain"
	"delphine/internal/repos"
)

var ErrOrderNotFound = errors.New("order not found")

type WebhookService struct {
	Orders *repos.OrderRepo
}

func NewWebhookService(orders *repos.OrderRepo) *WebhookService {
	return &WebhookService{Orders: orders}
}

// Outcome is what a webhook delivery did to the order.
type Outcome struct {
	OrderID       string
	OrderNumber   string
	PaymentStatus string
	Status        string
	Applied       bool
}

// Apply maps the provider vocabulary onto our enums and updates the
// order found by its order number (the provider's externalId).
//
//	completed/paid -> PAID / CONFIRMED
//	failed         -> FAILED / unchanged
//	refunded       -> REFUNDED / unchanged
//	cancelled      -> FAILED / CANCELLED
//	anything else  -> unchanged
//
// The order status only moves forward on the fulfillment lattice, so a
// late or duplicated delivery cannot roll a shipped order back to
// CONFIRMED. Repeated identical payloads are no-ops.
func (s *WebhookService) Apply(externalID, status, paymentStatus string) (*Outcome, error) {
	order, err := s.Orders.ByOrderNumber(externalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	newPayment := order.PaymentStatus
	newStatus := order.Status

	ps := strings.ToLower(strings.TrimSpace(paymentStatus))
	st := strings.ToLower(strings.TrimSpace(status))

	switch {
	case ps == "completed" || ps == "paid" || st == "completed":
		newPayment = domain.PaymentPaid
		newStatus = domain.OrderConfirmed
	case ps == "failed" || st == "failed":
		newPayment = domain.PaymentFailed
	case ps == "refunded" || st == "refunded":
		newPayment = domain.PaymentRefunded
	case ps == "cancelled" || st == "cancelled":
		newPayment = domain.PaymentFailed
		newStatus = domain.OrderCancelled
	}

	// Forward-only guard: never move the order backward, and never
	// downgrade a settled payment (PAID may still become REFUNDED).
	if domain.StatusRank(newStatus) <= domain.StatusRank(order.Status) {
		newStatus = order.Status
	}
	if settled(order.PaymentStatus) && newPayment == domain.PaymentFailed {
		newPayment = order.PaymentStatus
	}

	out := &Outcome{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		PaymentStatus: newPayment,
		Status:        newStatus,
	}
	if newPayment == order.PaymentStatus && newStatus == order.Status {
		return out, nil
	}

	if err := s.Orders.ApplyPaymentOutcome(order.ID, newPayment, newStatus); err != nil {
		return nil, err
	}
	out.Applied = true
	return out, nil
}

func settled(paymentStatus string) bool {
	return paymentStatus == domain.PaymentPaid || paymentStatus == domain.PaymentRefunded
}

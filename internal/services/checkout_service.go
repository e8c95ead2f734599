package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"delphine/internal/domain"
	"delphine/internal/pok"
	"delphine/internal/repos"
)

var (
	ErrEmptyCart   = errors.New("no items in cart")
	ErrOrderNumber = errors.New("could not allocate a unique order number")
)

// CheckoutItem is one line of the cart snapshot posted by the client.
type CheckoutItem struct {
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type ShippingInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type CheckoutInput struct {
	Items        []CheckoutItem `json:"items"`
	Shipping     ShippingInput  `json:"shipping"`
	Subtotal     float64        `json:"subtotal"`
	ShippingCost float64        `json:"shippingCost"`
	Total        float64        `json:"total"`
}

// CheckoutResult reports either a hosted-payment redirect or the
// manual-payment fallback. The order exists in both cases.
type CheckoutResult struct {
	OrderID     string
	OrderNumber string
	PaymentURL  string
	Manual      bool
}

type CheckoutService struct {
	Orders   *repos.OrderRepo
	Pok      *pok.Client
	BaseURL  string
	Currency string
}

func NewCheckoutService(orders *repos.OrderRepo, pc *pok.Client, baseURL, currency string) *CheckoutService {
	return &CheckoutService{Orders: orders, Pok: pc, BaseURL: baseURL, Currency: currency}
}

// PlaceOrder persists the order (address + header + items in one
// transaction) and then tries to open a hosted payment session.
// Provider failures never lose the order: they fall back to the
// manual-payment path.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	orderNumber, err := s.uniqueOrderNumber()
	if err != nil {
		return nil, err
	}

	addr := domain.Address{
		ID:         uuid.NewString(),
		FirstName:  in.Shipping.FirstName,
		LastName:   in.Shipping.LastName,
		Email:      in.Shipping.Email,
		Phone:      in.Shipping.Phone,
		Address1:   in.Shipping.Address,
		City:       in.Shipping.City,
		PostalCode: in.Shipping.PostalCode,
		Country:    in.Shipping.Country,
	}

	order := domain.Order{
		ID:                uuid.NewString(),
		OrderNumber:       orderNumber,
		Status:            domain.OrderPending,
		PaymentStatus:     domain.PaymentPending,
		PaymentMethod:     "POK",
		Subtotal:          in.Subtotal,
		ShippingCost:      in.ShippingCost,
		Tax:               0,
		Total:             in.Total,
		Currency:          s.Currency,
		ShippingAddressID: addr.ID,
		BillingAddressID:  addr.ID,
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if err := s.Orders.CreateWithItems(addr, order, items); err != nil {
		return nil, err
	}

	res := &CheckoutResult{OrderID: order.ID, OrderNumber: orderNumber, Manual: true}

	if s.Pok == nil || !s.Pok.Configured() {
		return res, nil
	}

	token, err := s.Pok.Login(ctx)
	if err != nil {
		log.Printf("[checkout] pok auth failed for %s: %v", orderNumber, err)
		return res, nil
	}

	lines := make([]pok.ProductLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, pok.ProductLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: pok.Cents(it.Price),
		})
	}
	sess, err := s.Pok.CreateOrder(ctx, token, pok.OrderRequest{
		ExternalID:  orderNumber,
		Amount:      pok.Cents(in.Total),
		Currency:    s.Currency,
		Products:    lines,
		RedirectURL: fmt.Sprintf("%s/checkout/success?order=%s", s.BaseURL, orderNumber),
		CancelURL:   s.BaseURL + "/checkout?cancelled=true",
		WebhookURL:  s.BaseURL + "/api/webhooks/pok",
	})
	if err != nil {
		log.Printf("[checkout] pok order failed for %s: %v", orderNumber, err)
		return res, nil
	}

	if err := s.Orders.SetPaymentSession(order.ID, sess.ID, sess.PaymentURL); err != nil {
		log.Printf("[checkout] could not persist payment session for %s: %v", orderNumber, err)
		return res, nil
	}
	if sess.PaymentURL != "" {
		res.PaymentURL = sess.PaymentURL
		res.Manual = false
	}
	return res, nil
}

// uniqueOrderNumber allocates DLP-<base36 ts>-<4 base36 chars>,
// retrying against the uniqueness constraint instead of trusting the
// random suffix alone.
func (s *CheckoutService) uniqueOrderNumber() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		n := GenerateOrderNumber()
		exists, err := s.Orders.OrderNumberExists(n)
		if err != nil {
			return "", err
		}
		if !exists {
			return n, nil
		}
	}
	return "", ErrOrderNumber
}

// GenerateOrderNumber builds the customer-facing order reference:
// DLP-<millisecond timestamp base36>-<4 random base36 chars>.
func GenerateOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 4)
	for i := range suffix {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		suffix[i] = alphabet[n.Int64()]
	}
	return "DLP-" + ts + "-" + string(suffix)
}

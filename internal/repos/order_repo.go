package repos

import (
	"delphine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Admin list summary
type OrderSummary struct {
	ID            string  `db:"id"`
	OrderNumber   string  `db:"order_number"`
	CustomerName  string  `db:"customer_name"`
	CustomerEmail string  `db:"customer_email"`
	Total         float64 `db:"total"`
	Status        string  `db:"status"`
	PaymentStatus string  `db:"payment_status"`
	CreatedAt     string  `db:"created_at"`
}

// CreateWithItems persists the address, the order header and every
// line item inside a single transaction. Either the whole order lands
// or nothing does; a failed item insert cannot leave an orphaned
// address behind.
func (r *OrderRepo) CreateWithItems(addr domain.Address, o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO addresses(id, first_name, last_name, email, phone, address1, city, postal_code, country, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, addr.ID, addr.FirstName, addr.LastName, addr.Email, addr.Phone, addr.Address1, addr.City, addr.PostalCode, addr.Country); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, order_number, status, payment_status, payment_method,
	     subtotal, shipping_cost, tax, total, currency,
	     shipping_address_id, billing_address_id, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.OrderNumber, o.Status, o.PaymentStatus, o.PaymentMethod,
		o.Subtotal, o.ShippingCost, o.Tax, o.Total, o.Currency,
		o.ShippingAddressID, o.BillingAddressID); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, variant_id, quantity, price)
		  VALUES(?,?,?,?,?)
		`, o.ID, it.ProductID, it.VariantID, it.Quantity, it.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) ByOrderNumber(orderNumber string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, order_number, status, payment_status, payment_method,
	         subtotal, shipping_cost, tax, total, currency,
	         shipping_address_id, billing_address_id,
	         pok_order_id, pok_payment_url,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM orders WHERE order_number = ?
	`, orderNumber)
	return o, err
}

func (r *OrderRepo) OrderNumberExists(orderNumber string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE order_number = ?`, orderNumber); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := r.db.Select(&out, `
	  SELECT order_id, product_id, variant_id, quantity, price
	  FROM order_items WHERE order_id = ?
	`, orderID)
	return out, err
}

// SetPaymentSession records the provider session on the order after a
// hosted-payment session was opened.
func (r *OrderRepo) SetPaymentSession(orderID, pokOrderID, paymentURL string) error {
	_, err := r.db.Exec(`
	  UPDATE orders SET pok_order_id=?, pok_payment_url=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, pokOrderID, paymentURL, orderID)
	return err
}

// ApplyPaymentOutcome writes the mapped webhook result.
func (r *OrderRepo) ApplyPaymentOutcome(orderID, paymentStatus, status string) error {
	_, err := r.db.Exec(`
	  UPDATE orders SET payment_status=?, status=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, paymentStatus, status, orderID)
	return err
}

// ---------- Admin ----------

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
	  SELECT o.id, o.order_number,
	         (a.first_name || ' ' || a.last_name) AS customer_name,
	         a.email AS customer_email,
	         o.total, o.status, o.payment_status, o.created_at
	  FROM orders o
	  JOIN addresses a ON a.id = o.shipping_address_id
	  ORDER BY datetime(o.created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	return err
}

package domain

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
	Image       string `db:"image" json:"image"`
	CreatedAt   string `db:"created_at" json:"-"`
	UpdatedAt   string `db:"updated_at" json:"-"`
}

type Product struct {
	ID             string  `db:"id" json:"id"`
	CategoryID     string  `db:"category_id" json:"categoryId"`
	Slug           string  `db:"slug" json:"slug"`
	Name           string  `db:"name" json:"name"`
	Description    string  `db:"description" json:"description"`
	Price          float64 `db:"price" json:"price"`
	CompareAtPrice float64 `db:"compare_at_price" json:"compareAtPrice,omitempty"`
	Active         bool    `db:"active" json:"isActive"`
	Featured       bool    `db:"featured" json:"featured"`
	IsNew          bool    `db:"is_new" json:"isNew"`
	Bestseller     bool    `db:"bestseller" json:"bestseller"`
	StockQuantity  int     `db:"stock_quantity" json:"stockQuantity"`
	CreatedAt      string  `db:"created_at" json:"-"`
	UpdatedAt      string  `db:"updated_at" json:"-"`

	Images   []ProductImage   `db:"-" json:"images,omitempty"`
	Variants []ProductVariant `db:"-" json:"variants,omitempty"`
	Category *Category        `db:"-" json:"category,omitempty"`
}

type ProductImage struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	URL       string `db:"url" json:"url"`
	Alt       string `db:"alt" json:"alt"`
	Position  int    `db:"position" json:"position"`
}

// ProductVariant is one purchasable (size, color) combination.
// The tuple (product_id, size, color) is unique; a variant at zero
// stock stays in place so past order lines keep a valid reference.
type ProductVariant struct {
	ID            string  `db:"id" json:"id"`
	ProductID     string  `db:"product_id" json:"productId"`
	Size          string  `db:"size" json:"size"`
	Color         string  `db:"color" json:"color"`
	ColorHex      string  `db:"color_hex" json:"colorHex"`
	SKU           string  `db:"sku" json:"sku,omitempty"`
	Price         float64 `db:"price" json:"price,omitempty"` // 0 = inherit product price
	StockQuantity int     `db:"stock_quantity" json:"stockQuantity"`
}

type Address struct {
	ID         string `db:"id" json:"id"`
	FirstName  string `db:"first_name" json:"firstName"`
	LastName   string `db:"last_name" json:"lastName"`
	Email      string `db:"email" json:"email"`
	Phone      string `db:"phone" json:"phone,omitempty"`
	Address1   string `db:"address1" json:"address1"`
	City       string `db:"city" json:"city"`
	PostalCode string `db:"postal_code" json:"postalCode"`
	Country    string `db:"country" json:"country"`
	CreatedAt  string `db:"created_at" json:"-"`
}

// Order statuses. Terminal: DELIVERED, CANCELLED.
const (
	OrderPending    = "PENDING"
	OrderConfirmed  = "CONFIRMED"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

// Payment statuses. REFUNDED may follow PAID.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// StatusRank places order statuses on the fulfillment lattice so the
// webhook handler can refuse backward transitions on out-of-order
// deliveries. CANCELLED ranks above everything: once cancelled, stay
// cancelled.
func StatusRank(status string) int {
	switch status {
	case OrderPending:
		return 0
	case OrderConfirmed:
		return 1
	case OrderProcessing:
		return 2
	case OrderShipped:
		return 3
	case OrderDelivered:
		return 4
	case OrderCancelled:
		return 5
	default:
		return -1
	}
}

type Order struct {
	ID                string  `db:"id" json:"id"`
	OrderNumber       string  `db:"order_number" json:"orderNumber"`
	Status            string  `db:"status" json:"status"`
	PaymentStatus     string  `db:"payment_status" json:"paymentStatus"`
	PaymentMethod     string  `db:"payment_method" json:"paymentMethod"`
	Subtotal          float64 `db:"subtotal" json:"subtotal"`
	ShippingCost      float64 `db:"shipping_cost" json:"shippingCost"`
	Tax               float64 `db:"tax" json:"tax"`
	Total             float64 `db:"total" json:"total"`
	Currency          string  `db:"currency" json:"currency"`
	ShippingAddressID string  `db:"shipping_address_id" json:"shippingAddressId"`
	BillingAddressID  string  `db:"billing_address_id" json:"billingAddressId"`
	PokOrderID        string  `db:"pok_order_id" json:"pokOrderId,omitempty"`
	PokPaymentURL     string  `db:"pok_payment_url" json:"pokPaymentUrl,omitempty"`
	CreatedAt         string  `db:"created_at" json:"createdAt"`
	UpdatedAt         string  `db:"updated_at" json:"-"`
}

// OrderItem captures price at purchase time; it is never recomputed
// from the live product or variant.
type OrderItem struct {
	OrderID   string  `db:"order_id" json:"orderId"`
	ProductID string  `db:"product_id" json:"productId"`
	VariantID string  `db:"variant_id" json:"variantId,omitempty"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}

type NewsletterSubscriber struct {
	ID             string `db:"id" json:"id"`
	Email          string `db:"email" json:"email"`
	Active         bool   `db:"active" json:"isActive"`
	SubscribedAt   string `db:"subscribed_at" json:"subscribedAt"`
	UnsubscribedAt string `db:"unsubscribed_at" json:"-"`
}

type HeroSlide struct {
	ID       string `db:"id" json:"id"`
	Title    string `db:"title" json:"title"`
	Subtitle string `db:"subtitle" json:"subtitle"`
	Image    string `db:"image" json:"image"`
	CTALabel string `db:"cta_label" json:"ctaLabel"`
	CTAHref  string `db:"cta_href" json:"ctaHref"`
	Position int    `db:"position" json:"position"`
	Active   bool   `db:"active" json:"isActive"`
}

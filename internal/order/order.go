package order

// DeliveryMethod is how the shopper receives the order.
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

// StatusPendingPayment is the initial status of every order; payment
// happens out of band by bank transfer.
const StatusPendingPayment = "pending_payment"

// Order is the persisted header record describing a placed order,
// excluding its individual items. The id is assigned by the database
// and joins the items and the confirmation lookup.
type Order struct {
	ID              int            `json:"id"`
	CustomerName    string         `json:"customerName"`
	CustomerPhone   string         `json:"customerPhone"`
	DeliveryMethod  DeliveryMethod `json:"deliveryMethod"`
	ShippingAddress *string        `json:"shippingAddress,omitempty"`
	TotalAmount     float64        `json:"totalAmount"`
	Status          string         `json:"status"`
	CreatedAt       string         `json:"createdAt"`
}

// ProductDetails is the denormalized per-item snapshot stored alongside
// each order item, so display and audit never need a join back to
// mutable catalog rows.
type ProductDetails struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color"`
	Size  string `json:"size"`
}

// Item is one order line, written once after the header exists and
// never mutated. PriceAtPurchase is copied at submission time and is
// deliberately independent of later price changes.
type Item struct {
	ID              int            `json:"id"`
	OrderID         int            `json:"orderId"`
	VariantID       int            `json:"variantId"`
	Quantity        int            `json:"quantity"`
	PriceAtPurchase float64        `json:"priceAtPurchase"`
	ProductDetails  ProductDetails `json:"productDetails"`
}

package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zapaeleg/shoe-shop-backend/internal/cart"
	"github.com/zapaeleg/shoe-shop-backend/internal/notify"
	"github.com/zapaeleg/shoe-shop-backend/internal/order"
)

// State is the submission pipeline's per-session state.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrMissingName           = errors.New("name is required")
	ErrMissingPhone          = errors.New("phone is required")
	ErrMissingAddress        = errors.New("address is required for delivery")
	ErrInvalidDeliveryMethod = errors.New("invalid delivery method")
	// ErrSubmissionInFlight rejects a second submission while one is
	// already pending for the same session; repeated clicks must not
	// create duplicate orders.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// IsValidationError reports whether err was raised by the local
// validation step, before any persistence call.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingPhone) ||
		errors.Is(err, ErrMissingAddress) ||
		errors.Is(err, ErrInvalidDeliveryMethod)
}

// Fulfillment is the shopper-entered checkout form: ephemeral, lives
// only for the duration of one submission.
type Fulfillment struct {
	Name           string
	Phone          string
	DeliveryMethod order.DeliveryMethod
	Address        string
}

// Pipeline converts a cart snapshot plus a fulfillment selection into
// durable order records, exactly once per shopper-initiated submission.
// It never retries on its own; a retry is always a fresh submission
// against a cart that failures leave untouched.
type Pipeline struct {
	repo order.Repository
	sink notify.Sink
	log  *zap.Logger
	fee  float64

	mu     sync.Mutex
	states map[string]State
}

func NewPipeline(repo order.Repository, sink notify.Sink, log *zap.Logger, deliveryFee float64) *Pipeline {
	return &Pipeline{
		repo:   repo,
		sink:   sink,
		log:    log,
		fee:    deliveryFee,
		states: make(map[string]State),
	}
}

// State returns the pipeline state for one session.
func (p *Pipeline) State(sessionID string) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.states[sessionID]
}

func (p *Pipeline) setState(sessionID string, s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[sessionID] = s
}

// begin moves a session into Validating unless a submission is already
// in flight for it. Validating counts as in flight: handlers run
// concurrently, and two requests racing past this gate would both
// submit.
func (p *Pipeline) begin(sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.states[sessionID] {
	case StateValidating, StateSubmitting:
		return ErrSubmissionInFlight
	}
	p.states[sessionID] = StateValidating
	return nil
}

func validate(items []cart.Item, f Fulfillment) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	if f.Name == "" {
		return ErrMissingName
	}
	if f.Phone == "" {
		return ErrMissingPhone
	}
	if !f.DeliveryMethod.Valid() {
		return ErrInvalidDeliveryMethod
	}
	if f.DeliveryMethod == order.DeliveryDelivery && f.Address == "" {
		return ErrMissingAddress
	}
	return nil
}

// Submit runs the full pipeline for one session. The cart is read once
// up front; totals, order items and purchase prices all come from that
// single snapshot so the submitted state matches what the shopper saw.
// On success the cart is cleared and the new order id returned; on any
// failure the cart is left intact for retry.
func (p *Pipeline) Submit(ctx context.Context, sessionID string, store *cart.Store, f Fulfillment) (int, error) {
	if err := p.begin(sessionID); err != nil {
		return 0, err
	}

	items := store.Items()
	if err := validate(items, f); err != nil {
		// validation failures have no side effects; form stays editable
		p.setState(sessionID, StateIdle)
		p.sink.Publish(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return 0, err
	}

	total := 0.0
	for _, it := range items {
		total += it.Variant.Price * float64(it.Quantity)
	}
	if f.DeliveryMethod == order.DeliveryDelivery {
		total += p.fee
	}

	var address *string
	if f.DeliveryMethod == order.DeliveryDelivery {
		address = &f.Address
	}
	header := order.Order{
		CustomerName:    f.Name,
		CustomerPhone:   f.Phone,
		DeliveryMethod:  f.DeliveryMethod,
		ShippingAddress: address,
		TotalAmount:     total,
		Status:          order.StatusPendingPayment,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	p.setState(sessionID, StateSubmitting)

	orderID, err := p.repo.CreateOrder(ctx, header)
	if err != nil {
		p.fail(sessionID, err)
		return 0, err
	}

	orderItems := make([]order.Item, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, order.Item{
			OrderID:         orderID,
			VariantID:       it.Variant.ID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.Variant.Price,
			ProductDetails: order.ProductDetails{
				Brand: it.Product.BrandName,
				Model: it.Product.Model,
				Color: it.Variant.Color,
				Size:  it.Variant.Size,
			},
		})
	}

	if err := p.repo.CreateOrderItems(ctx, orderItems); err != nil {
		// the header is already durable; compensate so a failed
		// submission does not leave a pending order with no items
		if delErr := p.repo.DeleteOrder(ctx, orderID); delErr != nil {
			p.log.Error("orphaned order header: items write and compensation both failed",
				zap.Int("order_id", orderID),
				zap.NamedError("items_error", err),
				zap.NamedError("delete_error", delErr))
		}
		p.fail(sessionID, err)
		return 0, err
	}

	store.Clear()
	p.setState(sessionID, StateSucceeded)
	p.sink.Publish(notify.Notification{Level: notify.LevelSuccess, Message: "Order placed successfully!"})
	p.log.Info("order submitted",
		zap.String("session_id", sessionID),
		zap.Int("order_id", orderID),
		zap.Float64("total", total),
		zap.String("delivery_method", string(f.DeliveryMethod)))
	return orderID, nil
}

func (p *Pipeline) fail(sessionID string, err error) {
	p.setState(sessionID, StateFailed)
	p.sink.Publish(notify.Notification{
		Level:   notify.LevelError,
		Message: fmt.Sprintf("There was an error processing your order: %s", err.Error()),
	})
	p.log.Warn("order submission failed", zap.String("session_id", sessionID), zap.Error(err))
}

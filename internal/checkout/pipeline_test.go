package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/zapaeleg/shoe-shop-backend/internal/cart"
	"github.com/zapaeleg/shoe-shop-backend/internal/catalog"
	"github.com/zapaeleg/shoe-shop-backend/internal/notify"
	"github.com/zapaeleg/shoe-shop-backend/internal/order"
)

// stubRepo records calls and fails on demand, so tests can drive each
// step of the two-phase write independently.
type stubRepo struct {
	mu          sync.Mutex
	headerErr   error
	itemsErr    error
	deleteErr   error
	createCalls int
	itemsCalls  int
	deleted     []int
	lastHeader  order.Order
	lastItems   []order.Item

	// when set, CreateOrder signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (r *stubRepo) CreateOrder(ctx context.Context, ord order.Order) (int, error) {
	r.mu.Lock()
	r.createCalls++
	r.lastHeader = ord
	started, release := r.started, r.release
	r.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}
	if r.headerErr != nil {
		return 0, r.headerErr
	}
	return 77, nil
}

func (r *stubRepo) CreateOrderItems(ctx context.Context, items []order.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itemsCalls++
	r.lastItems = items
	return r.itemsErr
}

func (r *stubRepo) DeleteOrder(ctx context.Context, orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, orderID)
	return r.deleteErr
}

func (r *stubRepo) GetByID(orderID int) (order.Order, error) {
	return order.Order{}, order.ErrNotFound
}

var _ order.Repository = (*stubRepo)(nil)

func seededCart() *cart.Store {
	s := cart.NewStore()
	s.Add(
		cart.Snapshot{ProductID: 1, Model: "Runner", BrandName: "Acme"},
		catalog.Variant{ID: 10, Color: "black", Size: "9", Price: 500, Stock: 3},
	)
	return s
}

func newTestPipeline(repo order.Repository, sink notify.Sink) *Pipeline {
	return NewPipeline(repo, sink, zap.NewNop(), 60.00)
}

func TestSubmit_PickupSuccess(t *testing.T) {
	repo := &stubRepo{}
	sink := notify.NewMemorySink()
	p := newTestPipeline(repo, sink)
	store := seededCart()

	id, err := p.Submit(context.Background(), "s1", store, Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 77 {
		t.Fatalf("expected order id 77, got %d", id)
	}
	if got := repo.lastHeader.TotalAmount; got != 500.00 {
		t.Fatalf("pickup total: expected 500.00, got %.2f", got)
	}
	if repo.lastHeader.ShippingAddress != nil {
		t.Fatal("pickup order must have a null address")
	}
	if repo.lastHeader.Status != order.StatusPendingPayment {
		t.Fatalf("expected status %q, got %q", order.StatusPendingPayment, repo.lastHeader.Status)
	}
	if store.ItemCount() != 0 {
		t.Fatal("cart must be cleared after a successful submission")
	}
	if got := p.State("s1"); got != StateSucceeded {
		t.Fatalf("expected state succeeded, got %s", got)
	}
}

func TestSubmit_DeliveryAddsFlatFee(t *testing.T) {
	repo := &stubRepo{}
	p := newTestPipeline(repo, notify.NewMemorySink())

	_, err := p.Submit(context.Background(), "s1", seededCart(), Fulfillment{
		Name: "Maria", Phone: "5512345678",
		DeliveryMethod: order.DeliveryDelivery, Address: "Av. Siempre Viva 742",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.lastHeader.TotalAmount; got != 560.00 {
		t.Fatalf("delivery total: expected 560.00, got %.2f", got)
	}
	if repo.lastHeader.ShippingAddress == nil || *repo.lastHeader.ShippingAddress != "Av. Siempre Viva 742" {
		t.Fatalf("expected address on delivery order, got %+v", repo.lastHeader.ShippingAddress)
	}
}

func TestSubmit_ItemsCarryPurchaseSnapshot(t *testing.T) {
	repo := &stubRepo{}
	p := newTestPipeline(repo, notify.NewMemorySink())
	store := seededCart()
	// two units of the same variant collapse into one line
	store.Add(
		cart.Snapshot{ProductID: 1, Model: "Runner", BrandName: "Acme"},
		catalog.Variant{ID: 10, Color: "black", Size: "9", Price: 500, Stock: 3},
	)

	if _, err := p.Submit(context.Background(), "s1", store, Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.lastItems) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(repo.lastItems))
	}
	it := repo.lastItems[0]
	if it.OrderID != 77 || it.VariantID != 10 || it.Quantity != 2 {
		t.Fatalf("unexpected item %+v", it)
	}
	if it.PriceAtPurchase != 500 {
		t.Fatalf("expected price snapshot 500, got %.2f", it.PriceAtPurchase)
	}
	want := order.ProductDetails{Brand: "Acme", Model: "Runner", Color: "black", Size: "9"}
	if it.ProductDetails != want {
		t.Fatalf("expected details %+v, got %+v", want, it.ProductDetails)
	}
}

func TestSubmit_ValidationFailsFast(t *testing.T) {
	cases := []struct {
		name  string
		store *cart.Store
		f     Fulfillment
		want  error
	}{
		{"empty cart", cart.NewStore(), Fulfillment{Name: "M", Phone: "5", DeliveryMethod: order.DeliveryPickup}, ErrEmptyCart},
		{"missing name", seededCart(), Fulfillment{Phone: "5", DeliveryMethod: order.DeliveryPickup}, ErrMissingName},
		{"missing phone", seededCart(), Fulfillment{Name: "M", DeliveryMethod: order.DeliveryPickup}, ErrMissingPhone},
		{"invalid method", seededCart(), Fulfillment{Name: "M", Phone: "5", DeliveryMethod: "courier"}, ErrInvalidDeliveryMethod},
		{"delivery without address", seededCart(), Fulfillment{Name: "M", Phone: "5", DeliveryMethod: order.DeliveryDelivery}, ErrMissingAddress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			p := newTestPipeline(repo, notify.NewMemorySink())

			_, err := p.Submit(context.Background(), "s1", tc.store, tc.f)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !IsValidationError(err) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			// validation failures never reach persistence
			if repo.createCalls != 0 || repo.itemsCalls != 0 {
				t.Fatalf("expected no persistence calls, got %d/%d", repo.createCalls, repo.itemsCalls)
			}
			if got := p.State("s1"); got != StateIdle {
				t.Fatalf("expected state idle after validation failure, got %s", got)
			}
		})
	}
}

func TestSubmit_HeaderFailureLeavesCartIntact(t *testing.T) {
	repo := &stubRepo{headerErr: errors.New("connection refused")}
	sink := notify.NewMemorySink()
	p := newTestPipeline(repo, sink)
	store := seededCart()

	_, err := p.Submit(context.Background(), "s1", store, Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if repo.itemsCalls != 0 {
		t.Fatal("no items may be written when the header write fails")
	}
	if store.ItemCount() == 0 {
		t.Fatal("cart must be preserved for retry")
	}
	if got := p.State("s1"); got != StateFailed {
		t.Fatalf("expected state failed, got %s", got)
	}
}

func TestSubmit_ItemsFailureCompensatesHeader(t *testing.T) {
	repo := &stubRepo{itemsErr: errors.New("write timed out")}
	sink := notify.NewMemorySink()
	p := newTestPipeline(repo, sink)
	store := seededCart()

	_, err := p.Submit(context.Background(), "s1", store, Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if store.ItemCount() == 0 {
		t.Fatal("cart must not be cleared when the items write fails")
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 77 {
		t.Fatalf("expected compensating delete of order 77, got %v", repo.deleted)
	}
	if got := p.State("s1"); got != StateFailed {
		t.Fatalf("expected state failed, got %s", got)
	}

	var sawError bool
	for _, n := range sink.Sent() {
		if n.Level == notify.LevelError {
			sawError = true
		}
	}
	if !sawError {
		t.Fatal("expected an error notification")
	}
}

func TestSubmit_CompensationFailureIsSwallowed(t *testing.T) {
	// the orphaned header is logged, not surfaced on top of the
	// original items error
	repo := &stubRepo{itemsErr: errors.New("write timed out"), deleteErr: errors.New("also down")}
	p := newTestPipeline(repo, notify.NewMemorySink())

	_, err := p.Submit(context.Background(), "s1", seededCart(), Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	})
	if err == nil || err.Error() != "write timed out" {
		t.Fatalf("expected the items error, got %v", err)
	}
}

func TestSubmit_SecondSubmissionRejectedWhileInFlight(t *testing.T) {
	repo := &stubRepo{started: make(chan struct{}), release: make(chan struct{})}
	p := newTestPipeline(repo, notify.NewMemorySink())
	store := seededCart()

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), "s1", store, Fulfillment{
			Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
		})
		done <- err
	}()

	<-repo.started // first submission is now inside the header write

	if got := p.State("s1"); got != StateSubmitting {
		t.Fatalf("expected state submitting, got %s", got)
	}
	_, err := p.Submit(context.Background(), "s1", store, Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	})
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(repo.release)
	if err := <-done; err != nil {
		t.Fatalf("first submission should have succeeded, got %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected exactly one header write, got %d", repo.createCalls)
	}

	// a different session is not blocked by s1's submission
	if got := p.State("s2"); got != StateIdle {
		t.Fatalf("expected fresh session to be idle, got %s", got)
	}
}

func TestBegin_ValidatingCountsAsInFlight(t *testing.T) {
	// two requests racing past the gate before either reaches the
	// header write must not both submit
	p := newTestPipeline(&stubRepo{}, notify.NewMemorySink())

	if err := p.begin("s1"); err != nil {
		t.Fatalf("first begin: unexpected error: %v", err)
	}
	if got := p.State("s1"); got != StateValidating {
		t.Fatalf("expected state validating, got %s", got)
	}
	if err := p.begin("s1"); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight while validating, got %v", err)
	}

	// once the first attempt settles, the session can begin again
	p.setState("s1", StateIdle)
	if err := p.begin("s1"); err != nil {
		t.Fatalf("begin after settling: unexpected error: %v", err)
	}
}

func TestSubmit_RetryAfterFailureSucceeds(t *testing.T) {
	repo := &stubRepo{itemsErr: errors.New("write timed out")}
	p := newTestPipeline(repo, notify.NewMemorySink())
	store := seededCart()

	if _, err := p.Submit(context.Background(), "s1", store, Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	}); err == nil {
		t.Fatal("expected first submission to fail")
	}

	// the shopper retries; the preserved cart goes through
	repo.itemsErr = nil
	id, err := p.Submit(context.Background(), "s1", store, Fulfillment{
		Name: "Maria", Phone: "5512345678", DeliveryMethod: order.DeliveryPickup,
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if id != 77 {
		t.Fatalf("expected order id 77, got %d", id)
	}
	if store.ItemCount() != 0 {
		t.Fatal("cart must be cleared after the successful retry")
	}
}

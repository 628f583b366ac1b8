package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/store"
	"github.com/sahajbill/counter/pkg/upstream"
)

type stubSubmitter struct {
	calls int
	order *upstream.Order
	err   error
}

func (s *stubSubmitter) CreateOrder(ctx context.Context, req upstream.OrderRequest) (*upstream.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.order != nil {
		return s.order, nil
	}
	return &upstream.Order{ID: "o1", OrderNumber: "ORD-001", Status: "pending", Items: req.Items}, nil
}

func newTestManager(t *testing.T) (*Manager, *store.MemoryStore, *stubSubmitter) {
	t.Helper()
	snapshots := store.NewMemoryStore()
	orders := &stubSubmitter{}
	mgr, err := NewManager(snapshots, orders)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr, snapshots, orders
}

func product(id string, stock int, price float64, hasCustom bool, original *float64) upstream.Product {
	return upstream.Product{
		ID:             id,
		Name:           "Product " + id,
		Price:          price,
		OriginalPrice:  original,
		HasCustomPrice: hasCustom,
		Stock:          stock,
	}
}

func mustCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestAddItemAndIncrementScenario(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	p1 := product("p1", 5, 100, false, nil)

	if err := mgr.AddItem(ctx, p1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	view := mgr.View()
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 1 {
		t.Fatalf("expected single line qty 1, got %+v", view.Lines)
	}
	if !view.Lines[0].UnitPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected unit price 100, got %s", view.Lines[0].UnitPrice)
	}

	if err := mgr.AddItem(ctx, p1); err != nil {
		t.Fatalf("second add: %v", err)
	}
	view = mgr.View()
	if len(view.Lines) != 1 {
		t.Fatalf("second add must not create a second line, got %d lines", len(view.Lines))
	}
	if view.Lines[0].Quantity != 2 {
		t.Fatalf("expected qty 2, got %d", view.Lines[0].Quantity)
	}

	// Over-stock absolute quantity is rejected, cart unchanged.
	err := mgr.SetQuantity(ctx, "p1", 10)
	mustCode(t, err, pkgerrors.CodeInsufficientStock)
	if view := mgr.View(); view.Lines[0].Quantity != 2 {
		t.Fatalf("rejected mutation must leave cart unchanged, got qty %d", view.Lines[0].Quantity)
	}

	// Setting quantity below one removes the line.
	if err := mgr.SetQuantity(ctx, "p1", 0); err != nil {
		t.Fatalf("set qty 0: %v", err)
	}
	if view := mgr.View(); len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", view.Lines)
	}
}

func TestAddItemOutOfStock(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	err := mgr.AddItem(ctx, product("p1", 0, 100, false, nil))
	mustCode(t, err, pkgerrors.CodeOutOfStock)
	if view := mgr.View(); len(view.Lines) != 0 {
		t.Fatalf("rejected add must leave cart empty, got %+v", view.Lines)
	}
}

func TestAddItemIncrementBoundedByStock(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	p := product("p1", 2, 50, false, nil)
	if err := mgr.AddItem(ctx, p); err != nil {
		t.Fatalf("add 1: %v", err)
	}
	if err := mgr.AddItem(ctx, p); err != nil {
		t.Fatalf("add 2: %v", err)
	}
	err := mgr.AddItem(ctx, p)
	mustCode(t, err, pkgerrors.CodeInsufficientStock)
	if mgr.ItemCount() != 2 {
		t.Fatalf("expected item count 2 after rejection, got %d", mgr.ItemCount())
	}
}

func TestAddItemKeepsStockSnapshot(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	if err := mgr.AddItem(ctx, product("p1", 5, 100, false, nil)); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A later add may carry fresher stock; the line keeps what it saw first.
	if err := mgr.AddItem(ctx, product("p1", 2, 100, false, nil)); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if view := mgr.View(); view.Lines[0].Stock != 5 {
		t.Fatalf("stock snapshot must not change on increment, got %d", view.Lines[0].Stock)
	}
	if err := mgr.SetQuantity(ctx, "p1", 5); err != nil {
		t.Fatalf("set qty within snapshot: %v", err)
	}
}

func TestEffectivePriceSelection(t *testing.T) {
	original := 120.0

	// Custom price wins when flagged, even when a list price is present.
	custom := product("p1", 5, 99.5, true, &original)
	if got := EffectivePrice(custom); !got.Equal(decimal.NewFromFloat(99.5)) {
		t.Fatalf("expected custom price, got %s", got)
	}

	// Without the flag the list price applies.
	listed := product("p1", 5, 99.5, false, &original)
	if got := EffectivePrice(listed); !got.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected original price, got %s", got)
	}

	// No list price, no flag: fall back to price.
	plain := product("p1", 5, 99.5, false, nil)
	if got := EffectivePrice(plain); !got.Equal(decimal.NewFromFloat(99.5)) {
		t.Fatalf("expected fallback price, got %s", got)
	}
}

func TestPriceFrozenAtAddTime(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	if err := mgr.AddItem(ctx, product("p1", 5, 100, false, nil)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := mgr.SetQuantity(ctx, "p1", 3); err != nil {
		t.Fatalf("set qty: %v", err)
	}

	// Quantity changes never re-derive the price.
	view := mgr.View()
	if !view.Lines[0].UnitPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("price must stay frozen, got %s", view.Lines[0].UnitPrice)
	}
	if !view.Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected total 300, got %s", view.Total)
	}
}

func TestTotalTwoLines(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	if err := mgr.AddItem(ctx, product("p1", 9, 50, false, nil)); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if err := mgr.SetQuantity(ctx, "p1", 2); err != nil {
		t.Fatalf("set p1: %v", err)
	}
	if err := mgr.AddItem(ctx, product("p2", 9, 30, false, nil)); err != nil {
		t.Fatalf("add p2: %v", err)
	}

	if total := mgr.Total(); !total.Equal(decimal.NewFromInt(130)) {
		t.Fatalf("expected total 130, got %s", total)
	}
	if mgr.ItemCount() != 3 {
		t.Fatalf("expected 3 units, got %d", mgr.ItemCount())
	}
}

func TestTotalAvoidsBinaryFloatDrift(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	// 10 lines of 0.10 each: naive float64 accumulation drifts away from 1.00.
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		if err := mgr.AddItem(ctx, product(id, 5, 0.10, false, nil)); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if total := mgr.Total(); !total.Equal(decimal.RequireFromString("1.00")) {
		t.Fatalf("expected exactly 1.00, got %s", total)
	}
}

func TestEmptyCartTotalIsZero(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	if !mgr.Total().Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", mgr.Total())
	}
}

func TestSetQuantityUnknownProductIsNoOp(t *testing.T) {
	ctx := context.Background()
	mgr, snapshots, _ := newTestManager(t)

	if err := mgr.SetQuantity(ctx, "ghost", 3); err != nil {
		t.Fatalf("unknown product must be a no-op, got %v", err)
	}
	if _, ok, _ := snapshots.Load(ctx); ok {
		t.Fatal("no-op must not persist anything")
	}
}

func TestCheckoutEmptyCartMakesNoNetworkCall(t *testing.T) {
	ctx := context.Background()
	mgr, _, orders := newTestManager(t)

	_, err := mgr.Checkout(ctx, "")
	mustCode(t, err, pkgerrors.CodeEmptyCart)
	if orders.calls != 0 {
		t.Fatalf("empty cart checkout must not call upstream, saw %d calls", orders.calls)
	}
}

func TestCheckoutSuccessClearsCartAndPersistence(t *testing.T) {
	ctx := context.Background()
	mgr, snapshots, orders := newTestManager(t)

	if err := mgr.AddItem(ctx, product("p1", 5, 100, false, nil)); err != nil {
		t.Fatalf("add: %v", err)
	}

	order, err := mgr.Checkout(ctx, "walk-in sale")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.OrderNumber != "ORD-001" {
		t.Fatalf("unexpected order %+v", order)
	}
	if orders.calls != 1 {
		t.Fatalf("expected exactly one submission, saw %d", orders.calls)
	}
	if view := mgr.View(); len(view.Lines) != 0 {
		t.Fatalf("cart must be empty after checkout, got %+v", view.Lines)
	}
	if _, ok, _ := snapshots.Load(ctx); ok {
		t.Fatal("persistence must be cleared after checkout")
	}
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	mgr, _, orders := newTestManager(t)
	orders.err = &upstream.APIError{Status: 409, Message: "insufficient stock for Product p1"}

	if err := mgr.AddItem(ctx, product("p1", 5, 100, false, nil)); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := mgr.Checkout(ctx, "")
	mustCode(t, err, pkgerrors.CodeUpstream)
	typed := pkgerrors.As(err)
	if typed.Message() != "insufficient stock for Product p1" {
		t.Fatalf("expected upstream message surfaced, got %q", typed.Message())
	}
	if view := mgr.View(); len(view.Lines) != 1 {
		t.Fatalf("failed checkout must preserve the cart, got %+v", view.Lines)
	}

	// The cart survives for a retry, which now succeeds.
	orders.err = nil
	if _, err := mgr.Checkout(ctx, ""); err != nil {
		t.Fatalf("retry checkout: %v", err)
	}
}

func TestCheckoutInFlightRejectsOtherOperations(t *testing.T) {
	ctx := context.Background()
	snapshots := store.NewMemoryStore()
	orders := &blockingSubmitter{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	mgr, err := NewManager(snapshots, orders)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := mgr.AddItem(ctx, product("p1", 5, 100, false, nil)); err != nil {
		t.Fatalf("add: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := mgr.Checkout(ctx, "")
		done <- err
	}()
	<-orders.started

	// Every other operation conflicts while the submission is in flight.
	_, err = mgr.Checkout(ctx, "")
	mustCode(t, err, pkgerrors.CodeConflict)
	mustCode(t, mgr.AddItem(ctx, product("p2", 5, 50, false, nil)), pkgerrors.CodeConflict)
	mustCode(t, mgr.SetQuantity(ctx, "p1", 2), pkgerrors.CodeConflict)
	mustCode(t, mgr.RemoveItem(ctx, "p1"), pkgerrors.CodeConflict)

	close(orders.release)
	if err := <-done; err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if view := mgr.View(); len(view.Lines) != 0 {
		t.Fatalf("cart must be empty after checkout, got %+v", view.Lines)
	}

	// With the checkout settled, mutations work again.
	if err := mgr.AddItem(ctx, product("p2", 5, 50, false, nil)); err != nil {
		t.Fatalf("add after checkout: %v", err)
	}
}

func TestCheckoutGenericFallbackMessage(t *testing.T) {
	ctx := context.Background()
	mgr, _, orders := newTestManager(t)
	orders.err = errors.New("connection refused")

	if err := mgr.AddItem(ctx, product("p1", 5, 100, false, nil)); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := mgr.Checkout(ctx, "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "failed to place order" {
		t.Fatalf("expected generic fallback message, got %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	snapshots := store.NewMemoryStore()
	orders := &stubSubmitter{}

	first, err := NewManager(snapshots, orders)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := first.AddItem(ctx, product("p1", 5, 100, false, nil)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := first.SetQuantity(ctx, "p1", 4); err != nil {
		t.Fatalf("set qty: %v", err)
	}

	// A second manager over the same store sees the same cart.
	second, err := NewManager(snapshots, orders)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := second.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	want := first.View()
	got := second.View()
	if len(got.Lines) != len(want.Lines) {
		t.Fatalf("line count mismatch: %d vs %d", len(got.Lines), len(want.Lines))
	}
	for i := range want.Lines {
		w, g := want.Lines[i], got.Lines[i]
		if g.ProductID != w.ProductID || g.ProductName != w.ProductName ||
			g.Quantity != w.Quantity || g.Stock != w.Stock || !g.UnitPrice.Equal(w.UnitPrice) {
			t.Fatalf("line %d mismatch: %+v vs %+v", i, g, w)
		}
	}
	if !got.Total.Equal(want.Total) {
		t.Fatalf("total mismatch: %s vs %s", got.Total, want.Total)
	}
}

func TestLoadEmptyStoreYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	if err := mgr.Load(ctx); err != nil {
		t.Fatalf("load on empty store: %v", err)
	}
	if view := mgr.View(); len(view.Lines) != 0 || !view.Total.Equal(decimal.Zero) {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestQuantityInvariantHoldsAcrossMutations(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)

	ops := []func() error{
		func() error { return mgr.AddItem(ctx, product("p1", 3, 10, false, nil)) },
		func() error { return mgr.AddItem(ctx, product("p2", 1, 20, false, nil)) },
		func() error { return mgr.SetQuantity(ctx, "p1", 3) },
		func() error { return mgr.AddItem(ctx, product("p1", 3, 10, false, nil)) }, // rejected
		func() error { return mgr.SetQuantity(ctx, "p2", 5) },                      // rejected
		func() error { return mgr.RemoveItem(ctx, "p2") },
		func() error { return mgr.SetQuantity(ctx, "p1", 1) },
	}
	for i, op := range ops {
		_ = op()
		for _, line := range mgr.View().Lines {
			if line.Quantity < 1 || line.Quantity > line.Stock {
				t.Fatalf("after op %d line %s violates invariant: qty=%d stock=%d",
					i, line.ProductID, line.Quantity, line.Stock)
			}
		}
	}
}

func TestStoreFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	failing := &failingStore{}
	mgr, err := NewManager(failing, &stubSubmitter{})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	addErr := mgr.AddItem(ctx, product("p1", 5, 100, false, nil))
	mustCode(t, addErr, pkgerrors.CodeDependency)
	if view := mgr.View(); len(view.Lines) != 0 {
		t.Fatalf("failed persist must not mutate memory, got %+v", view.Lines)
	}
}

type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) CreateOrder(ctx context.Context, req upstream.OrderRequest) (*upstream.Order, error) {
	close(b.started)
	<-b.release
	return &upstream.Order{ID: "o1", OrderNumber: "ORD-001", Status: "pending", Items: req.Items}, nil
}

type failingStore struct{}

func (f *failingStore) Load(ctx context.Context) (store.Snapshot, bool, error) {
	return store.Snapshot{}, false, nil
}

func (f *failingStore) Save(ctx context.Context, snap store.Snapshot) error {
	return errors.New("disk full")
}

func (f *failingStore) Clear(ctx context.Context) error {
	return nil
}

package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/store"
	"github.com/sahajbill/counter/pkg/upstream"
)

// OrderSubmitter is the slice of the upstream client checkout needs.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, req upstream.OrderRequest) (*upstream.Order, error)
}

// Manager holds the cart in memory and mirrors every successful mutation to
// the persistence collaborator. All operations leave the cart valid: a
// rejected mutation changes nothing, in memory or on disk.
type Manager struct {
	mu         sync.Mutex
	lines      []Line
	inCheckout bool

	store  store.Store
	orders OrderSubmitter
}

func NewManager(snapshots store.Store, orders OrderSubmitter) (*Manager, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	return &Manager{store: snapshots, orders: orders}, nil
}

// Load restores the cart from persistence. Absent or malformed state yields
// an empty cart; only a live store failure is surfaced.
func (m *Manager) Load(ctx context.Context) error {
	snap, ok, err := m.store.Load(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore cart")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !ok {
		m.lines = nil
		return nil
	}
	m.lines = linesFromSnapshot(snap)
	return nil
}

// AddItem puts one unit of the product in the cart. An existing line gets its
// quantity bumped and its price re-frozen from the offered product; its stock
// snapshot stays as captured at creation. A new line starts at quantity 1.
func (m *Manager) AddItem(ctx context.Context, p upstream.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inCheckout {
		return pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}

	price := EffectivePrice(p)
	next := cloneLines(m.lines)

	if idx := indexOf(next, p.ID); idx >= 0 {
		if next[idx].Quantity+1 > next[idx].Stock {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock available").
				WithDetails(map[string]any{"productId": p.ID, "stock": next[idx].Stock})
		}
		next[idx].Quantity++
		next[idx].UnitPrice = price
	} else {
		if p.Stock < 1 {
			return pkgerrors.New(pkgerrors.CodeOutOfStock, "product out of stock").
				WithDetails(map[string]any{"productId": p.ID})
		}
		next = append(next, Line{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    1,
			UnitPrice:   price,
			Stock:       p.Stock,
		})
	}

	return m.commit(ctx, next)
}

// SetQuantity moves an existing line to an absolute quantity. Below one it
// removes the line; above the line's stock snapshot it rejects; an unknown
// product id is a no-op.
func (m *Manager) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return m.RemoveItem(ctx, productID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inCheckout {
		return pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}

	idx := indexOf(m.lines, productID)
	if idx < 0 {
		return nil
	}
	if quantity > m.lines[idx].Stock {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock available").
			WithDetails(map[string]any{"productId": productID, "stock": m.lines[idx].Stock})
	}

	next := cloneLines(m.lines)
	next[idx].Quantity = quantity
	return m.commit(ctx, next)
}

// RemoveItem drops the line if present.
func (m *Manager) RemoveItem(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inCheckout {
		return pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}

	idx := indexOf(m.lines, productID)
	if idx < 0 {
		return nil
	}

	next := cloneLines(m.lines)
	next = append(next[:idx], next[idx+1:]...)
	return m.commit(ctx, next)
}

// Total is the sum of quantity times unit price over all lines, rounded to
// two places for display.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return totalOf(m.lines)
}

// ItemCount is the unit count across lines, for the cart badge.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, line := range m.lines {
		count += line.Quantity
	}
	return count
}

// View renders the current cart with derived totals.
func (m *Manager) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, line := range m.lines {
		count += line.Quantity
	}
	return View{
		Lines:     cloneLines(m.lines),
		Total:     totalOf(m.lines),
		ItemCount: count,
	}
}

// Checkout submits the cart as an order. An empty cart is rejected before any
// network call; a failed submission leaves the cart untouched for retry; a
// successful one clears memory and persistence. While a checkout is in
// flight every other cart operation, a second checkout included, is rejected
// with a conflict.
func (m *Manager) Checkout(ctx context.Context, notes string) (*upstream.Order, error) {
	m.mu.Lock()
	if m.inCheckout {
		m.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	if len(m.lines) == 0 {
		m.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	items := make([]upstream.OrderItem, 0, len(m.lines))
	for _, line := range m.lines {
		items = append(items, upstream.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.InexactFloat64(),
		})
	}
	m.inCheckout = true
	m.mu.Unlock()

	order, err := m.orders.CreateOrder(ctx, upstream.OrderRequest{Items: items, Notes: notes})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inCheckout = false

	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, checkoutFailureMessage(err)).
			WithDetails(map[string]any{"itemCount": len(items)})
	}

	m.lines = nil
	// A failed clear leaves a stale snapshot that Load will resurrect after a
	// restart; the order itself is already placed, so the checkout still
	// reports success.
	_ = m.store.Clear(ctx)

	return order, nil
}

func checkoutFailureMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "failed to place order"
}

// commit persists the candidate lines and only then makes them current, so a
// store failure never leaves memory and persistence disagreeing.
func (m *Manager) commit(ctx context.Context, next []Line) error {
	snap := linesToSnapshot(next)
	snap.SavedAt = time.Now().UTC()
	if err := m.store.Save(ctx, snap); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	m.lines = next
	return nil
}

func totalOf(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

func indexOf(lines []Line, productID string) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

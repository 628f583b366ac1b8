// Package cart owns the terminal's shopping cart: the one piece of business
// state that lives on this side of the billing backend.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/sahajbill/counter/pkg/store"
	"github.com/sahajbill/counter/pkg/upstream"
)

// Line is one product's presence in the cart. UnitPrice and Stock are
// snapshots taken when the line was created: a later price or stock change in
// the catalog does not rewrite an existing line.
type Line struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Stock       int             `json:"stock"`
}

// Subtotal returns quantity times unit price, unrounded.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// View is the cart as rendered to a client: ordered lines plus derived
// totals. Totals are computed on demand, never stored.
type View struct {
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// EffectivePrice picks the price a line is frozen at: the custom price when
// the customer has one, otherwise the list price (falling back to Price when
// the backend sent no separate list price).
func EffectivePrice(p upstream.Product) decimal.Decimal {
	if p.HasCustomPrice {
		return decimal.NewFromFloat(p.Price)
	}
	if p.OriginalPrice != nil {
		return decimal.NewFromFloat(*p.OriginalPrice)
	}
	return decimal.NewFromFloat(p.Price)
}

func linesToSnapshot(lines []Line) store.Snapshot {
	snap := store.Snapshot{Lines: make([]store.SnapshotLine, 0, len(lines))}
	for _, line := range lines {
		snap.Lines = append(snap.Lines, store.SnapshotLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Stock:       line.Stock,
		})
	}
	return snap
}

func linesFromSnapshot(snap store.Snapshot) []Line {
	lines := make([]Line, 0, len(snap.Lines))
	for _, stored := range snap.Lines {
		// A stored line that violates the quantity invariant is dropped
		// rather than resurrected broken.
		if stored.Quantity < 1 || stored.Quantity > stored.Stock {
			continue
		}
		lines = append(lines, Line{
			ProductID:   stored.ProductID,
			ProductName: stored.ProductName,
			Quantity:    stored.Quantity,
			UnitPrice:   stored.UnitPrice,
			Stock:       stored.Stock,
		})
	}
	return lines
}

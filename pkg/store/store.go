// Package store persists the terminal's cart snapshot across restarts, the
// way the browser UI this gateway replaced kept it in localStorage. The
// snapshot is one JSON value per terminal; last write wins.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SnapshotLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Stock       int             `json:"stock"`
}

type Snapshot struct {
	Lines   []SnapshotLine `json:"lines"`
	SavedAt time.Time      `json:"savedAt"`
}

// Store is the cart persistence collaborator. Load reports absence via the
// bool rather than an error; malformed stored data counts as absent.
type Store interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
}

package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is an inventory master record. It owns its batches; StockByZone and EarliestExpiry are
// derived from them by the ledger and are never a source of truth.
type Item struct {
	ID           string
	SKU          string // ITEM-XXXXX, immutable once assigned
	Name         string
	Category     string
	UOM          string
	UnitCost     decimal.Decimal
	ParStock     int // reorder threshold
	IsFastMoving bool
	Batches      []Batch

	StockByZone    map[string]int
	EarliestExpiry Date // last known value; zero = N/A

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Batch is a quantity of one item received together, with one expiry, located in one zone.
// Two records may share an ID after a transfer splits a batch across zones.
type Batch struct {
	ID       string
	Expiry   Date
	Quantity int
	Zone     string
}

// Clone returns a deep copy so ledger operations never touch the caller's batches.
func (i Item) Clone() Item {
	out := i
	out.Batches = append([]Batch(nil), i.Batches...)
	if i.StockByZone != nil {
		out.StockByZone = make(map[string]int, len(i.StockByZone))
		for z, q := range i.StockByZone {
			out.StockByZone[z] = q
		}
	}
	return out
}

// TotalQuantity sums every batch, depleted ones included.
func (i Item) TotalQuantity() int {
	total := 0
	for _, b := range i.Batches {
		total += b.Quantity
	}
	return total
}

// IsBelowPar reports whether on-hand stock is strictly under the par level.
func (i Item) IsBelowPar() bool {
	return i.TotalQuantity() < i.ParStock
}

// StockValue is total quantity times unit cost.
func (i Item) StockValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.TotalQuantity())).Mul(i.UnitCost)
}

// NewCode returns prefix-XXXXX style short identifiers (upper-case hex taken from a random uuid).
func NewCode(prefix string, n int) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(raw) {
		n = len(raw)
	}
	return prefix + "-" + raw[:n]
}

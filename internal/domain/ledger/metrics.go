package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// DefaultExpiryHorizonDays is how far ahead an expiry counts as "soon".
const DefaultExpiryHorizonDays = 90

// StockValue is Σ batch quantity × unit cost over every item.
func StockValue(items []entity.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.StockValue())
	}
	return total
}

// TotalUnits sums every batch of every item.
func TotalUnits(items []entity.Item) int {
	total := 0
	for _, it := range items {
		total += it.TotalQuantity()
	}
	return total
}

// BelowPar returns the items whose total quantity is strictly under par, in input order.
func BelowPar(items []entity.Item) []entity.Item {
	var out []entity.Item
	for _, it := range items {
		if it.IsBelowPar() {
			out = append(out, it)
		}
	}
	return out
}

// Expiring pairs an item with the days left until its earliest expiry.
type Expiring struct {
	Item     entity.Item
	DaysLeft int
}

// ExpiringSoon returns items expiring within horizonDays of now (already expired items excluded),
// soonest first.
func ExpiringSoon(items []entity.Item, now time.Time, horizonDays int) []Expiring {
	var out []Expiring
	for _, it := range items {
		if it.EarliestExpiry.IsZero() {
			continue
		}
		days := it.EarliestExpiry.DaysUntil(now)
		if days > 0 && days <= horizonDays {
			out = append(out, Expiring{Item: it, DaysLeft: days})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].DaysLeft < out[b].DaysLeft })
	return out
}

// ZoneTotals sums the refreshed StockByZone of every item, seeded with the configured zones.
func (l *Ledger) ZoneTotals(items []entity.Item) map[string]int {
	totals := make(map[string]int, len(l.zones))
	for _, z := range l.zones {
		totals[z] = 0
	}
	for _, it := range items {
		for z, q := range l.Aggregate(it).StockByZone {
			totals[z] += q
		}
	}
	return totals
}

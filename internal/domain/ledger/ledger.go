// Package ledger implements first-expire-first-out batch accounting for a single item.
//
// Every operation works on a private copy of the item and returns the refreshed copy; on error the
// caller's item is left untouched. StockByZone and EarliestExpiry on the returned item are always
// recomputed from the batch list.
package ledger

import (
	"fmt"
	"sort"

	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// GlobalZone is the read-only "every zone" view key. It is never a valid allocation source.
const GlobalZone = "All Zones"

// Ledger applies batch operations against an ordered set of configured zones.
type Ledger struct {
	zones   []string
	batchID func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithBatchIDs overrides the batch identifier generator.
func WithBatchIDs(gen func() string) Option {
	return func(l *Ledger) { l.batchID = gen }
}

// New builds a ledger over the configured zones (display order preserved).
func New(zones []string, opts ...Option) *Ledger {
	l := &Ledger{
		zones:   append([]string(nil), zones...),
		batchID: NewBatchID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewBatchID returns a fresh BAT-XXXXX receiving-event identifier.
func NewBatchID() string { return entity.NewCode("BAT", 5) }

// Zones returns the configured zones in display order.
func (l *Ledger) Zones() []string { return append([]string(nil), l.zones...) }

// Aggregate is the derived view of an item's batches.
type Aggregate struct {
	StockByZone    map[string]int
	EarliestExpiry entity.Date
}

// Total sums every zone.
func (a Aggregate) Total() int {
	total := 0
	for _, q := range a.StockByZone {
		total += q
	}
	return total
}

// Aggregate derives per-zone stock and earliest expiry. Depleted batches count for neither.
// Batches without a zone are attributed to the first configured zone.
func (l *Ledger) Aggregate(item entity.Item) Aggregate {
	byZone := make(map[string]int, len(l.zones))
	for _, z := range l.zones {
		byZone[z] = 0
	}
	var earliest entity.Date
	for _, b := range item.Batches {
		if b.Quantity <= 0 {
			continue
		}
		byZone[l.zoneOf(b)] += b.Quantity
		if b.Expiry.IsZero() {
			continue
		}
		if earliest.IsZero() || b.Expiry.Before(earliest) {
			earliest = b.Expiry
		}
	}
	if earliest.IsZero() {
		earliest = item.EarliestExpiry
	}
	return Aggregate{StockByZone: byZone, EarliestExpiry: earliest}
}

// Refresh returns a copy of item with its derived fields rewritten from the batches.
func (l *Ledger) Refresh(item entity.Item) entity.Item {
	out := item.Clone()
	agg := l.Aggregate(out)
	out.StockByZone = agg.StockByZone
	out.EarliestExpiry = agg.EarliestExpiry
	return out
}

// Allocate deducts qty units from zone, draining the soonest-expiring batches first.
func (l *Ledger) Allocate(item entity.Item, zone string, qty int) (entity.Item, error) {
	if qty <= 0 {
		return item, fmt.Errorf("allocate %d: %w", qty, domain.ErrInvalidQuantity)
	}
	if err := l.checkSource(item, zone); err != nil {
		return item, err
	}
	if err := l.checkAvailable(item, zone, qty); err != nil {
		return item, err
	}

	work := item.Clone()
	remaining := qty
	for _, idx := range fefo(work.Batches, l.zoneMatcher(zone)) {
		if remaining == 0 {
			break
		}
		take := min(work.Batches[idx].Quantity, remaining)
		work.Batches[idx].Quantity -= take
		remaining -= take
	}
	if remaining > 0 {
		return item, l.shortfall(item, zone, qty)
	}
	return l.Refresh(work), nil
}

// Relocate moves qty units from src to dst. Moved units keep their batch identifier and expiry and
// are credited to the destination record with the same identifier and expiry when one exists.
func (l *Ledger) Relocate(item entity.Item, src, dst string, qty int) (entity.Item, error) {
	if src == dst {
		return item, fmt.Errorf("relocate within %q: %w", src, domain.ErrSameZoneTransfer)
	}
	if qty <= 0 {
		return item, fmt.Errorf("relocate %d: %w", qty, domain.ErrInvalidQuantity)
	}
	if err := l.checkSource(item, src); err != nil {
		return item, err
	}
	if err := l.checkDest(dst); err != nil {
		return item, err
	}
	if err := l.checkAvailable(item, src, qty); err != nil {
		return item, err
	}

	work := item.Clone()
	remaining := qty
	for _, idx := range fefo(work.Batches, l.zoneMatcher(src)) {
		if remaining == 0 {
			break
		}
		moved := min(work.Batches[idx].Quantity, remaining)
		work.Batches[idx].Quantity -= moved
		remaining -= moved

		source := work.Batches[idx]
		if d := l.findRecord(work.Batches, source.ID, source.Expiry, dst); d >= 0 {
			work.Batches[d].Quantity += moved
			work.Batches[d].Zone = dst
			continue
		}
		work.Batches = append(work.Batches, entity.Batch{
			ID:       source.ID,
			Expiry:   source.Expiry,
			Quantity: moved,
			Zone:     dst,
		})
	}
	if remaining > 0 {
		return item, l.shortfall(item, src, qty)
	}
	return l.Refresh(work), nil
}

// Receive appends a new batch with a fresh identifier. It returns the refreshed item and the batch.
func (l *Ledger) Receive(item entity.Item, zone string, expiry entity.Date, qty int) (entity.Item, entity.Batch, error) {
	if qty <= 0 {
		return item, entity.Batch{}, fmt.Errorf("receive %d: %w", qty, domain.ErrInvalidQuantity)
	}
	if err := l.checkDest(zone); err != nil {
		return item, entity.Batch{}, err
	}
	if expiry.IsZero() {
		return item, entity.Batch{}, fmt.Errorf("receive: expiry date is required: %w", domain.ErrInvalidInput)
	}
	batch := entity.Batch{ID: l.batchID(), Expiry: expiry, Quantity: qty, Zone: zone}
	work := item.Clone()
	work.Batches = append(work.Batches, batch)
	return l.Refresh(work), batch, nil
}

// Prune drops depleted batches. Totals are unchanged.
func (l *Ledger) Prune(item entity.Item) entity.Item {
	work := item.Clone()
	kept := work.Batches[:0]
	for _, b := range work.Batches {
		if b.Quantity > 0 {
			kept = append(kept, b)
		}
	}
	work.Batches = kept
	return l.Refresh(work)
}

// Available is the positive stock of item held in zone.
func (l *Ledger) Available(item entity.Item, zone string) int {
	match := l.zoneMatcher(zone)
	total := 0
	for _, b := range item.Batches {
		if b.Quantity > 0 && match(b) {
			total += b.Quantity
		}
	}
	return total
}

// checkSource accepts configured zones and zones that still hold stock (a zone removed from the
// settings can still be drained).
func (l *Ledger) checkSource(item entity.Item, zone string) error {
	if zone == "" || zone == GlobalZone {
		return fmt.Errorf("source zone %q: %w", zone, domain.ErrInvalidZone)
	}
	if l.configured(zone) || l.Available(item, zone) > 0 {
		return nil
	}
	return fmt.Errorf("source zone %q: %w", zone, domain.ErrInvalidZone)
}

func (l *Ledger) checkDest(zone string) error {
	if zone == GlobalZone || !l.configured(zone) {
		return fmt.Errorf("zone %q: %w", zone, domain.ErrInvalidZone)
	}
	return nil
}

func (l *Ledger) checkAvailable(item entity.Item, zone string, qty int) error {
	if l.Available(item, zone) < qty {
		return l.shortfall(item, zone, qty)
	}
	return nil
}

func (l *Ledger) shortfall(item entity.Item, zone string, qty int) error {
	return &domain.InsufficientStockError{
		ItemID:    item.ID,
		Zone:      zone,
		Available: l.Available(item, zone),
		Requested: qty,
	}
}

func (l *Ledger) configured(zone string) bool {
	for _, z := range l.zones {
		if z == zone {
			return true
		}
	}
	return false
}

// zoneOf resolves the zone a batch counts toward.
func (l *Ledger) zoneOf(b entity.Batch) string {
	if b.Zone == "" && len(l.zones) > 0 {
		return l.zones[0]
	}
	return b.Zone
}

func (l *Ledger) zoneMatcher(zone string) func(entity.Batch) bool {
	return func(b entity.Batch) bool { return l.zoneOf(b) == zone }
}

// fefo returns the indexes of positive batches accepted by match, soonest expiry first. Ties keep
// insertion order; batches without an expiry go last.
func fefo(batches []entity.Batch, match func(entity.Batch) bool) []int {
	idx := make([]int, 0, len(batches))
	for i, b := range batches {
		if b.Quantity > 0 && match(b) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := batches[idx[a]].Expiry, batches[idx[b]].Expiry
		switch {
		case ea.IsZero():
			return false
		case eb.IsZero():
			return true
		default:
			return ea.Before(eb)
		}
	})
	return idx
}

// findRecord locates the record of batch id and expiry that counts toward zone.
func (l *Ledger) findRecord(batches []entity.Batch, id string, expiry entity.Date, zone string) int {
	for i, b := range batches {
		if b.ID == id && b.Expiry.Equal(expiry) && l.zoneOf(b) == zone {
			return i
		}
	}
	return -1
}

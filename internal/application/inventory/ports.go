package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// TxRunner runs fn inside one store transaction with repositories bound to it.
// Either every write in fn is committed or none is.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// ChangeNotifier is told after every committed mutation (the remote mirror listens).
type ChangeNotifier interface {
	Notify()
}

// IdempotencyGuard stops a retried checkout from deducting stock twice.
// Claim returns false when the key was already claimed.
type IdempotencyGuard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// ReceiptGenerator renders a release receipt document.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, receipt *Receipt) ([]byte, error)
}

// Receipt is the printable view of one release (all ISSUE lines sharing a receipt id).
type Receipt struct {
	ID           string        `json:"id"`
	PropertyName string        `json:"property_name"`
	IssuedAt     time.Time     `json:"issued_at"`
	ReleasedBy   string        `json:"released_by"`
	Department   string        `json:"department"`
	ReceiverName string        `json:"receiver_name"`
	Signature    string        `json:"signature,omitempty"` // PNG data URL
	Lines        []ReceiptLine `json:"lines"`
}

// ReceiptLine one released item.
type ReceiptLine struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	UOM      string `json:"uom"`
}

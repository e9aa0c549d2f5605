package localstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// On-disk shapes. Derived fields (StockByZone) are not persisted; EarliestExpiry is kept because
// it is the fallback when every batch is depleted.

type batchRecord struct {
	ID       string      `json:"id"`
	Expiry   entity.Date `json:"expiry"`
	Quantity int         `json:"quantity"`
	Zone     string      `json:"zone"`
}

type itemRecord struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	UOM            string          `json:"uom"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ParStock       int             `json:"par_stock"`
	IsFastMoving   bool            `json:"is_fast_moving"`
	Batches        []batchRecord   `json:"batches"`
	EarliestExpiry entity.Date     `json:"earliest_expiry"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type transactionRecord struct {
	ID           string      `json:"id"`
	ReceiptID    string      `json:"receipt_id,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	User         string      `json:"user"`
	Action       string      `json:"action"`
	Qty          int         `json:"qty"`
	ItemID       string      `json:"item_id"`
	ItemSKU      string      `json:"item_sku"`
	ItemName     string      `json:"item_name"`
	ItemUOM      string      `json:"item_uom"`
	SourceZone   string      `json:"source_zone,omitempty"`
	DestZone     string      `json:"dest_zone,omitempty"`
	Department   string      `json:"department,omitempty"`
	ReceiverName string      `json:"receiver_name,omitempty"`
	Signature    string      `json:"signature,omitempty"`
	BatchID      string      `json:"batch_id,omitempty"`
	Expiry       entity.Date `json:"expiry"`
}

type userRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type settingsRecord struct {
	Zones        []string  `json:"zones"`
	Categories   []string  `json:"categories"`
	Departments  []string  `json:"departments"`
	PasscodeHash string    `json:"passcode_hash"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toItemRecord(it *entity.Item) itemRecord {
	rec := itemRecord{
		ID: it.ID, SKU: it.SKU, Name: it.Name, Category: it.Category, UOM: it.UOM,
		UnitCost: it.UnitCost, ParStock: it.ParStock, IsFastMoving: it.IsFastMoving,
		EarliestExpiry: it.EarliestExpiry, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt,
		Batches: make([]batchRecord, 0, len(it.Batches)),
	}
	for _, b := range it.Batches {
		rec.Batches = append(rec.Batches, batchRecord(b))
	}
	return rec
}

func (r itemRecord) entity() *entity.Item {
	it := &entity.Item{
		ID: r.ID, SKU: r.SKU, Name: r.Name, Category: r.Category, UOM: r.UOM,
		UnitCost: r.UnitCost, ParStock: r.ParStock, IsFastMoving: r.IsFastMoving,
		EarliestExpiry: r.EarliestExpiry, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		Batches: make([]entity.Batch, 0, len(r.Batches)),
	}
	for _, b := range r.Batches {
		it.Batches = append(it.Batches, entity.Batch(b))
	}
	return it
}

func toTransactionRecord(t *entity.Transaction) transactionRecord {
	return transactionRecord(*t)
}

func (r transactionRecord) entity() *entity.Transaction {
	t := entity.Transaction(r)
	return &t
}

func toUserRecord(u *entity.User) userRecord { return userRecord(*u) }

func (r userRecord) entity() *entity.User {
	u := entity.User(r)
	return &u
}

func toSettingsRecord(s *entity.Settings) settingsRecord { return settingsRecord(*s) }

func (r settingsRecord) entity() *entity.Settings {
	s := entity.Settings(r)
	return &s
}

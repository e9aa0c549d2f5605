package dto

import "github.com/shopspring/decimal"

// ReceiveRequest body for POST /api/inventory/receive. ItemID targets an existing item; without it
// the item is matched by name or created.
type ReceiveRequest struct {
	ItemID       string           `json:"item_id,omitempty"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	UOM          string           `json:"uom"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	ParStock     *int             `json:"par_stock,omitempty"`
	IsFastMoving *bool            `json:"is_fast_moving,omitempty"`
	Zone         string           `json:"zone"`
	Expiry       string           `json:"expiry"` // YYYY-MM-DD
	Quantity     int              `json:"quantity"`
}

// ReceiveResponse result of a receive.
type ReceiveResponse struct {
	Item          ItemResponse `json:"item"`
	Created       bool         `json:"created"`
	BatchID       string       `json:"batch_id"`
	TransactionID string       `json:"transaction_id"`
}

// IssueLine is one cart line: a quantity of one item taken from one zone.
type IssueLine struct {
	ItemID   string `json:"item_id"`
	Zone     string `json:"zone"`
	Quantity int    `json:"quantity"`
}

// IssueRequest body for POST /api/inventory/issue.
type IssueRequest struct {
	Lines        []IssueLine `json:"lines"`
	Department   string      `json:"department"`
	ReceiverName string      `json:"receiver_name"`
	Signature    string      `json:"signature"` // PNG data URL
}

// IssueResponse result of a release.
type IssueResponse struct {
	ReceiptID    string                `json:"receipt_id"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransferLine one item to move.
type TransferLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// TransferRequest body for POST /api/inventory/transfer.
type TransferRequest struct {
	SourceZone string         `json:"source_zone"`
	DestZone   string         `json:"dest_zone"`
	Lines      []TransferLine `json:"lines"`
}

// TransferResponse result of a transfer.
type TransferResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ReplenishmentSuggestionDTO is a reorder suggestion for an item under par.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	UOM                string          `json:"uom"`
	CurrentStock       int             `json:"current_stock"`
	ParStock           int             `json:"par_stock"`
	IdealStock         int             `json:"ideal_stock"`          // ceil(par * 1.5)
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // ideal - current
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // suggested * unit cost
	UnitsIssuedLast90d int             `json:"units_issued_last_90d"`
	IsFastMoving       bool            `json:"is_fast_moving"`
	Priority           int             `json:"priority"` // 1 = most urgent
}

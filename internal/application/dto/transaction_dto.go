package dto

import (
	"time"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// TransactionResponse is one history entry.
type TransactionResponse struct {
	ID           string    `json:"id"`
	ReceiptID    string    `json:"receipt_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	User         string    `json:"user"`
	Action       string    `json:"action"`
	Qty          int       `json:"qty"`
	ItemID       string    `json:"item_id"`
	SKU          string    `json:"sku"`
	ItemName     string    `json:"item_name"`
	UOM          string    `json:"uom"`
	SourceZone   string    `json:"source_zone,omitempty"`
	DestZone     string    `json:"dest_zone,omitempty"`
	Department   string    `json:"department,omitempty"`
	ReceiverName string    `json:"receiver_name,omitempty"`
	HasSignature bool      `json:"has_signature"`
	BatchID      string    `json:"batch_id,omitempty"`
	Expiry       string    `json:"expiry,omitempty"`
}

// HistoryRequest query of GET /api/transactions.
type HistoryRequest struct {
	PageRequest
	Search     string `query:"search"`
	Department string `query:"department"`
	Action     string `query:"action"`
}

// HistoryResponse paginated transaction log.
type HistoryResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// NewTransactionResponse maps a log record. The signature image itself is only served on receipts.
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	out := TransactionResponse{
		ID:           tx.ID,
		ReceiptID:    tx.ReceiptID,
		Timestamp:    tx.Timestamp,
		User:         tx.User,
		Action:       tx.Action,
		Qty:          tx.Qty,
		ItemID:       tx.ItemID,
		SKU:          tx.ItemSKU,
		ItemName:     tx.ItemName,
		UOM:          tx.ItemUOM,
		SourceZone:   tx.SourceZone,
		DestZone:     tx.DestZone,
		Department:   tx.Department,
		ReceiverName: tx.ReceiverName,
		HasSignature: tx.Signature != "",
		BatchID:      tx.BatchID,
	}
	if !tx.Expiry.IsZero() {
		out.Expiry = tx.Expiry.String()
	}
	return out
}

// NewTransactionResponses maps a slice of log records.
func NewTransactionResponses(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}

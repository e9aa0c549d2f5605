package repository

import (
	"context"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// TransactionFilter narrows a history listing. Empty fields do not filter.
type TransactionFilter struct {
	Search     string // item name, SKU or receiver, case-insensitive
	Department string
	Action     string
	ReceiptID  string
	Limit      int // 0 = no limit
	Offset     int
}

// TransactionRepository is the append-only persistence port for the transaction log.
type TransactionRepository interface {
	Append(ctx context.Context, txs ...*entity.Transaction) error
	// List returns matching transactions newest first and the total match count before paging.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, int, error)
}

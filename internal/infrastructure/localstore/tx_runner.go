package localstore

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner runs a callback inside one bbolt read-write transaction. Returning an error rolls
// back every write the callback made.
type TxRunner struct {
	store *Store
}

// NewTxRunner builds the runner over the store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run hands fn repositories bound to the open transaction and commits when fn returns nil.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		s := scope{tx: tx}
		return fn(&ItemRepo{s}, &TransactionRepo{s})
	})
}

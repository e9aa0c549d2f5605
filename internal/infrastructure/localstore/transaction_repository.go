package localstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo is the append-only log. Keys are the bucket sequence in big-endian so cursor
// order is insertion order.
type TransactionRepo struct {
	scope
}

// Append writes the records in the given order.
func (r *TransactionRepo) Append(ctx context.Context, txs ...*entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, transactionsBucket)
		if err != nil {
			return err
		}
		return appendTransactions(b, txs)
	})
}

func appendTransactions(b *bbolt.Bucket, txs []*entity.Transaction) error {
	for _, t := range txs {
		if t == nil || t.ID == "" {
			return fmt.Errorf("transaction id is required: %w", domain.ErrInvalidInput)
		}
		payload, err := json.Marshal(toTransactionRecord(t))
		if err != nil {
			return fmt.Errorf("marshal transaction: %w", err)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("next transaction sequence: %w", err)
		}
		if err := b.Put(sequenceKey(seq), payload); err != nil {
			return err
		}
	}
	return nil
}

// List walks the log newest first and applies the filter, then the page window.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var (
		out   []*entity.Transaction
		total int
	)
	err := r.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, transactionsBucket)
		if err != nil {
			return err
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec transactionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal transaction: %w", err)
			}
			if !matches(rec, f, search) {
				continue
			}
			total++
			if total <= f.Offset {
				continue
			}
			if f.Limit > 0 && len(out) >= f.Limit {
				continue
			}
			out = append(out, rec.entity())
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func matches(rec transactionRecord, f repository.TransactionFilter, search string) bool {
	if f.Action != "" && rec.Action != f.Action {
		return false
	}
	if f.Department != "" && rec.Department != f.Department {
		return false
	}
	if f.ReceiptID != "" && rec.ReceiptID != f.ReceiptID {
		return false
	}
	if search == "" {
		return true
	}
	for _, field := range []string{rec.ItemName, rec.ItemSKU, rec.ReceiverName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

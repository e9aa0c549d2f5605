package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/hotel-warehouse/internal/application/mirror"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

var _ mirror.LocalSnapshotter = (*Store)(nil)

// Snapshot reads the whole store in one read transaction. Only the most recent transactions are
// included.
func (s *Store) Snapshot(ctx context.Context, recentTransactions int) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := &entity.Snapshot{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		sc := scope{tx: tx}
		items, err := (&ItemRepo{sc}).List(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			snap.Items = append(snap.Items, *it)
		}
		txs, _, err := (&TransactionRepo{sc}).List(ctx, repository.TransactionFilter{Limit: recentTransactions})
		if err != nil {
			return err
		}
		for _, t := range txs {
			snap.Transactions = append(snap.Transactions, *t)
		}
		users, err := (&UserRepo{sc}).List(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			snap.Users = append(snap.Users, *u)
		}
		settings, err := (&SettingsRepo{sc}).Get(ctx)
		if err != nil {
			return err
		}
		if settings != nil {
			snap.Settings = *settings
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot local store: %w", err)
	}
	return snap, nil
}

// Replace swaps items, profiles and settings for the ones in snap in one write transaction. The
// transaction log is never dropped: records of snap missing locally are appended, oldest first, so
// sequence order stays chronological.
func (s *Store) Replace(ctx context.Context, snap *entity.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{itemsBucket, usersBucket, settingsBucket} {
			if tx.Bucket([]byte(name)) != nil {
				if err := tx.DeleteBucket([]byte(name)); err != nil {
					return fmt.Errorf("drop %s bucket: %w", name, err)
				}
			}
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}

		items := tx.Bucket([]byte(itemsBucket))
		for i := range snap.Items {
			payload, err := json.Marshal(toItemRecord(&snap.Items[i]))
			if err != nil {
				return fmt.Errorf("marshal item: %w", err)
			}
			if err := items.Put([]byte(snap.Items[i].ID), payload); err != nil {
				return err
			}
		}

		if err := mergeTransactions(tx, snap.Transactions); err != nil {
			return err
		}

		users := tx.Bucket([]byte(usersBucket))
		for i := range snap.Users {
			payload, err := json.Marshal(toUserRecord(&snap.Users[i]))
			if err != nil {
				return fmt.Errorf("marshal user: %w", err)
			}
			if err := users.Put([]byte(snap.Users[i].ID), payload); err != nil {
				return err
			}
		}

		payload, err := json.Marshal(toSettingsRecord(&snap.Settings))
		if err != nil {
			return fmt.Errorf("marshal settings: %w", err)
		}
		return tx.Bucket([]byte(settingsBucket)).Put(settingsKey, payload)
	})
}

// mergeTransactions appends the records of newestFirst whose id is not in the log yet.
func mergeTransactions(tx *bbolt.Tx, newestFirst []entity.Transaction) error {
	b, err := tx.CreateBucketIfNotExists([]byte(transactionsBucket))
	if err != nil {
		return fmt.Errorf("create %s bucket: %w", transactionsBucket, err)
	}
	known := make(map[string]struct{})
	err = b.ForEach(func(_, v []byte) error {
		var rec transactionRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("decode transaction: %w", err)
		}
		known[rec.ID] = struct{}{}
		return nil
	})
	if err != nil {
		return err
	}

	missing := make([]*entity.Transaction, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		t := &newestFirst[i]
		if _, ok := known[t.ID]; ok {
			continue
		}
		known[t.ID] = struct{}{}
		missing = append(missing, t)
	}
	return appendTransactions(b, missing)
}

// Package localstore is the on-disk cache of the warehouse: a bbolt file holding items, the
// transaction log, profiles and settings as JSON records. It is the source of truth for every
// read; the remote mirror only receives copies.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const (
	itemsBucket        = "items"
	transactionsBucket = "transactions"
	usersBucket        = "users"
	settingsBucket     = "settings"
)

var (
	allBuckets  = []string{itemsBucket, transactionsBucket, usersBucket, settingsBucket}
	settingsKey = []byte("current")

	errReadOnly = errors.New("localstore: write inside a read-only transaction")
)

// Store owns the bbolt database.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the store file at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("local store path is required")
	}
	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Items returns the item repository.
func (s *Store) Items() *ItemRepo { return &ItemRepo{scope{db: s.db}} }

// Transactions returns the transaction log repository.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{scope{db: s.db}} }

// Users returns the profile repository.
func (s *Store) Users() *UserRepo { return &UserRepo{scope{db: s.db}} }

// Settings returns the settings repository.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{scope{db: s.db}} }

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// scope runs repository work either in its own bbolt transaction or inside one opened by the
// TxRunner. Nested db.View/db.Update calls from inside an open Update would deadlock.
type scope struct {
	db *bbolt.DB
	tx *bbolt.Tx
}

func (s scope) view(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.View(fn)
}

func (s scope) update(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		if !s.tx.Writable() {
			return errReadOnly
		}
		return fn(s.tx)
	}
	return s.db.Update(fn)
}

func bucket(tx *bbolt.Tx, name string) (*bbolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("%s bucket is missing", name)
	}
	return b, nil
}

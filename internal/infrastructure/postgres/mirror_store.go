package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/hotel-warehouse/internal/application/mirror"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

var _ mirror.RemoteStore = (*MirrorStore)(nil)

// MirrorStore writes and reads whole snapshots. Items, batches, users and settings are replaced on
// every push; transactions are append-only and deduplicated by id.
type MirrorStore struct {
	pool *pgxpool.Pool
}

// NewMirrorStore builds the adapter.
func NewMirrorStore(pool *pgxpool.Pool) *MirrorStore {
	return &MirrorStore{pool: pool}
}

// Push replaces the remote state with snap in one transaction.
func (s *MirrorStore) Push(ctx context.Context, snap *entity.Snapshot) error {
	return inTx(ctx, s.pool, func(q Querier) error {
		if err := replaceItems(ctx, q, snap.Items); err != nil {
			return err
		}
		if err := appendTransactions(ctx, q, snap.Transactions); err != nil {
			return err
		}
		if err := replaceUsers(ctx, q, snap.Users); err != nil {
			return err
		}
		return upsertSettings(ctx, q, &snap.Settings)
	})
}

// Pull reads the full remote state. Transactions come back newest first.
func (s *MirrorStore) Pull(ctx context.Context) (*entity.Snapshot, error) {
	snap := &entity.Snapshot{}
	err := inTx(ctx, s.pool, func(q Querier) error {
		var err error
		if snap.Items, err = selectItems(ctx, q); err != nil {
			return err
		}
		if snap.Transactions, err = selectTransactions(ctx, q); err != nil {
			return err
		}
		if snap.Users, err = selectUsers(ctx, q); err != nil {
			return err
		}
		settings, err := selectSettings(ctx, q)
		if err != nil {
			return err
		}
		if settings != nil {
			snap.Settings = *settings
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ── Items and batches ────────────────────────────────────────────────────────

func replaceItems(ctx context.Context, q Querier, items []entity.Item) error {
	if _, err := q.Exec(ctx, `DELETE FROM items`); err != nil {
		return wrap("clear items", err)
	}
	if len(items) == 0 {
		return nil
	}

	itemRows := make([][]any, 0, len(items))
	var batchRows [][]any
	for _, it := range items {
		itemRows = append(itemRows, []any{
			it.ID, it.SKU, it.Name, it.Category, it.UOM, it.UnitCost, it.ParStock, it.IsFastMoving,
			nullDate(it.EarliestExpiry), it.CreatedAt, it.UpdatedAt,
		})
		for pos, b := range it.Batches {
			batchRows = append(batchRows, []any{it.ID, pos, b.ID, nullDate(b.Expiry), b.Quantity, b.Zone})
		}
	}

	if _, err := q.CopyFrom(ctx, pgx.Identifier{"items"},
		[]string{"id", "sku", "name", "category", "uom", "unit_cost", "par_stock", "is_fast_moving", "earliest_expiry", "created_at", "updated_at"},
		pgx.CopyFromRows(itemRows),
	); err != nil {
		return wrap("copy items", err)
	}
	if len(batchRows) == 0 {
		return nil
	}
	if _, err := q.CopyFrom(ctx, pgx.Identifier{"batches"},
		[]string{"item_id", "position", "batch_id", "expiry", "quantity", "zone"},
		pgx.CopyFromRows(batchRows),
	); err != nil {
		return wrap("copy batches", err)
	}
	return nil
}

func selectItems(ctx context.Context, q Querier) ([]entity.Item, error) {
	rows, err := q.Query(ctx, `
		SELECT id, sku, name, category, uom, unit_cost, par_stock, is_fast_moving, earliest_expiry, created_at, updated_at
		FROM items ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, wrap("select items", err)
	}
	defer rows.Close()

	var (
		items []entity.Item
		index = make(map[string]int)
	)
	for rows.Next() {
		var (
			it       entity.Item
			earliest *time.Time
		)
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Category, &it.UOM, &it.UnitCost, &it.ParStock,
			&it.IsFastMoving, &earliest, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.EarliestExpiry = dateOf(earliest)
		index[it.ID] = len(items)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	batchRows, err := q.Query(ctx, `
		SELECT item_id, batch_id, expiry, quantity, zone FROM batches ORDER BY item_id, position`)
	if err != nil {
		return nil, wrap("select batches", err)
	}
	defer batchRows.Close()
	for batchRows.Next() {
		var (
			itemID string
			b      entity.Batch
			expiry *time.Time
		)
		if err := batchRows.Scan(&itemID, &b.ID, &expiry, &b.Quantity, &b.Zone); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.Expiry = dateOf(expiry)
		if i, ok := index[itemID]; ok {
			items[i].Batches = append(items[i].Batches, b)
		}
	}
	if err := batchRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return items, nil
}

// ── Transactions ─────────────────────────────────────────────────────────────

// appendTransactions inserts oldest first so seq stays chronological. Known ids are skipped.
func appendTransactions(ctx context.Context, q Querier, txs []entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	const insert = `
		INSERT INTO transactions (id, receipt_id, ts, user_name, action, qty, item_id, item_sku, item_name,
			item_uom, source_zone, dest_zone, department, receiver_name, signature, batch_id, expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO NOTHING`

	batch := &pgx.Batch{}
	for i := len(txs) - 1; i >= 0; i-- {
		t := txs[i]
		batch.Queue(insert, t.ID, nullString(t.ReceiptID), t.Timestamp, t.User, t.Action, t.Qty, t.ItemID,
			t.ItemSKU, t.ItemName, t.ItemUOM, t.SourceZone, t.DestZone, t.Department, t.ReceiverName,
			t.Signature, t.BatchID, nullDate(t.Expiry))
	}
	results := q.SendBatch(ctx, batch)
	for range txs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return wrap("insert transaction", err)
		}
	}
	if err := results.Close(); err != nil {
		return wrap("insert transactions", err)
	}
	return nil
}

func selectTransactions(ctx context.Context, q Querier) ([]entity.Transaction, error) {
	rows, err := q.Query(ctx, `
		SELECT id, COALESCE(receipt_id, ''), ts, user_name, action, qty, item_id, item_sku, item_name, item_uom,
			source_zone, dest_zone, department, receiver_name, signature, batch_id, expiry
		FROM transactions ORDER BY seq DESC`)
	if err != nil {
		return nil, wrap("select transactions", err)
	}
	defer rows.Close()

	var out []entity.Transaction
	for rows.Next() {
		var (
			t      entity.Transaction
			expiry *time.Time
		)
		if err := rows.Scan(&t.ID, &t.ReceiptID, &t.Timestamp, &t.User, &t.Action, &t.Qty, &t.ItemID, &t.ItemSKU,
			&t.ItemName, &t.ItemUOM, &t.SourceZone, &t.DestZone, &t.Department, &t.ReceiverName, &t.Signature,
			&t.BatchID, &expiry); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Expiry = dateOf(expiry)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// ── Users and settings ───────────────────────────────────────────────────────

func replaceUsers(ctx context.Context, q Querier, users []entity.User) error {
	if _, err := q.Exec(ctx, `DELETE FROM users`); err != nil {
		return wrap("clear users", err)
	}
	if len(users) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.ID, u.Name, u.Role, u.CreatedAt})
	}
	if _, err := q.CopyFrom(ctx, pgx.Identifier{"users"}, []string{"id", "name", "role", "created_at"}, pgx.CopyFromRows(rows)); err != nil {
		return wrap("copy users", err)
	}
	return nil
}

func selectUsers(ctx context.Context, q Querier) ([]entity.User, error) {
	rows, err := q.Query(ctx, `SELECT id, name, role, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, wrap("select users", err)
	}
	defer rows.Close()

	var out []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func upsertSettings(ctx context.Context, q Querier, s *entity.Settings) error {
	_, err := q.Exec(ctx, `
		INSERT INTO settings (id, zones, categories, departments, passcode_hash, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			zones = EXCLUDED.zones,
			categories = EXCLUDED.categories,
			departments = EXCLUDED.departments,
			passcode_hash = EXCLUDED.passcode_hash,
			updated_at = EXCLUDED.updated_at`,
		nonNil(s.Zones), nonNil(s.Categories), nonNil(s.Departments), s.PasscodeHash, s.UpdatedAt)
	if err != nil {
		return wrap("upsert settings", err)
	}
	return nil
}

func selectSettings(ctx context.Context, q Querier) (*entity.Settings, error) {
	var s entity.Settings
	err := q.QueryRow(ctx, `
		SELECT zones, categories, departments, passcode_hash, updated_at FROM settings WHERE id = 1`).
		Scan(&s.Zones, &s.Categories, &s.Departments, &s.PasscodeHash, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("select settings", err)
	}
	return &s, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func nullDate(d entity.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

func dateOf(t *time.Time) entity.Date {
	if t == nil {
		return entity.Date{}
	}
	return entity.DateOf(*t)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

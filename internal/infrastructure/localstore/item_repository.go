package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo stores item masters keyed by ID.
type ItemRepo struct {
	scope
}

// Save inserts or replaces the item.
func (r *ItemRepo) Save(ctx context.Context, item *entity.Item) error {
	if item == nil || strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("item id is required: %w", domain.ErrInvalidInput)
	}
	payload, err := json.Marshal(toItemRecord(item))
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	return r.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, itemsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(item.ID), payload)
	})
}

// GetByID returns nil, nil when the item does not exist.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, itemsBucket)
		if err != nil {
			return err
		}
		payload := b.Get([]byte(id))
		if payload == nil {
			return nil
		}
		out, err = decodeItem(payload)
		return err
	})
	return out, err
}

// FindByName matches the trimmed name case-insensitively.
func (r *ItemRepo) FindByName(ctx context.Context, name string) (*entity.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var out *entity.Item
	err := r.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, itemsBucket)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			if out != nil {
				return nil
			}
			it, err := decodeItem(v)
			if err != nil {
				return err
			}
			if strings.EqualFold(strings.TrimSpace(it.Name), name) {
				out = it
			}
			return nil
		})
	})
	return out, err
}

// List returns every item, newest first.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, itemsBucket)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			it, err := decodeItem(v)
			if err != nil {
				return err
			}
			out = append(out, it)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

// Delete removes the item. Deleting a missing item is a no-op.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	return r.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, itemsBucket)
		if err != nil {
			return err
		}
		return b.Delete([]byte(id))
	})
}

func decodeItem(payload []byte) (*entity.Item, error) {
	var rec itemRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return rec.entity(), nil
}

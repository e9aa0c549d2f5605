package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo stores profiles keyed by ID.
type UserRepo struct {
	scope
}

// Create inserts a profile; an existing ID is rejected.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("user id is required: %w", domain.ErrInvalidInput)
	}
	payload, err := json.Marshal(toUserRecord(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return r.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, usersBucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(user.ID)) != nil {
			return fmt.Errorf("user %s: %w", user.ID, domain.ErrDuplicate)
		}
		return b.Put([]byte(user.ID), payload)
	})
}

// GetByID returns nil, nil when the profile does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, usersBucket)
		if err != nil {
			return err
		}
		payload := b.Get([]byte(id))
		if payload == nil {
			return nil
		}
		var rec userRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}
		out = rec.entity()
		return nil
	})
	return out, err
}

// List returns profiles in creation order.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, usersBucket)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			var rec userRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal user: %w", err)
			}
			out = append(out, rec.entity())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.Before(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

// Delete removes the profile.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, usersBucket)
		if err != nil {
			return err
		}
		return b.Delete([]byte(id))
	})
}

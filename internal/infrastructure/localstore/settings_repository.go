package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo holds the single settings document.
type SettingsRepo struct {
	scope
}

// Get returns nil, nil on a fresh store.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var out *entity.Settings
	err := r.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, settingsBucket)
		if err != nil {
			return err
		}
		payload := b.Get(settingsKey)
		if payload == nil {
			return nil
		}
		var rec settingsRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return fmt.Errorf("unmarshal settings: %w", err)
		}
		out = rec.entity()
		return nil
	})
	return out, err
}

// Save replaces the settings document.
func (r *SettingsRepo) Save(ctx context.Context, settings *entity.Settings) error {
	payload, err := json.Marshal(toSettingsRecord(settings))
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return r.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, settingsBucket)
		if err != nil {
			return err
		}
		return b.Put(settingsKey, payload)
	})
}

package repository

import (
	"context"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// SettingsRepository stores the single settings document. Get returns (nil, nil) before the first Save.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}

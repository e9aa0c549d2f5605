package repository

import (
	"context"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// ItemRepository is the persistence port for item masters and their batches.
// GetByID and FindByName return (nil, nil) when nothing matches.
type ItemRepository interface {
	Save(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// FindByName matches case-insensitively on the trimmed name.
	FindByName(ctx context.Context, name string) (*entity.Item, error)
	// List returns items newest first.
	List(ctx context.Context) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
}

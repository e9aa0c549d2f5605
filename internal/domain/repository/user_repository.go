package repository

import (
	"context"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// UserRepository is the persistence port for warehouse profiles.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// List returns profiles in creation order.
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// ItemUseCase reads and edits item masters. Batches only change through the movement flows
// (and Prune).
type ItemUseCase struct {
	repo         repository.ItemRepository
	settingsRepo repository.SettingsRepository
	mu           sync.Locker
	notifier     inventory.ChangeNotifier
	log          zerolog.Logger
}

// NewItemUseCase builds the use case. mu must be the lock shared with the movement flows.
func NewItemUseCase(
	repo repository.ItemRepository,
	settingsRepo repository.SettingsRepository,
	mu sync.Locker,
	notifier inventory.ChangeNotifier,
	log zerolog.Logger,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, settingsRepo: settingsRepo, mu: mu, notifier: notifier, log: log}
}

// List returns the stock list, optionally filtered by a case-insensitive name or SKU fragment.
// Derived totals are recomputed against the current zones.
func (uc *ItemUseCase) List(ctx context.Context, search string) (*dto.ItemListResponse, error) {
	l, err := uc.ledger(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(search))
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.SKU), q) {
			continue
		}
		refreshed := l.Refresh(*it)
		items = append(items, dto.NewItemResponse(&refreshed))
	}
	return &dto.ItemListResponse{Items: items, Total: len(items)}, nil
}

// GetByID returns one item or domain.ErrNotFound.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	l, err := uc.ledger(ctx)
	if err != nil {
		return nil, err
	}
	it, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	refreshed := l.Refresh(*it)
	resp := dto.NewItemResponse(&refreshed)
	return &resp, nil
}

// Update edits descriptive fields. Name and unit of measure may not end up empty.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	l, err := uc.ledger(ctx)
	if err != nil {
		return nil, err
	}
	it, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		it.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		it.Category = strings.TrimSpace(*in.Category)
	}
	if in.UOM != nil {
		it.UOM = strings.TrimSpace(*in.UOM)
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, fmt.Errorf("unit cost cannot be negative: %w", domain.ErrInvalidInput)
		}
		it.UnitCost = *in.UnitCost
	}
	if in.ParStock != nil {
		if *in.ParStock < 0 {
			return nil, fmt.Errorf("par stock cannot be negative: %w", domain.ErrInvalidInput)
		}
		it.ParStock = *in.ParStock
	}
	if in.IsFastMoving != nil {
		it.IsFastMoving = *in.IsFastMoving
	}
	if it.Name == "" || it.UOM == "" {
		return nil, fmt.Errorf("name and unit of measure are required: %w", domain.ErrInvalidInput)
	}
	if in.Name != nil {
		if other, err := uc.repo.FindByName(ctx, it.Name); err != nil {
			return nil, err
		} else if other != nil && other.ID != it.ID {
			return nil, fmt.Errorf("item %q already exists: %w", it.Name, domain.ErrDuplicate)
		}
	}

	updated := l.Refresh(*it)
	updated.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", id).Msg("item updated")
	uc.notify()
	resp := dto.NewItemResponse(&updated)
	return &resp, nil
}

// Delete removes an item master with all its batches. The transaction log is untouched.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("item_id", id).Msg("item deleted")
	uc.notify()
	return nil
}

// Prune drops the item's depleted batch records.
func (uc *ItemUseCase) Prune(ctx context.Context, id string) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	l, err := uc.ledger(ctx)
	if err != nil {
		return nil, err
	}
	it, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	pruned := l.Prune(*it)
	if len(pruned.Batches) != len(it.Batches) {
		pruned.UpdatedAt = time.Now()
		if err := uc.repo.Save(ctx, &pruned); err != nil {
			return nil, err
		}
		uc.log.Info().Str("item_id", id).Int("removed", len(it.Batches)-len(pruned.Batches)).Msg("depleted batches pruned")
		uc.notify()
	}
	resp := dto.NewItemResponse(&pruned)
	return &resp, nil
}

func (uc *ItemUseCase) find(ctx context.Context, id string) (*entity.Item, error) {
	it, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return it, nil
}

func (uc *ItemUseCase) ledger(ctx context.Context) (*ledger.Ledger, error) {
	s, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("settings not initialised: %w", domain.ErrNotFound)
	}
	return ledger.New(s.Zones), nil
}

func (uc *ItemUseCase) notify() {
	if uc.notifier != nil {
		uc.notifier.Notify()
	}
}

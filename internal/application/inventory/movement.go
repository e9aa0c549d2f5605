package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// MovementUseCase runs the stock-affecting flows (receive, issue, transfer) through the batch
// ledger. Mutations are serialized by mu; each one is committed atomically through txRunner.
type MovementUseCase struct {
	txRunner     TxRunner
	settingsRepo repository.SettingsRepository
	notifier     ChangeNotifier
	guard        IdempotencyGuard
	mu           sync.Locker
	log          zerolog.Logger
	now          func() time.Time
}

// NewMovementUseCase builds the use case. notifier and guard may be nil.
func NewMovementUseCase(
	txRunner TxRunner,
	settingsRepo repository.SettingsRepository,
	mu sync.Locker,
	notifier ChangeNotifier,
	guard IdempotencyGuard,
	log zerolog.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		guard:        guard,
		mu:           mu,
		log:          log,
		now:          time.Now,
	}
}

func (uc *MovementUseCase) settings(ctx context.Context) (*entity.Settings, error) {
	s, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("settings not initialised: %w", domain.ErrNotFound)
	}
	return s, nil
}

func (uc *MovementUseCase) ledgerFor(ctx context.Context) (*ledger.Ledger, *entity.Settings, error) {
	s, err := uc.settings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ledger.New(s.Zones), s, nil
}

func (uc *MovementUseCase) notify() {
	if uc.notifier != nil {
		uc.notifier.Notify()
	}
}

// loadItem fetches an item inside a transaction, reusing the working copy when the same item
// appears on several lines.
func loadItem(ctx context.Context, repo repository.ItemRepository, work map[string]*entity.Item, id string) (*entity.Item, error) {
	if it, ok := work[id]; ok {
		return it, nil
	}
	it, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	work[id] = it
	return it, nil
}

func actorName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return "Unknown"
}

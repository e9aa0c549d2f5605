package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// ReplenishmentUseCase builds the reorder list: items under par with a suggested order quantity,
// ranked by urgency.
type ReplenishmentUseCase struct {
	itemRepo repository.ItemRepository
	txRepo   repository.TransactionRepository
	now      func() time.Time
}

// NewReplenishmentUseCase builds the use case.
func NewReplenishmentUseCase(itemRepo repository.ItemRepository, txRepo repository.TransactionRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo, txRepo: txRepo, now: time.Now}
}

// GenerateReplenishmentList returns the below-par items, most urgent first. Urgency ranks fast
// movers first, then the lowest stock-to-par ratio, then the highest recent issue volume.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]entity.Item, 0, len(items))
	for _, it := range items {
		values = append(values, *it)
	}
	below := ledger.BelowPar(values)
	if len(below) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	issued, err := uc.issuedSince(ctx, uc.now().AddDate(0, 0, -90))
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(below))
	for _, it := range below {
		current := it.TotalQuantity()
		ideal := int(decimal.NewFromInt(int64(it.ParStock)).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart())
		suggested := ideal - current
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             it.ID,
			SKU:                it.SKU,
			Name:               it.Name,
			Category:           it.Category,
			UOM:                it.UOM,
			CurrentStock:       current,
			ParStock:           it.ParStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           it.UnitCost,
			EstimatedOrderCost: decimal.NewFromInt(int64(suggested)).Mul(it.UnitCost),
			UnitsIssuedLast90d: issued[it.ID],
			IsFastMoving:       it.IsFastMoving,
		})
	}

	sort.SliceStable(suggestions, func(a, b int) bool {
		sa, sb := suggestions[a], suggestions[b]
		if sa.IsFastMoving != sb.IsFastMoving {
			return sa.IsFastMoving
		}
		// current/par compared without division: ca*pb < cb*pa
		ra := sa.CurrentStock * sb.ParStock
		rb := sb.CurrentStock * sa.ParStock
		if ra != rb {
			return ra < rb
		}
		return sa.UnitsIssuedLast90d > sb.UnitsIssuedLast90d
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func (uc *ReplenishmentUseCase) issuedSince(ctx context.Context, since time.Time) (map[string]int, error) {
	txs, _, err := uc.txRepo.List(ctx, repository.TransactionFilter{Action: entity.ActionIssue})
	if err != nil {
		return nil, err
	}
	out := make(map[string]int)
	for _, tx := range txs {
		if tx.Timestamp.Before(since) {
			break // newest first
		}
		out[tx.ItemID] += tx.Qty
	}
	return out, nil
}

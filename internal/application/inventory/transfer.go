package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// Transfer moves a batch of items from one zone to another. Lines for the same item are merged;
// one TRANSFER transaction is logged per item. Nothing is committed if any line fails.
func (uc *MovementUseCase) Transfer(ctx context.Context, actor dto.Actor, in dto.TransferRequest) (*dto.TransferResponse, error) {
	lines, err := normalizeTransfer(in)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	l, _, err := uc.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var txs []*entity.Transaction
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, txRepo repository.TransactionRepository) error {
		staged := make([]entity.Item, 0, len(lines))
		for _, line := range lines {
			item, err := itemRepo.GetByID(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("item %s: %w", line.ItemID, domain.ErrNotFound)
			}
			updated, err := l.Relocate(*item, in.SourceZone, in.DestZone, line.Quantity)
			if err != nil {
				return fmt.Errorf("transfer %s: %w", item.SKU, err)
			}
			updated.UpdatedAt = now
			staged = append(staged, updated)
			txs = append(txs, &entity.Transaction{
				ID:         entity.NewCode("TRF", 7),
				Timestamp:  now,
				User:       actorName(actor.Name),
				Action:     entity.ActionTransfer,
				Qty:        line.Quantity,
				ItemID:     updated.ID,
				ItemSKU:    updated.SKU,
				ItemName:   updated.Name,
				ItemUOM:    updated.UOM,
				SourceZone: in.SourceZone,
				DestZone:   in.DestZone,
			})
		}
		for i := range staged {
			if err := itemRepo.Save(ctx, &staged[i]); err != nil {
				return err
			}
		}
		return txRepo.Append(ctx, txs...)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("source_zone", in.SourceZone).
		Str("dest_zone", in.DestZone).
		Int("items", len(txs)).
		Msg("stock transferred")
	uc.notify()
	return &dto.TransferResponse{Transactions: dto.NewTransactionResponses(txs)}, nil
}

func normalizeTransfer(in dto.TransferRequest) ([]dto.TransferLine, error) {
	if in.SourceZone == "" || in.DestZone == "" || in.SourceZone == ledger.GlobalZone || in.DestZone == ledger.GlobalZone {
		return nil, fmt.Errorf("select a source and destination zone: %w", domain.ErrInvalidZone)
	}
	if in.SourceZone == in.DestZone {
		return nil, fmt.Errorf("transfer within %q: %w", in.SourceZone, domain.ErrSameZoneTransfer)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("transfer has no items: %w", domain.ErrInvalidInput)
	}
	merged := make([]dto.TransferLine, 0, len(in.Lines))
	index := make(map[string]int, len(in.Lines))
	for _, line := range in.Lines {
		if line.ItemID == "" {
			return nil, fmt.Errorf("line without item: %w", domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("transfer %d: %w", line.Quantity, domain.ErrInvalidQuantity)
		}
		if i, ok := index[line.ItemID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

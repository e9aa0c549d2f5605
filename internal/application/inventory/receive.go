package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// Receive books a delivery as a new batch. The item is resolved by ID, then by name
// (case-insensitive); when neither matches a new item master is created.
func (uc *MovementUseCase) Receive(ctx context.Context, actor dto.Actor, in dto.ReceiveRequest) (*dto.ReceiveResponse, error) {
	expiry, err := entity.ParseDate(in.Expiry)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative: %w", domain.ErrInvalidInput)
	}
	if in.ParStock != nil && *in.ParStock < 0 {
		return nil, fmt.Errorf("par stock cannot be negative: %w", domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	l, settings, err := uc.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	category, err := receiveCategory(settings, in.Category)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var (
		resp    dto.ReceiveResponse
		created bool
	)
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, txRepo repository.TransactionRepository) error {
		item, err := resolveReceiveTarget(ctx, itemRepo, in)
		if err != nil {
			return err
		}
		if item == nil {
			item, err = newItemMaster(in, category, now)
			if err != nil {
				return err
			}
			created = true
		} else {
			applyReceiveDetails(item, in, category)
		}

		updated, batch, err := l.Receive(*item, in.Zone, expiry, in.Quantity)
		if err != nil {
			return err
		}
		updated.UpdatedAt = now
		if err := itemRepo.Save(ctx, &updated); err != nil {
			return err
		}

		tx := &entity.Transaction{
			ID:        entity.NewCode("RCV", 7),
			Timestamp: now,
			User:      actorName(actor.Name),
			Action:    entity.ActionReceive,
			Qty:       in.Quantity,
			ItemID:    updated.ID,
			ItemSKU:   updated.SKU,
			ItemName:  updated.Name,
			ItemUOM:   updated.UOM,
			DestZone:  in.Zone,
			BatchID:   batch.ID,
			Expiry:    batch.Expiry,
		}
		if err := txRepo.Append(ctx, tx); err != nil {
			return err
		}

		resp = dto.ReceiveResponse{
			Item:          dto.NewItemResponse(&updated),
			Created:       created,
			BatchID:       batch.ID,
			TransactionID: tx.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("item_id", resp.Item.ID).
		Str("sku", resp.Item.SKU).
		Str("batch_id", resp.BatchID).
		Str("zone", in.Zone).
		Int("qty", in.Quantity).
		Bool("created", created).
		Msg("stock received")
	uc.notify()
	return &resp, nil
}

func resolveReceiveTarget(ctx context.Context, repo repository.ItemRepository, in dto.ReceiveRequest) (*entity.Item, error) {
	if in.ItemID != "" {
		item, err := repo.GetByID(ctx, in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("item %s: %w", in.ItemID, domain.ErrNotFound)
		}
		return item, nil
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("item name is required: %w", domain.ErrInvalidInput)
	}
	return repo.FindByName(ctx, name)
}

func newItemMaster(in dto.ReceiveRequest, category string, now time.Time) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	uom := strings.TrimSpace(in.UOM)
	if name == "" || uom == "" {
		return nil, fmt.Errorf("name and unit of measure are required for a new item: %w", domain.ErrInvalidInput)
	}
	item := &entity.Item{
		ID:        uuid.New().String(),
		SKU:       entity.NewCode("ITEM", 5),
		Name:      name,
		Category:  category,
		UOM:       uom,
		UnitCost:  decimal.Zero,
		CreatedAt: now,
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.ParStock != nil {
		item.ParStock = *in.ParStock
	}
	if in.IsFastMoving != nil {
		item.IsFastMoving = *in.IsFastMoving
	}
	return item, nil
}

// applyReceiveDetails merges a delivery into an existing item. Only the category and the unit cost
// follow the delivery; par and fast-moving are edited through the item update.
func applyReceiveDetails(item *entity.Item, in dto.ReceiveRequest, category string) {
	if strings.TrimSpace(in.Category) != "" {
		item.Category = category
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
}

// receiveCategory checks the requested category against the configured set. A blank category
// falls back to the first configured one.
func receiveCategory(settings *entity.Settings, requested string) (string, error) {
	c := strings.TrimSpace(requested)
	if c == "" {
		if len(settings.Categories) > 0 {
			return settings.Categories[0], nil
		}
		return "", nil
	}
	if !settings.HasCategory(c) {
		return "", fmt.Errorf("category %q is not configured: %w", c, domain.ErrInvalidInput)
	}
	return c, nil
}

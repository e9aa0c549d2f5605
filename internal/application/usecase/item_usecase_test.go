package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

func (f *fixture) items() *usecase.ItemUseCase {
	return usecase.NewItemUseCase(f.store.Items(), f.store.Settings(), f.mu, f.notifier, zerolog.Nop())
}

func (f *fixture) saveItem(t *testing.T, id, name string, batches ...entity.Batch) {
	t.Helper()
	require.NoError(t, f.store.Items().Save(context.Background(), &entity.Item{
		ID: id, SKU: "ITEM-" + id, Name: name, UOM: "Pack", UnitCost: decimal.NewFromInt(3),
		ParStock: 5, Batches: batches, CreatedAt: time.Now(),
	}))
}

func TestItemUseCase_ListRefreshesAndFilters(t *testing.T) {
	f := newFixture(t)
	zone := usecase.DefaultZones[0]
	f.saveItem(t, "A1", "Bottled Water", entity.Batch{ID: "BAT-1", Quantity: 7, Zone: zone, Expiry: entity.NewDate(2026, 1, 1)})
	f.saveItem(t, "B2", "Coffee")

	all, err := f.items().List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	water, err := f.items().List(context.Background(), "water")
	require.NoError(t, err)
	require.Len(t, water.Items, 1)
	assert.Equal(t, 7, water.Items[0].StockByZone[zone])
	assert.Len(t, water.Items[0].StockByZone, len(usecase.DefaultZones), "every configured zone is present")
	assert.Equal(t, "2026-01-01", water.Items[0].EarliestExpiry)

	bySKU, err := f.items().List(context.Background(), "item-b2")
	require.NoError(t, err)
	require.Len(t, bySKU.Items, 1)
	assert.Equal(t, "Coffee", bySKU.Items[0].Name)
}

func TestItemUseCase_Update(t *testing.T) {
	f := newFixture(t)
	f.saveItem(t, "A1", "Bottled Water")
	f.saveItem(t, "B2", "Coffee")
	ctx := context.Background()

	name, par, cost := "Still Water", 12, decimal.RequireFromString("18.75")
	resp, err := f.items().Update(ctx, "A1", dto.UpdateItemRequest{Name: &name, ParStock: &par, UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, "Still Water", resp.Name)
	assert.Equal(t, 12, resp.ParStock)
	assert.Equal(t, "ITEM-A1", resp.SKU, "sku is immutable")
	assert.Equal(t, 1, f.notifier.Count())

	taken := "coffee"
	_, err = f.items().Update(ctx, "A1", dto.UpdateItemRequest{Name: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	empty := "  "
	_, err = f.items().Update(ctx, "A1", dto.UpdateItemRequest{UOM: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := -1
	_, err = f.items().Update(ctx, "A1", dto.UpdateItemRequest{ParStock: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.items().Update(ctx, "missing", dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_DeleteAndPrune(t *testing.T) {
	f := newFixture(t)
	zone := usecase.DefaultZones[0]
	f.saveItem(t, "A1", "Bottled Water",
		entity.Batch{ID: "BAT-1", Quantity: 0, Zone: zone},
		entity.Batch{ID: "BAT-2", Quantity: 4, Zone: zone},
	)
	ctx := context.Background()

	pruned, err := f.items().Prune(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, pruned.Batches, 1)
	assert.Equal(t, "BAT-2", pruned.Batches[0].ID)

	require.NoError(t, f.items().Delete(ctx, "A1"))
	_, err = f.items().GetByID(ctx, "A1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.items().Delete(ctx, "A1"), domain.ErrNotFound)
}

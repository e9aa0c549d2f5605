package inventory_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	zoneMain = "Main (On-site 25sqm)"
	zoneSat  = "Satellite (On-site 10sqm)"
)

var actor = dto.Actor{UserID: "u-1", Name: "R. Dela Cruz", Role: entity.RoleStaff}

type fixture struct {
	items    *MockItemRepository
	txs      *MockTransactionRepository
	settings *MockSettingsRepository
	guard    *MockGuard
	notifier *countingNotifier
	uc       *inventory.MovementUseCase

	saved    []entity.Item
	appended []*entity.Transaction
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		items:    new(MockItemRepository),
		txs:      new(MockTransactionRepository),
		settings: new(MockSettingsRepository),
		guard:    new(MockGuard),
		notifier: &countingNotifier{},
	}
	f.settings.On("Get", mock.Anything).Return(&entity.Settings{
		Zones:       []string{zoneMain, zoneSat},
		Categories:  []string{"Dry Goods", "Alcohol"},
		Departments: []string{"Housekeeping", "Kitchen"},
	}, nil).Maybe()

	runner := passthroughTxRunner{items: f.items, txs: f.txs}
	f.uc = inventory.NewMovementUseCase(runner, f.settings, &sync.Mutex{}, f.notifier, f.guard, zerolog.Nop())
	return f
}

func (f *fixture) expectSaves() {
	f.items.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		f.saved = append(f.saved, *args.Get(1).(*entity.Item))
	}).Return(nil)
}

func (f *fixture) expectAppend() {
	f.txs.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		f.appended = append(f.appended, args.Get(1).([]*entity.Transaction)...)
	}).Return(nil)
}

func date(s string) entity.Date {
	d, _ := entity.ParseDate(s)
	return d
}

func water() *entity.Item {
	return &entity.Item{
		ID: "item-water", SKU: "ITEM-WATER", Name: "Bottled Water", UOM: "Bottle",
		UnitCost: decimal.NewFromInt(10), ParStock: 10,
		Batches: []entity.Batch{
			{ID: "BAT-LATE", Expiry: date("2026-06-01"), Quantity: 10, Zone: zoneMain},
			{ID: "BAT-SOON", Expiry: date("2026-01-01"), Quantity: 4, Zone: zoneMain},
		},
	}
}

func soap() *entity.Item {
	return &entity.Item{
		ID: "item-soap", SKU: "ITEM-SOAP1", Name: "Guest Soap", UOM: "Piece",
		UnitCost: decimal.NewFromInt(3), ParStock: 5,
		Batches: []entity.Batch{
			{ID: "BAT-S1", Expiry: date("2027-01-01"), Quantity: 2, Zone: zoneSat},
		},
	}
}

func signedIssue(lines ...dto.IssueLine) dto.IssueRequest {
	return dto.IssueRequest{
		Lines:        lines,
		Department:   "Housekeeping",
		ReceiverName: "M. Santos",
		Signature:    "data:image/png;base64,iVBORw0KGgo=",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_CreatesItemWhenNameUnknown(t *testing.T) {
	f := newFixture(t)
	f.items.On("FindByName", mock.Anything, "Bottled Water").Return(nil, nil).Once()
	f.expectSaves()
	f.expectAppend()

	cost := decimal.RequireFromString("12.50")
	resp, err := f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "  Bottled Water ", Category: "Dry Goods", UOM: "Bottle", UnitCost: &cost,
		Zone: zoneMain, Expiry: "2026-03-01", Quantity: 24,
	})
	require.NoError(t, err)

	assert.True(t, resp.Created)
	assert.Regexp(t, `^ITEM-[0-9A-F]{5}$`, resp.Item.SKU)
	assert.Regexp(t, `^BAT-[0-9A-F]{5}$`, resp.BatchID)
	assert.Equal(t, 24, resp.Item.StockByZone[zoneMain])
	assert.Equal(t, 0, resp.Item.StockByZone[zoneSat])
	assert.Equal(t, "2026-03-01", resp.Item.EarliestExpiry)

	require.Len(t, f.saved, 1)
	assert.Equal(t, "Bottled Water", f.saved[0].Name)
	assert.True(t, cost.Equal(f.saved[0].UnitCost))

	require.Len(t, f.appended, 1)
	tx := f.appended[0]
	assert.Equal(t, entity.ActionReceive, tx.Action)
	assert.Equal(t, resp.BatchID, tx.BatchID)
	assert.Equal(t, zoneMain, tx.DestZone)
	assert.Equal(t, "R. Dela Cruz", tx.User)
	assert.Equal(t, 1, f.notifier.n)
}

func TestReceive_AppendsToExistingItem(t *testing.T) {
	f := newFixture(t)
	f.items.On("FindByName", mock.Anything, "bottled water").Return(water(), nil).Once()
	f.expectSaves()
	f.expectAppend()

	cost := decimal.NewFromInt(11)
	resp, err := f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "bottled water", UnitCost: &cost, Zone: zoneSat, Expiry: "2025-12-01", Quantity: 6,
	})
	require.NoError(t, err)

	assert.False(t, resp.Created)
	assert.Equal(t, "item-water", resp.Item.ID)
	assert.Len(t, resp.Item.Batches, 3)
	assert.Equal(t, 20, resp.Item.TotalStock)
	assert.Equal(t, "2025-12-01", resp.Item.EarliestExpiry)
	assert.True(t, cost.Equal(f.saved[0].UnitCost))
	assert.Equal(t, "Bottle", f.saved[0].UOM, "unit of measure is kept")
}

func TestReceive_MergeLeavesParAndFastMovingAlone(t *testing.T) {
	f := newFixture(t)
	existing := water()
	existing.Category = "Alcohol"
	f.items.On("FindByName", mock.Anything, "Bottled Water").Return(existing, nil).Once()
	f.expectSaves()
	f.expectAppend()

	par, fast := 50, true
	_, err := f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "Bottled Water", ParStock: &par, IsFastMoving: &fast,
		Zone: zoneMain, Expiry: "2026-09-01", Quantity: 2,
	})
	require.NoError(t, err)

	require.Len(t, f.saved, 1)
	assert.Equal(t, 10, f.saved[0].ParStock)
	assert.False(t, f.saved[0].IsFastMoving)
	assert.Equal(t, "Alcohol", f.saved[0].Category, "a blank category keeps the existing one")
}

func TestReceive_BlankCategoryUsesFirstConfigured(t *testing.T) {
	f := newFixture(t)
	f.items.On("FindByName", mock.Anything, "Hand Towel").Return(nil, nil).Once()
	f.expectSaves()
	f.expectAppend()

	par := 8
	resp, err := f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "Hand Towel", Category: "  ", UOM: "Piece", ParStock: &par,
		Zone: zoneMain, Expiry: "2027-01-01", Quantity: 5,
	})
	require.NoError(t, err)
	assert.True(t, resp.Created)

	require.Len(t, f.saved, 1)
	assert.Equal(t, "Dry Goods", f.saved[0].Category)
	assert.Equal(t, 8, f.saved[0].ParStock)
}

func TestReceive_RejectsUnknownCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "Hand Towel", Category: "Linen", UOM: "Piece",
		Zone: zoneMain, Expiry: "2027-01-01", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.items.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	f.items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.notifier.n)
}

func TestReceive_RejectsUnconfiguredZone(t *testing.T) {
	f := newFixture(t)
	f.items.On("FindByName", mock.Anything, "Bottled Water").Return(water(), nil).Once()

	_, err := f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "Bottled Water", Zone: ledger.GlobalZone, Expiry: "2026-01-01", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidZone)
	f.items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.notifier.n)
}

func TestReceive_RejectsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "Bottled Water", Zone: zoneMain, Expiry: "31/12/2026", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.items.On("FindByName", mock.Anything, "Towels").Return(nil, nil).Once()
	_, err = f.uc.Receive(context.Background(), actor, dto.ReceiveRequest{
		Name: "Towels", Zone: zoneMain, Expiry: "2026-01-01", Quantity: 3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "a new item needs a unit of measure")
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_AllocatesEveryLineUnderOneReceipt(t *testing.T) {
	f := newFixture(t)
	f.items.On("GetByID", mock.Anything, "item-water").Return(water(), nil).Once()
	f.items.On("GetByID", mock.Anything, "item-soap").Return(soap(), nil).Once()
	f.expectSaves()
	f.expectAppend()
	f.guard.On("Claim", mock.Anything, "issue:checkout-1").Return(true, nil).Once()

	resp, err := f.uc.Issue(context.Background(), actor, signedIssue(
		dto.IssueLine{ItemID: "item-water", Zone: zoneMain, Quantity: 3},
		dto.IssueLine{ItemID: "item-soap", Zone: zoneSat, Quantity: 2},
		dto.IssueLine{ItemID: "item-water", Zone: zoneMain, Quantity: 3},
	), "checkout-1")
	require.NoError(t, err)

	assert.Regexp(t, `^TX-[0-9A-F]{7}$`, resp.ReceiptID)
	require.Len(t, resp.Transactions, 2, "lines for the same item and zone are merged")
	assert.Equal(t, 6, resp.Transactions[0].Qty)
	assert.True(t, strings.HasPrefix(resp.Transactions[0].ID, resp.ReceiptID+"-ITEM-WATER-"))
	assert.Equal(t, "Housekeeping", resp.Transactions[0].Department)
	assert.True(t, resp.Transactions[0].HasSignature)

	require.Len(t, f.saved, 2)
	// FEFO: the soon batch (4) is drained first, then 2 from the late batch.
	assert.Equal(t, 8, f.saved[0].Batches[0].Quantity)
	assert.Equal(t, 0, f.saved[0].Batches[1].Quantity)
	assert.Equal(t, 8, f.saved[0].StockByZone[zoneMain])
	assert.Equal(t, 0, f.saved[1].TotalQuantity())

	require.Len(t, f.appended, 2)
	for _, tx := range f.appended {
		assert.Equal(t, resp.ReceiptID, tx.ReceiptID)
		assert.Equal(t, entity.ActionIssue, tx.Action)
		assert.Equal(t, "M. Santos", tx.ReceiverName)
	}
	f.guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	assert.Equal(t, 1, f.notifier.n)
}

func TestIssue_FailingLineCommitsNothing(t *testing.T) {
	f := newFixture(t)
	f.items.On("GetByID", mock.Anything, "item-water").Return(water(), nil).Once()
	f.items.On("GetByID", mock.Anything, "item-soap").Return(soap(), nil).Once()
	f.guard.On("Claim", mock.Anything, "issue:checkout-2").Return(true, nil).Once()
	f.guard.On("Release", mock.Anything, "issue:checkout-2").Return(nil).Once()

	_, err := f.uc.Issue(context.Background(), actor, signedIssue(
		dto.IssueLine{ItemID: "item-water", Zone: zoneMain, Quantity: 1},
		dto.IssueLine{ItemID: "item-soap", Zone: zoneSat, Quantity: 3},
	), "checkout-2")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	f.items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.txs.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.guard.AssertExpectations(t)
	assert.Equal(t, 0, f.notifier.n)
}

func TestIssue_RepeatedKeyIsRejected(t *testing.T) {
	f := newFixture(t)
	f.guard.On("Claim", mock.Anything, "issue:checkout-3").Return(false, nil).Once()

	_, err := f.uc.Issue(context.Background(), actor, signedIssue(
		dto.IssueLine{ItemID: "item-water", Zone: zoneMain, Quantity: 1},
	), "checkout-3")

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.items.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestIssue_Validation(t *testing.T) {
	f := newFixture(t)
	line := dto.IssueLine{ItemID: "item-water", Zone: zoneMain, Quantity: 1}

	noSignature := signedIssue(line)
	noSignature.Signature = ""
	_, err := f.uc.Issue(context.Background(), actor, noSignature, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noReceiver := signedIssue(line)
	noReceiver.ReceiverName = "  "
	_, err = f.uc.Issue(context.Background(), actor, noReceiver, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Issue(context.Background(), actor, signedIssue(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Issue(context.Background(), actor, signedIssue(
		dto.IssueLine{ItemID: "item-water", Zone: ledger.GlobalZone, Quantity: 1},
	), "")
	assert.ErrorIs(t, err, domain.ErrInvalidZone)

	_, err = f.uc.Issue(context.Background(), actor, signedIssue(
		dto.IssueLine{ItemID: "item-water", Zone: zoneMain, Quantity: 0},
	), "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	unknownDept := signedIssue(line)
	unknownDept.Department = "Casino"
	_, err = f.uc.Issue(context.Background(), actor, unknownDept, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_RelocatesAndLogsPerItem(t *testing.T) {
	f := newFixture(t)
	f.items.On("GetByID", mock.Anything, "item-water").Return(water(), nil).Once()
	f.expectSaves()
	f.expectAppend()

	resp, err := f.uc.Transfer(context.Background(), actor, dto.TransferRequest{
		SourceZone: zoneMain,
		DestZone:   zoneSat,
		Lines: []dto.TransferLine{
			{ItemID: "item-water", Quantity: 5},
			{ItemID: "item-water", Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Transactions, 1)
	assert.Regexp(t, `^TRF-[0-9A-F]{7}$`, resp.Transactions[0].ID)
	assert.Equal(t, 6, resp.Transactions[0].Qty)
	assert.Equal(t, zoneMain, resp.Transactions[0].SourceZone)
	assert.Equal(t, zoneSat, resp.Transactions[0].DestZone)

	require.Len(t, f.saved, 1)
	item := f.saved[0]
	assert.Equal(t, 8, item.StockByZone[zoneMain])
	assert.Equal(t, 6, item.StockByZone[zoneSat])
	assert.Equal(t, 14, item.TotalQuantity())
	assert.Equal(t, entity.Batch{ID: "BAT-SOON", Expiry: date("2026-01-01"), Quantity: 4, Zone: zoneSat}, item.Batches[2])
	assert.Equal(t, entity.Batch{ID: "BAT-LATE", Expiry: date("2026-06-01"), Quantity: 2, Zone: zoneSat}, item.Batches[3])
}

func TestTransfer_RejectsSameZoneAndShortStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Transfer(context.Background(), actor, dto.TransferRequest{
		SourceZone: zoneMain, DestZone: zoneMain,
		Lines: []dto.TransferLine{{ItemID: "item-water", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrSameZoneTransfer)

	f.items.On("GetByID", mock.Anything, "item-water").Return(water(), nil).Once()
	f.items.On("GetByID", mock.Anything, "item-soap").Return(soap(), nil).Once()
	_, err = f.uc.Transfer(context.Background(), actor, dto.TransferRequest{
		SourceZone: zoneMain, DestZone: zoneSat,
		Lines: []dto.TransferLine{{ItemID: "item-water", Quantity: 1}, {ItemID: "item-soap", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "soap holds nothing in the main zone")
	f.items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Package analytics builds the warehouse dashboard.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
	"github.com/jhoicas/hotel-warehouse/pkg/numfmt"
)

const dashboardRecentTransactions = 5

// DashboardUseCase computes the fleet-wide stock summary.
type DashboardUseCase struct {
	itemRepo     repository.ItemRepository
	txRepo       repository.TransactionRepository
	settingsRepo repository.SettingsRepository
	horizonDays  int
	now          func() time.Time
}

// NewDashboardUseCase builds the use case. horizonDays <= 0 uses the default 90-day horizon.
func NewDashboardUseCase(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	settingsRepo repository.SettingsRepository,
	horizonDays int,
) *DashboardUseCase {
	if horizonDays <= 0 {
		horizonDays = ledger.DefaultExpiryHorizonDays
	}
	return &DashboardUseCase{
		itemRepo:     itemRepo,
		txRepo:       txRepo,
		settingsRepo: settingsRepo,
		horizonDays:  horizonDays,
		now:          time.Now,
	}
}

// GetSummary loads items, settings and the latest transactions in parallel and derives the KPIs.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type itemsResult struct {
		items []*entity.Item
		err   error
	}
	type settingsResult struct {
		settings *entity.Settings
		err      error
	}
	type recentResult struct {
		txs []*entity.Transaction
		err error
	}

	itemsCh := make(chan itemsResult, 1)
	settingsCh := make(chan settingsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		items, err := uc.itemRepo.List(ctx)
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		s, err := uc.settingsRepo.Get(ctx)
		settingsCh <- settingsResult{s, err}
	}()
	go func() {
		txs, _, err := uc.txRepo.List(ctx, repository.TransactionFilter{Limit: dashboardRecentTransactions})
		recentCh <- recentResult{txs, err}
	}()

	itemsRes := <-itemsCh
	settingsRes := <-settingsCh
	recentRes := <-recentCh

	if itemsRes.err != nil {
		return nil, fmt.Errorf("dashboard: items: %w", itemsRes.err)
	}
	if settingsRes.err != nil {
		return nil, fmt.Errorf("dashboard: settings: %w", settingsRes.err)
	}
	if settingsRes.settings == nil {
		return nil, fmt.Errorf("dashboard: settings not initialised: %w", domain.ErrNotFound)
	}
	if recentRes.err != nil {
		return nil, fmt.Errorf("dashboard: recent transactions: %w", recentRes.err)
	}

	l := ledger.New(settingsRes.settings.Zones)
	items := make([]entity.Item, 0, len(itemsRes.items))
	for _, it := range itemsRes.items {
		items = append(items, l.Refresh(*it))
	}

	value := ledger.StockValue(items)
	units := ledger.TotalUnits(items)

	below := ledger.BelowPar(items)
	alerts := make([]dto.StockAlertDTO, 0, len(below))
	for _, it := range below {
		alerts = append(alerts, dto.StockAlertDTO{
			ItemID: it.ID, SKU: it.SKU, Name: it.Name, UOM: it.UOM,
			TotalStock: it.TotalQuantity(), ParStock: it.ParStock,
		})
	}

	soon := ledger.ExpiringSoon(items, uc.now(), uc.horizonDays)
	expiring := make([]dto.ExpiringDTO, 0, len(soon))
	for _, e := range soon {
		expiring = append(expiring, dto.ExpiringDTO{
			ItemID: e.Item.ID, SKU: e.Item.SKU, Name: e.Item.Name,
			EarliestExpiry: e.Item.EarliestExpiry.String(), DaysLeft: e.DaysLeft,
		})
	}

	totals := l.ZoneTotals(items)
	zones := make([]dto.ZoneTotalDTO, 0, len(totals))
	for _, z := range l.Zones() {
		zones = append(zones, dto.ZoneTotalDTO{Zone: z, ShortName: entity.ShortZoneName(z), Units: totals[z]})
		delete(totals, z)
	}
	// Stock still sitting in zones that were removed from the settings.
	removed := make([]string, 0, len(totals))
	for z, q := range totals {
		if q > 0 {
			removed = append(removed, z)
		}
	}
	sort.Strings(removed)
	for _, z := range removed {
		zones = append(zones, dto.ZoneTotalDTO{Zone: z, ShortName: entity.ShortZoneName(z), Units: totals[z]})
	}

	return &dto.DashboardSummaryDTO{
		TotalStockValue:      value.Round(2),
		TotalStockValueLabel: numfmt.Money(value),
		TotalUnits:           units,
		TotalUnitsLabel:      numfmt.Units(units),
		ItemCount:            len(items),
		BelowPar:             alerts,
		ExpiringSoon:         expiring,
		ExpiryHorizonDays:    uc.horizonDays,
		Zones:                zones,
		RecentTransactions:   dto.NewTransactionResponses(recentRes.txs),
	}, nil
}

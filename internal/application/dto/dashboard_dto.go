package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO response of GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalStockValue      decimal.Decimal `json:"total_stock_value"`
	TotalStockValueLabel string          `json:"total_stock_value_label"` // formatted for display
	TotalUnits           int             `json:"total_units"`
	TotalUnitsLabel      string          `json:"total_units_label"`
	ItemCount            int             `json:"item_count"`

	BelowPar          []StockAlertDTO `json:"below_par"`
	ExpiringSoon      []ExpiringDTO   `json:"expiring_soon"`
	ExpiryHorizonDays int             `json:"expiry_horizon_days"`

	Zones              []ZoneTotalDTO        `json:"zones"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// StockAlertDTO an item under its par level.
type StockAlertDTO struct {
	ItemID     string `json:"item_id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	UOM        string `json:"uom"`
	TotalStock int    `json:"total_stock"`
	ParStock   int    `json:"par_stock"`
}

// ExpiringDTO an item whose earliest expiry falls inside the horizon.
type ExpiringDTO struct {
	ItemID         string `json:"item_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	EarliestExpiry string `json:"earliest_expiry"`
	DaysLeft       int    `json:"days_left"`
}

// ZoneTotalDTO units held in one zone across all items.
type ZoneTotalDTO struct {
	Zone      string `json:"zone"`
	ShortName string `json:"short_name"`
	Units     int    `json:"units"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// BatchDTO is one zone-located batch record.
type BatchDTO struct {
	ID       string `json:"id"`
	Expiry   string `json:"expiry"`
	Quantity int    `json:"quantity"`
	Zone     string `json:"zone"`
}

// ItemResponse is an item master with its derived stock view.
type ItemResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	UOM            string          `json:"uom"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ParStock       int             `json:"par_stock"`
	IsFastMoving   bool            `json:"is_fast_moving"`
	TotalStock     int             `json:"total_stock"`
	IsBelowPar     bool            `json:"is_below_par"`
	StockByZone    map[string]int  `json:"stock_by_zone"`
	EarliestExpiry string          `json:"earliest_expiry"`
	Batches        []BatchDTO      `json:"batches"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ItemListResponse is the stock list.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// UpdateItemRequest edits descriptive fields. SKU and batches cannot be changed here.
type UpdateItemRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	UOM          *string          `json:"uom"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	ParStock     *int             `json:"par_stock"`
	IsFastMoving *bool            `json:"is_fast_moving"`
}

// NewItemResponse maps a refreshed item to its response shape.
func NewItemResponse(it *entity.Item) ItemResponse {
	batches := make([]BatchDTO, 0, len(it.Batches))
	for _, b := range it.Batches {
		batches = append(batches, BatchDTO{ID: b.ID, Expiry: b.Expiry.String(), Quantity: b.Quantity, Zone: b.Zone})
	}
	return ItemResponse{
		ID:             it.ID,
		SKU:            it.SKU,
		Name:           it.Name,
		Category:       it.Category,
		UOM:            it.UOM,
		UnitCost:       it.UnitCost,
		ParStock:       it.ParStock,
		IsFastMoving:   it.IsFastMoving,
		TotalStock:     it.TotalQuantity(),
		IsBelowPar:     it.IsBelowPar(),
		StockByZone:    it.StockByZone,
		EarliestExpiry: it.EarliestExpiry.String(),
		Batches:        batches,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}

// Package export writes the inventory and release reports and the JSON backup.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// ExportUseCase renders reports from the current store contents.
type ExportUseCase struct {
	itemRepo     repository.ItemRepository
	txRepo       repository.TransactionRepository
	settingsRepo repository.SettingsRepository
	userRepo     repository.UserRepository
	loc          *time.Location
	now          func() time.Time
}

// NewExportUseCase builds the use case. Report dates and times are rendered in loc (nil = local time).
func NewExportUseCase(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	settingsRepo repository.SettingsRepository,
	userRepo repository.UserRepository,
	loc *time.Location,
) *ExportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ExportUseCase{
		itemRepo:     itemRepo,
		txRepo:       txRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// FileName returns the download name of a report, e.g. Inventory_2025-03-04.csv.
func (uc *ExportUseCase) FileName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, uc.now().In(uc.loc).Format("2006-01-02"), ext)
}

// InventoryCSV writes one row per item with global, par and per-zone stock.
func (uc *ExportUseCase) InventoryCSV(ctx context.Context, w io.Writer) error {
	settings, err := uc.settings(ctx)
	if err != nil {
		return err
	}
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return err
	}
	l := ledger.New(settings.Zones)

	header := []string{"SKU", "Item Name", "Category", "UOM", "Unit Cost", "Global Stock", "PAR Stock"}
	for _, z := range settings.Zones {
		header = append(header, entity.ShortZoneName(z)+" Stock")
	}
	header = append(header, "Earliest Expiry")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write inventory header: %w", err)
	}
	for _, it := range items {
		refreshed := l.Refresh(*it)
		row := []string{
			refreshed.SKU,
			refreshed.Name,
			refreshed.Category,
			refreshed.UOM,
			refreshed.UnitCost.StringFixed(2),
			strconv.Itoa(refreshed.TotalQuantity()),
			strconv.Itoa(refreshed.ParStock),
		}
		for _, z := range settings.Zones {
			row = append(row, strconv.Itoa(refreshed.StockByZone[z]))
		}
		row = append(row, refreshed.EarliestExpiry.String())
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write inventory row %s: %w", refreshed.SKU, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReleasesCSV writes every ISSUE transaction, newest first.
func (uc *ExportUseCase) ReleasesCSV(ctx context.Context, w io.Writer) error {
	txs, _, err := uc.txRepo.List(ctx, repository.TransactionFilter{Action: entity.ActionIssue})
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Time", "SKU", "Item Name", "Quantity", "Unit", "Department", "Receiver", "Transaction ID"}); err != nil {
		return fmt.Errorf("write releases header: %w", err)
	}
	for _, tx := range txs {
		ts := tx.Timestamp.In(uc.loc)
		row := []string{
			ts.Format("2006-01-02"),
			ts.Format("15:04:05"),
			tx.ItemSKU,
			tx.ItemName,
			strconv.Itoa(tx.Qty),
			orNA(tx.ItemUOM),
			orNA(tx.Department),
			orNA(tx.ReceiverName),
			tx.ID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write release row %s: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Backup is the full JSON export. The manager passcode is never included.
type Backup struct {
	Inventory    []dto.ItemResponse  `json:"inventory"`
	Transactions []BackupTransaction `json:"transactions"`
	Users        []dto.UserResponse  `json:"users"`
	Config       BackupConfig        `json:"config"`
	ExportedAt   time.Time           `json:"exported_at"`
}

// BackupTransaction is a log record including its signature image.
type BackupTransaction struct {
	dto.TransactionResponse
	Signature string `json:"signature,omitempty"`
}

// BackupConfig the configured sets.
type BackupConfig struct {
	Categories  []string `json:"categories"`
	Departments []string `json:"departments"`
	Zones       []string `json:"zones"`
}

// BuildBackup collects the backup document.
func (uc *ExportUseCase) BuildBackup(ctx context.Context) (*Backup, error) {
	settings, err := uc.settings(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, _, err := uc.txRepo.List(ctx, repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	l := ledger.New(settings.Zones)
	b := &Backup{
		Inventory:    make([]dto.ItemResponse, 0, len(items)),
		Transactions: make([]BackupTransaction, 0, len(txs)),
		Users:        make([]dto.UserResponse, 0, len(users)),
		Config: BackupConfig{
			Categories:  settings.Categories,
			Departments: settings.Departments,
			Zones:       settings.Zones,
		},
		ExportedAt: uc.now().UTC(),
	}
	for _, it := range items {
		refreshed := l.Refresh(*it)
		b.Inventory = append(b.Inventory, dto.NewItemResponse(&refreshed))
	}
	for _, tx := range txs {
		b.Transactions = append(b.Transactions, BackupTransaction{
			TransactionResponse: dto.NewTransactionResponse(tx),
			Signature:           tx.Signature,
		})
	}
	for _, u := range users {
		b.Users = append(b.Users, dto.UserResponse{ID: u.ID, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	return b, nil
}

// BackupJSON writes the backup as indented JSON.
func (uc *ExportUseCase) BackupJSON(ctx context.Context, w io.Writer) error {
	b, err := uc.BuildBackup(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

func (uc *ExportUseCase) settings(ctx context.Context) (*entity.Settings, error) {
	s, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("settings not initialised: %w", domain.ErrNotFound)
	}
	return s, nil
}

func orNA(s string) string {
	if s == "" {
		return entity.NotAvailable
	}
	return s
}

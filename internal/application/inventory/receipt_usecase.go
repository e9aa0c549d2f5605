package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// ReceiptUseCase renders release receipts from the logged ISSUE lines.
type ReceiptUseCase struct {
	txRepo       repository.TransactionRepository
	generator    ReceiptGenerator
	propertyName string
}

// NewReceiptUseCase builds the use case.
func NewReceiptUseCase(txRepo repository.TransactionRepository, generator ReceiptGenerator, propertyName string) *ReceiptUseCase {
	return &ReceiptUseCase{txRepo: txRepo, generator: generator, propertyName: propertyName}
}

// GetReceipt collects the lines of one release.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, receiptID string) (*Receipt, error) {
	txs, _, err := uc.txRepo.List(ctx, repository.TransactionFilter{ReceiptID: receiptID, Action: entity.ActionIssue})
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, domain.ErrNotFound)
	}
	// The log is newest first; lines of one release share a timestamp, keep cart order.
	first := txs[len(txs)-1]
	r := &Receipt{
		ID:           receiptID,
		PropertyName: uc.propertyName,
		IssuedAt:     first.Timestamp,
		ReleasedBy:   first.User,
		Department:   first.Department,
		ReceiverName: first.ReceiverName,
		Signature:    first.Signature,
	}
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		r.Lines = append(r.Lines, ReceiptLine{SKU: tx.ItemSKU, Name: tx.ItemName, Quantity: tx.Qty, UOM: tx.ItemUOM})
	}
	return r, nil
}

// RenderReceipt returns the printable receipt document.
func (uc *ReceiptUseCase) RenderReceipt(ctx context.Context, receiptID string) ([]byte, error) {
	r, err := uc.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceipt(ctx, r)
}

package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// Issue releases a cart of items to a department. Every line is allocated FEFO on a working copy;
// if any line fails nothing is committed. All lines share one receipt id.
//
// idempotencyKey is optional. A repeated key is rejected with domain.ErrConflict.
func (uc *MovementUseCase) Issue(ctx context.Context, actor dto.Actor, in dto.IssueRequest, idempotencyKey string) (*dto.IssueResponse, error) {
	lines, err := normalizeIssue(in)
	if err != nil {
		return nil, err
	}

	if idempotencyKey != "" && uc.guard != nil {
		claimed, err := uc.guard.Claim(ctx, "issue:"+idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("claim idempotency key: %w", err)
		}
		if !claimed {
			return nil, fmt.Errorf("release %q already submitted: %w", idempotencyKey, domain.ErrConflict)
		}
	}

	resp, err := uc.issue(ctx, actor, in, lines)
	if err != nil {
		if idempotencyKey != "" && uc.guard != nil {
			if rerr := uc.guard.Release(ctx, "issue:"+idempotencyKey); rerr != nil {
				uc.log.Warn().Err(rerr).Str("key", idempotencyKey).Msg("release idempotency key")
			}
		}
		return nil, err
	}
	return resp, nil
}

func (uc *MovementUseCase) issue(ctx context.Context, actor dto.Actor, in dto.IssueRequest, lines []dto.IssueLine) (*dto.IssueResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	l, settings, err := uc.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	department := strings.TrimSpace(in.Department)
	if !settings.HasDepartment(department) {
		return nil, fmt.Errorf("department %q is not configured: %w", department, domain.ErrInvalidInput)
	}

	now := uc.now()
	receiptID := entity.NewCode("TX", 7)
	var txs []*entity.Transaction

	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, txRepo repository.TransactionRepository) error {
		work := make(map[string]*entity.Item, len(lines))
		order := make([]string, 0, len(lines))
		for _, line := range lines {
			item, err := loadItem(ctx, itemRepo, work, line.ItemID)
			if err != nil {
				return err
			}
			if !contains(order, line.ItemID) {
				order = append(order, line.ItemID)
			}
			updated, err := l.Allocate(*item, line.Zone, line.Quantity)
			if err != nil {
				return fmt.Errorf("issue %s from %q: %w", item.SKU, line.Zone, err)
			}
			work[line.ItemID] = &updated

			txs = append(txs, &entity.Transaction{
				ID:           fmt.Sprintf("%s-%s-%s", receiptID, updated.SKU, shortSuffix()),
				ReceiptID:    receiptID,
				Timestamp:    now,
				User:         actorName(actor.Name),
				Action:       entity.ActionIssue,
				Qty:          line.Quantity,
				ItemID:       updated.ID,
				ItemSKU:      updated.SKU,
				ItemName:     updated.Name,
				ItemUOM:      updated.UOM,
				DestZone:     line.Zone,
				Department:   department,
				ReceiverName: strings.TrimSpace(in.ReceiverName),
				Signature:    in.Signature,
			})
		}
		for _, id := range order {
			item := work[id]
			item.UpdatedAt = now
			if err := itemRepo.Save(ctx, item); err != nil {
				return err
			}
		}
		return txRepo.Append(ctx, txs...)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("receipt_id", receiptID).
		Str("department", department).
		Str("receiver", in.ReceiverName).
		Int("lines", len(txs)).
		Msg("stock issued")
	uc.notify()
	return &dto.IssueResponse{ReceiptID: receiptID, Transactions: dto.NewTransactionResponses(txs)}, nil
}

// normalizeIssue validates a cart and merges lines for the same item and zone.
func normalizeIssue(in dto.IssueRequest) ([]dto.IssueLine, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("release has no items: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ReceiverName) == "" {
		return nil, fmt.Errorf("receiver name is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Signature) == "" {
		return nil, fmt.Errorf("receiver signature is required: %w", domain.ErrInvalidInput)
	}
	merged := make([]dto.IssueLine, 0, len(in.Lines))
	index := make(map[[2]string]int, len(in.Lines))
	for _, line := range in.Lines {
		if line.ItemID == "" {
			return nil, fmt.Errorf("line without item: %w", domain.ErrInvalidInput)
		}
		if line.Zone == "" || line.Zone == ledger.GlobalZone {
			return nil, fmt.Errorf("select a specific zone to issue from: %w", domain.ErrInvalidZone)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("issue %d: %w", line.Quantity, domain.ErrInvalidQuantity)
		}
		key := [2]string{line.ItemID, line.Zone}
		if i, ok := index[key]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

func shortSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:3]
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

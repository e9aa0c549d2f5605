package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// AllDepartments is the history filter value meaning "no department filter".
const AllDepartments = "All Departments"

// HistoryUseCase lists the transaction log.
type HistoryUseCase struct {
	repo repository.TransactionRepository
}

// NewHistoryUseCase builds the use case.
func NewHistoryUseCase(repo repository.TransactionRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List returns one page of the log, newest first.
func (uc *HistoryUseCase) List(ctx context.Context, in dto.HistoryRequest) (*dto.HistoryResponse, error) {
	in.DefaultPage()
	dept := strings.TrimSpace(in.Department)
	if dept == AllDepartments {
		dept = ""
	}
	txs, total, err := uc.repo.List(ctx, repository.TransactionFilter{
		Search:     strings.TrimSpace(in.Search),
		Department: dept,
		Action:     strings.ToUpper(strings.TrimSpace(in.Action)),
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.HistoryResponse{
		Items: dto.NewTransactionResponses(txs),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

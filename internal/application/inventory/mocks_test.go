package inventory_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Save(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*entity.Item)
	return it, args.Error(1)
}

func (m *MockItemRepository) FindByName(ctx context.Context, name string) (*entity.Item, error) {
	args := m.Called(ctx, name)
	it, _ := args.Get(0).(*entity.Item)
	return it, args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context) ([]*entity.Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*entity.Item)
	return items, args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Append(ctx context.Context, txs ...*entity.Transaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	args := m.Called(ctx, filter)
	txs, _ := args.Get(0).([]*entity.Transaction)
	return txs, args.Int(1), args.Error(2)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*entity.Settings)
	return s, args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *entity.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) Claim(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockReceiptGenerator struct {
	mock.Mock
}

func (m *MockReceiptGenerator) GenerateReceipt(ctx context.Context, r *inventory.Receipt) ([]byte, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

// passthroughTxRunner hands the mocks straight to fn.
type passthroughTxRunner struct {
	items repository.ItemRepository
	txs   repository.TransactionRepository
}

func (r passthroughTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.TransactionRepository) error) error {
	return fn(r.items, r.txs)
}

type countingNotifier struct{ n int }

func (c *countingNotifier) Notify() { c.n++ }

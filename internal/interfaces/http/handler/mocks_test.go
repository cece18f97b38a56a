package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inbound"
	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKUs(ctx context.Context, skus []string) ([]catalog.Product, error) {
	args := m.Called(ctx, skus)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	args := m.Called(ctx, barcode)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOutboundRepository implements outbound.OutboundRepository for testing
type MockOutboundRepository struct {
	mock.Mock
}

func (m *MockOutboundRepository) FindByID(ctx context.Context, id uint) (*outbound.OutboundHeader, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.OutboundHeader), args.Error(1)
}

func (m *MockOutboundRepository) FindByInvoiceNo(ctx context.Context, invoiceNo string) (*outbound.OutboundHeader, error) {
	args := m.Called(ctx, invoiceNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.OutboundHeader), args.Error(1)
}

func (m *MockOutboundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]outbound.OutboundHeader, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]outbound.OutboundHeader), args.Error(1)
}

func (m *MockOutboundRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOutboundRepository) Save(ctx context.Context, header *outbound.OutboundHeader) error {
	args := m.Called(ctx, header)
	return args.Error(0)
}

func (m *MockOutboundRepository) SaveItem(ctx context.Context, item *outbound.OutboundItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockInboundRepository implements inbound.InboundRepository for testing
type MockInboundRepository struct {
	mock.Mock
}

func (m *MockInboundRepository) FindByID(ctx context.Context, id uint) (*inbound.InboundHeader, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.InboundHeader), args.Error(1)
}

func (m *MockInboundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inbound.InboundHeader, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inbound.InboundHeader), args.Error(1)
}

func (m *MockInboundRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInboundRepository) Save(ctx context.Context, header *inbound.InboundHeader) error {
	args := m.Called(ctx, header)
	return args.Error(0)
}

// MockStockRepository implements stock.StockRepository for testing
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindBySKU(ctx context.Context, sku string) (*stock.StockCurrent, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockCurrent), args.Error(1)
}

func (m *MockStockRepository) FindBySKUForUpdate(ctx context.Context, sku string) (*stock.StockCurrent, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockCurrent), args.Error(1)
}

func (m *MockStockRepository) FindBySKUsForUpdate(ctx context.Context, skus []string) ([]stock.StockCurrent, error) {
	args := m.Called(ctx, skus)
	return args.Get(0).([]stock.StockCurrent), args.Error(1)
}

func (m *MockStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.StockCurrent, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stock.StockCurrent), args.Error(1)
}

func (m *MockStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, row *stock.StockCurrent) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// MockLedgerRepository implements stock.LedgerRepository for testing
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, entry *stock.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) CreateBatch(ctx context.Context, entries []*stock.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindBySKU(ctx context.Context, sku string, filter shared.Filter) ([]stock.LedgerEntry, error) {
	args := m.Called(ctx, sku, filter)
	return args.Get(0).([]stock.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CountBySKU(ctx context.Context, sku string) (int64, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SumBySKU(ctx context.Context, sku string) (int64, int64, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

package stock

import (
	"context"
	"errors"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

// StockService serves the stock status page: snapshot lookups, barcode
// scans, paginated listings, per-SKU ledger history, and manual count
// adjustments.
type StockService struct {
	scope       TransactionScope
	stockRepo   stock.StockRepository
	ledgerRepo  stock.LedgerRepository
	productRepo catalog.ProductRepository
}

// NewStockService creates a new StockService
func NewStockService(
	scope TransactionScope,
	stockRepo stock.StockRepository,
	ledgerRepo stock.LedgerRepository,
	productRepo catalog.ProductRepository,
) *StockService {
	return &StockService{
		scope:       scope,
		stockRepo:   stockRepo,
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
	}
}

// GetBySKU returns the snapshot row for a SKU
func (s *StockService) GetBySKU(ctx context.Context, sku string) (*StockResponse, error) {
	row, err := s.stockRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToStockResponse(row)
	return &resp, nil
}

// ScanByBarcode resolves a barcode to its product and stock snapshot. A
// product that has never been stocked reports a zero snapshot instead of an
// error.
func (s *StockService) ScanByBarcode(ctx context.Context, barcode string) (*ScanResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	resp := &ScanResponse{
		SKU:         product.SKU,
		ProductName: product.Name,
		Barcode:     product.Barcode,
		IsBundle:    product.IsBundle,
	}

	row, err := s.stockRepo.FindBySKU(ctx, product.SKU)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code {
			resp.Stock = ToStockResponse(stock.NewStockCurrent(product.SKU))
			return resp, nil
		}
		return nil, err
	}
	resp.Stock = ToStockResponse(row)
	return resp, nil
}

// List returns snapshot rows matching the filter
func (s *StockService) List(ctx context.Context, req ListFilter) (*shared.Paginated[StockResponse], error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "sku"
	filter.OrderDir = "asc"
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	rows, err := s.stockRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockResponse, len(rows))
	for i := range rows {
		responses[i] = ToStockResponse(&rows[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// History returns the ledger movements for a SKU, newest first
func (s *StockService) History(ctx context.Context, sku string, req HistoryFilter) (*shared.Paginated[LedgerEntryResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	entries, err := s.ledgerRepo.FindBySKU(ctx, sku, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ledgerRepo.CountBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Adjust sets the on-hand quantity of a SKU to a counted absolute value.
// The snapshot row is locked before the check, the delta is journaled as an
// ADJUST movement, and both writes commit together. A zero delta returns
// the current state without writing anything.
func (s *StockService) Adjust(ctx context.Context, sku string, req AdjustRequest, operator string) (*AdjustResult, error) {
	var result *AdjustResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		row, err := repos.StockRepo().FindBySKUForUpdate(ctx, sku)
		if err != nil {
			return err
		}

		before := row.QtyOnHand
		delta, err := row.AdjustTo(req.FinalQty, operator)
		if err != nil {
			return err
		}

		result = &AdjustResult{
			SKU:       row.SKU,
			QtyBefore: before,
			QtyAfter:  row.QtyOnHand,
			Delta:     delta,
		}
		if delta == 0 {
			return nil
		}

		if err := repos.StockRepo().Save(ctx, row); err != nil {
			return err
		}
		return repos.LedgerRepo().Create(ctx, stock.NewAdjustEntry(sku, delta, req.Memo, operator))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

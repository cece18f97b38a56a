package inbound

import (
	"context"
	"errors"
	"time"

	"github.com/wms/backend/internal/domain/inbound"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

// ReceivingService commits inbound receipts: the header and its items move
// to committed, one ledger entry per SKU is appended, and the stock snapshot
// is credited, all in one transaction.
type ReceivingService struct {
	scope       TransactionScope
	inboundRepo inbound.InboundRepository
	now         func() time.Time
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(scope TransactionScope, inboundRepo inbound.InboundRepository) *ReceivingService {
	return &ReceivingService{
		scope:       scope,
		inboundRepo: inboundRepo,
		now:         time.Now,
	}
}

// Get returns an inbound order with its items
func (s *ReceivingService) Get(ctx context.Context, headerID uint) (*HeaderResponse, error) {
	header, err := s.inboundRepo.FindByID(ctx, headerID)
	if err != nil {
		return nil, err
	}
	return ToHeaderResponse(header), nil
}

// List returns inbound orders matching the filter
func (s *ReceivingService) List(ctx context.Context, req ListFilter) (*shared.Paginated[HeaderResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	headers, err := s.inboundRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.inboundRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]HeaderResponse, len(headers))
	for i := range headers {
		responses[i] = *ToHeaderResponse(&headers[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Confirm commits a receipt. Listed items may correct received quantities;
// the whole receipt is then aggregated per SKU, stocked, and journaled
// atomically. A missing snapshot row is created on first receipt.
func (s *ReceivingService) Confirm(ctx context.Context, headerID uint, req ConfirmRequest, operator string) (*ReceiptResult, error) {
	lines := make([]inbound.ConfirmLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = inbound.ConfirmLine{ItemID: item.ItemID, SKU: item.SKU, Qty: item.Qty}
	}

	var result *ReceiptResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		header, err := repos.InboundRepo().FindByID(ctx, headerID)
		if err != nil {
			return err
		}

		now := s.now()
		totals, err := header.Commit(lines, now)
		if err != nil {
			return err
		}
		if err := repos.InboundRepo().Save(ctx, header); err != nil {
			return err
		}

		entries := make([]*stock.LedgerEntry, 0, len(totals))
		receiptLines := make([]ReceiptLine, 0, len(totals))
		for _, total := range totals {
			row, err := repos.StockRepo().FindBySKUForUpdate(ctx, total.SKU)
			if err != nil {
				var domainErr *shared.DomainError
				if errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code {
					row = stock.NewStockCurrent(total.SKU)
				} else {
					return err
				}
			}
			row.Receive(total.Qty, total.UnitPrice, operator)
			if err := repos.StockRepo().Save(ctx, row); err != nil {
				return err
			}
			entries = append(entries, stock.NewInboundEntry(total.SKU, total.Qty, total.UnitPrice, header.ID, operator))
			receiptLines = append(receiptLines, ReceiptLine{SKU: total.SKU, Qty: total.Qty, UnitPrice: total.UnitPrice})

			if err := s.refreshProductPrice(ctx, repos, total, now, operator); err != nil {
				return err
			}
		}
		if err := repos.LedgerRepo().CreateBatch(ctx, entries); err != nil {
			return err
		}

		result = &ReceiptResult{
			HeaderID:    header.ID,
			Status:      header.Status.String(),
			InboundDate: header.InboundDate,
			Lines:       receiptLines,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// refreshProductPrice rolls the last inbound price forward on the catalog
// entry. SKUs received without a catalog entry are skipped.
func (s *ReceivingService) refreshProductPrice(ctx context.Context, repos TransactionalRepositories, total inbound.ReceiptTotal, now time.Time, operator string) error {
	if !total.UnitPrice.IsPositive() {
		return nil
	}
	product, err := repos.ProductRepo().FindBySKU(ctx, total.SKU)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code {
			return nil
		}
		return err
	}
	product.RecordInbound(total.UnitPrice, now)
	product.UpdatedBy = operator
	return repos.ProductRepo().Save(ctx, product)
}

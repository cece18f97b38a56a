package outbound

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
)

// ProcessService drives an outbound order through the packing bench flow:
// load, scan, weigh, confirm. Confirmation debits stock and appends ledger
// entries in one transaction; cancellation reverses a completed order the
// same way.
type ProcessService struct {
	scope        TransactionScope
	outboundRepo outbound.OutboundRepository
	now          func() time.Time
}

// NewProcessService creates a new ProcessService
func NewProcessService(scope TransactionScope, outboundRepo outbound.OutboundRepository) *ProcessService {
	return &ProcessService{
		scope:        scope,
		outboundRepo: outboundRepo,
		now:          time.Now,
	}
}

// LoadInvoice pulls an order onto the packing bench by order number or
// tracking number. Draft and canceled orders move into picking.
func (s *ProcessService) LoadInvoice(ctx context.Context, invoiceNo string) (*OrderState, error) {
	var state *OrderState
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		header, err := repos.OutboundRepo().FindByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return err
		}
		if err := header.StartPicking(); err != nil {
			return err
		}
		if err := repos.OutboundRepo().Save(ctx, header); err != nil {
			return err
		}
		state = ToOrderState(header)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// ScanItem records one barcode scan against the order currently in picking.
// An over-scan is reported without mutating the line.
func (s *ProcessService) ScanItem(ctx context.Context, invoiceNo, barcode string) (*ScanResult, error) {
	var result *ScanResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		header, err := repos.OutboundRepo().FindByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByBarcode(ctx, barcode)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code {
				return shared.NewDomainError(shared.ErrNotFound.Code,
					fmt.Sprintf("no product carries barcode %s", barcode))
			}
			return err
		}
		item, overScan, err := header.ScanSKU(product.SKU)
		if err != nil {
			return err
		}
		if !overScan {
			if err := repos.OutboundRepo().SaveItem(ctx, item); err != nil {
				return err
			}
		}
		result = &ScanResult{
			SKU:        item.SKU,
			Qty:        item.Qty,
			ScannedQty: item.ScannedQty,
			OverScan:   overScan,
			Matched:    item.Matched(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetWeight records the measured parcel weight in grams
func (s *ProcessService) SetWeight(ctx context.Context, invoiceNo string, weightG int) (*OrderState, error) {
	header, err := s.outboundRepo.FindByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if err := header.SetWeight(weightG); err != nil {
		return nil, err
	}
	if err := s.outboundRepo.Save(ctx, header); err != nil {
		return nil, err
	}
	return ToOrderState(header), nil
}

// GetState returns the current picking state without side effects
func (s *ProcessService) GetState(ctx context.Context, invoiceNo string) (*OrderState, error) {
	header, err := s.outboundRepo.FindByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	return ToOrderState(header), nil
}

// List returns outbound orders matching the filter
func (s *ProcessService) List(ctx context.Context, req OrderListFilter) (*shared.Paginated[OrderState], error) {
	filter := shared.DefaultFilter()
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
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	headers, err := s.outboundRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.outboundRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	states := make([]OrderState, len(headers))
	for i := range headers {
		states[i] = *ToOrderState(&headers[i])
	}
	result := shared.NewPaginated(states, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Confirm completes the order: every line must be fully scanned, every
// resolved SKU must have sufficient stock, and the debits plus their ledger
// entries are applied atomically. Any failure rolls back the whole
// confirmation.
func (s *ProcessService) Confirm(ctx context.Context, invoiceNo, operator string) (*ConfirmResult, error) {
	var result *ConfirmResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		header, err := repos.OutboundRepo().FindByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return err
		}
		if err := header.Confirm(s.now()); err != nil {
			return err
		}

		movements, err := resolveMovements(ctx, repos.ProductRepo(), header)
		if err != nil {
			return err
		}

		rows, err := lockStockRows(ctx, repos.StockRepo(), movements)
		if err != nil {
			return err
		}
		entries := make([]*stock.LedgerEntry, 0, len(movements))
		for _, mv := range movements {
			row, ok := rows[mv.SKU]
			if !ok {
				return shared.NewDomainError(shared.ErrInsufficientStock.Code,
					fmt.Sprintf("sku %s has no stock on hand, %d required", mv.SKU, mv.Qty))
			}
			if err := row.Ship(mv.Qty, operator); err != nil {
				return err
			}
			if err := repos.StockRepo().Save(ctx, row); err != nil {
				return err
			}
			memo := mv.Memo
			if memo == "" {
				memo = fmt.Sprintf("outbound confirm %s", header.OrderNumber)
			}
			entries = append(entries, stock.NewOutboundEntry(mv.SKU, mv.Qty, row.LastUnitPrice, header.ID, memo, operator))
		}
		if err := repos.LedgerRepo().CreateBatch(ctx, entries); err != nil {
			return err
		}
		if err := repos.OutboundRepo().Save(ctx, header); err != nil {
			return err
		}

		result = &ConfirmResult{
			HeaderID:     header.ID,
			OrderNumber:  header.OrderNumber,
			Status:       header.Status.String(),
			OutboundDate: header.OutboundDate,
			Movements:    movements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel reverses a completed order, crediting the same resolved SKUs the
// confirmation debited and appending the matching cancel ledger entries.
func (s *ProcessService) Cancel(ctx context.Context, invoiceNo, reason, operator string) (*CancelResult, error) {
	var result *CancelResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		header, err := repos.OutboundRepo().FindByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return err
		}
		if err := header.Cancel(reason); err != nil {
			return err
		}

		movements, err := resolveMovements(ctx, repos.ProductRepo(), header)
		if err != nil {
			return err
		}

		rows, err := lockStockRows(ctx, repos.StockRepo(), movements)
		if err != nil {
			return err
		}
		entries := make([]*stock.LedgerEntry, 0, len(movements))
		for _, mv := range movements {
			row, ok := rows[mv.SKU]
			if !ok {
				row = stock.NewStockCurrent(mv.SKU)
			}
			row.Restock(mv.Qty, operator)
			if err := repos.StockRepo().Save(ctx, row); err != nil {
				return err
			}
			memo := mv.Memo
			if memo == "" {
				memo = fmt.Sprintf("outbound cancel %s", header.OrderNumber)
			}
			entries = append(entries, stock.NewOutboundCancelEntry(mv.SKU, mv.Qty, row.LastUnitPrice, header.ID, memo, operator))
		}
		if err := repos.LedgerRepo().CreateBatch(ctx, entries); err != nil {
			return err
		}
		if err := repos.OutboundRepo().Save(ctx, header); err != nil {
			return err
		}

		result = &CancelResult{
			HeaderID:    header.ID,
			OrderNumber: header.OrderNumber,
			Status:      header.Status.String(),
			Movements:   movements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveMovements maps order lines through the catalog to per-SKU stock
// movements. Bundle lines debit their base SKU multiplied by the pack
// quantity; lines without a catalog entry debit their own SKU one to one.
// Movements for the same resolved SKU are merged, and the result is ordered
// by SKU so row locks are always acquired in the same order.
func resolveMovements(ctx context.Context, products catalog.ProductRepository, header *outbound.OutboundHeader) ([]ShipmentMovement, error) {
	skus := make([]string, 0, len(header.Items))
	for i := range header.Items {
		skus = append(skus, header.Items[i].SKU)
	}
	found, err := products.FindBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string]*catalog.Product, len(found))
	for i := range found {
		bySKU[found[i].SKU] = &found[i]
	}

	merged := make(map[string]*ShipmentMovement)
	for i := range header.Items {
		item := &header.Items[i]
		resolvedSKU, debit := item.SKU, item.Qty
		memo := ""
		if p, ok := bySKU[item.SKU]; ok {
			resolvedSKU, debit = p.ResolveShipment(item.Qty)
			memo = p.ShipmentNote(item.Qty)
		}
		mv, ok := merged[resolvedSKU]
		if !ok {
			merged[resolvedSKU] = &ShipmentMovement{SKU: resolvedSKU, Qty: debit, Memo: memo}
			continue
		}
		mv.Qty += debit
		if memo != "" {
			if mv.Memo != "" {
				mv.Memo += "; "
			}
			mv.Memo += memo
		}
	}

	ordered := make([]ShipmentMovement, 0, len(merged))
	for _, mv := range merged {
		ordered = append(ordered, *mv)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].SKU < ordered[j].SKU })
	return ordered, nil
}

// lockStockRows locks the snapshot rows for all movements up front, before
// any sufficiency check, so two confirmations over the same SKUs serialize
// instead of double-spending.
func lockStockRows(ctx context.Context, stocks stock.StockRepository, movements []ShipmentMovement) (map[string]*stock.StockCurrent, error) {
	skus := make([]string, len(movements))
	for i := range movements {
		skus[i] = movements[i].SKU
	}
	rows, err := stocks.FindBySKUsForUpdate(ctx, skus)
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string]*stock.StockCurrent, len(rows))
	for i := range rows {
		bySKU[rows[i].SKU] = &rows[i]
	}
	return bySKU, nil
}

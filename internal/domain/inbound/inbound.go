package inbound

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// InboundStatus represents the receiving status of an inbound order
type InboundStatus string

const (
	StatusDraft     InboundStatus = "draft"
	StatusCommitted InboundStatus = "committed"
)

// IsValid checks if the status is a valid InboundStatus
func (s InboundStatus) IsValid() bool {
	return s == StatusDraft || s == StatusCommitted
}

// String returns the string representation of InboundStatus
func (s InboundStatus) String() string {
	return string(s)
}

// InboundItem represents a line on an inbound order
type InboundItem struct {
	shared.BaseEntity
	HeaderID   uint            `gorm:"column:header_id;index;not null" json:"header_id"`
	SKU        string          `gorm:"column:sku;size:64;index;not null" json:"sku"`
	Qty        int             `gorm:"column:qty;not null" json:"qty"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:decimal(14,2)" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(14,2)" json:"total_price"`
	Status     InboundStatus   `gorm:"column:status;size:16;not null;default:draft" json:"status"`
}

// TableName returns the table name for GORM
func (InboundItem) TableName() string {
	return "inbound_item"
}

// InboundHeader is the aggregate root for an inbound order
type InboundHeader struct {
	shared.BaseEntity
	InboundDate  *time.Time    `gorm:"column:inbound_date" json:"inbound_date"`
	OrderDate    *time.Time    `gorm:"column:order_date" json:"order_date"`
	SupplierName string        `gorm:"column:supplier_name;size:128" json:"supplier_name"`
	Status       InboundStatus `gorm:"column:status;size:16;not null;default:draft" json:"status"`
	CreatedBy    string        `gorm:"column:created_by;size:64" json:"created_by"`
	Memo         string        `gorm:"column:memo;type:text" json:"memo"`
	Items        []InboundItem `gorm:"foreignKey:HeaderID" json:"items"`
}

// TableName returns the table name for GORM
func (InboundHeader) TableName() string {
	return "inbound_header"
}

// ConfirmLine carries a received-quantity correction for one inbound item
type ConfirmLine struct {
	ItemID uint
	SKU    string
	Qty    int
}

// ReceiptTotal is the per-SKU aggregate produced by committing a receipt
type ReceiptTotal struct {
	SKU       string
	Qty       int
	UnitPrice decimal.Decimal
}

// FindItem returns the item with the given ID, or nil
func (h *InboundHeader) FindItem(itemID uint) *InboundItem {
	for idx := range h.Items {
		if h.Items[idx].ID == itemID {
			return &h.Items[idx]
		}
	}
	return nil
}

// Commit finalizes the receipt. Listed lines may correct received quantities
// before commit; every live item then moves to committed together with the
// header. The returned totals aggregate received quantity per SKU for the
// stock ledger.
func (h *InboundHeader) Commit(lines []ConfirmLine, now time.Time) ([]ReceiptTotal, error) {
	if h.Status == StatusCommitted {
		return nil, shared.NewDomainError(shared.ErrAlreadyCommitted.Code,
			fmt.Sprintf("inbound order %d has already been committed", h.ID))
	}

	for _, line := range lines {
		item := h.FindItem(line.ItemID)
		if item == nil {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("item %d is not on inbound order %d", line.ItemID, h.ID))
		}
		if item.Status == StatusCommitted {
			return nil, shared.NewDomainError(shared.ErrAlreadyCommitted.Code,
				fmt.Sprintf("item %d on inbound order %d has already been committed", line.ItemID, h.ID))
		}
		if line.SKU != "" && line.SKU != item.SKU {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("item %d carries sku %s, not %s", line.ItemID, item.SKU, line.SKU))
		}
		if line.Qty > 0 {
			item.Qty = line.Qty
			item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty)))
		}
	}

	// Aggregate the whole receipt per SKU, preserving first-seen order.
	order := make([]string, 0, len(h.Items))
	qtyBySKU := make(map[string]int)
	costBySKU := make(map[string]decimal.Decimal)
	for idx := range h.Items {
		item := &h.Items[idx]
		if item.Qty <= 0 {
			continue
		}
		if _, seen := qtyBySKU[item.SKU]; !seen {
			order = append(order, item.SKU)
			costBySKU[item.SKU] = decimal.Zero
		}
		qtyBySKU[item.SKU] += item.Qty
		costBySKU[item.SKU] = costBySKU[item.SKU].Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
		item.Status = StatusCommitted
	}

	totals := make([]ReceiptTotal, 0, len(order))
	for _, sku := range order {
		qty := qtyBySKU[sku]
		unitPrice := decimal.Zero
		if qty > 0 {
			unitPrice = costBySKU[sku].Div(decimal.NewFromInt(int64(qty))).Round(2)
		}
		totals = append(totals, ReceiptTotal{SKU: sku, Qty: qty, UnitPrice: unitPrice})
	}

	h.Status = StatusCommitted
	if h.InboundDate == nil {
		h.InboundDate = &now
	}
	return totals, nil
}

package outbound

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// OutboundStatus represents the fulfillment status of an outbound order
type OutboundStatus string

const (
	StatusDraft     OutboundStatus = "draft"
	StatusPicking   OutboundStatus = "picking"
	StatusCompleted OutboundStatus = "completed"
	StatusCanceled  OutboundStatus = "canceled"
)

// IsValid checks if the status is a valid OutboundStatus
func (s OutboundStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPicking, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OutboundStatus
func (s OutboundStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Canceled orders may be re-issued back into picking.
func (s OutboundStatus) CanTransitionTo(target OutboundStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusPicking
	case StatusPicking:
		return target == StatusCompleted
	case StatusCompleted:
		return target == StatusCanceled
	case StatusCanceled:
		return target == StatusPicking
	}
	return false
}

// OutboundItem represents a line on an outbound order. ScannedQty tracks
// barcode-verified picking progress against the planned Qty.
type OutboundItem struct {
	shared.BaseEntity
	HeaderID   uint            `gorm:"column:header_id;index;not null" json:"header_id"`
	SKU        string          `gorm:"column:sku;size:64;index;not null" json:"sku"`
	Qty        int             `gorm:"column:qty;not null" json:"qty"`
	ScannedQty int             `gorm:"column:scanned_qty;not null;default:0" json:"scanned_qty"`
	SalesPrice decimal.Decimal `gorm:"column:sales_price;type:decimal(14,2)" json:"sales_price"`
	SalesTotal decimal.Decimal `gorm:"column:sales_total;type:decimal(14,2)" json:"sales_total"`
	Currency   string          `gorm:"column:currency;size:8" json:"currency"`
}

// TableName returns the table name for GORM
func (OutboundItem) TableName() string {
	return "outbound_item"
}

// Matched reports whether the line is fully picked
func (i *OutboundItem) Matched() bool {
	return i.ScannedQty == i.Qty
}

// Scan records one verified unit. Scanning past the planned quantity is
// refused without mutating the line; the caller surfaces it as an over-scan.
func (i *OutboundItem) Scan() (overScan bool) {
	if i.ScannedQty >= i.Qty {
		return true
	}
	i.ScannedQty++
	return false
}

// ResetScan clears picking progress, used when a canceled order is re-issued
func (i *OutboundItem) ResetScan() {
	i.ScannedQty = 0
}

// OutboundHeader is the aggregate root for an outbound order
type OutboundHeader struct {
	shared.BaseEntity
	OutboundDate   *time.Time     `gorm:"column:outbound_date" json:"outbound_date"`
	OrderNumber    string         `gorm:"column:order_number;size:64;index;not null" json:"order_number"`
	Channel        string         `gorm:"column:channel;size:64" json:"channel"`
	Country        string         `gorm:"column:country;size:64" json:"country"`
	TrackingNumber string         `gorm:"column:tracking_number;size:64;index" json:"tracking_number"`
	Status         OutboundStatus `gorm:"column:status;size:16;not null;default:draft" json:"status"`
	ReceiverName   string         `gorm:"column:receiver_name;size:128" json:"receiver_name"`
	CreatedBy      string         `gorm:"column:created_by;size:64" json:"created_by"`
	Memo           string         `gorm:"column:memo;type:text" json:"memo"`
	WeightG        int            `gorm:"column:weight_g;not null;default:0" json:"weight_g"`
	Items          []OutboundItem `gorm:"foreignKey:HeaderID" json:"items"`
}

// TableName returns the table name for GORM
func (OutboundHeader) TableName() string {
	return "outbound_header"
}

// StartPicking moves the order onto the packing bench. Draft orders begin
// picking, canceled orders are re-issued with scan progress cleared, and an
// order already in picking is left as is so a station reload is harmless.
func (h *OutboundHeader) StartPicking() error {
	switch h.Status {
	case StatusPicking:
		return nil
	case StatusDraft:
		h.Status = StatusPicking
		return nil
	case StatusCanceled:
		h.Status = StatusPicking
		for idx := range h.Items {
			h.Items[idx].ResetScan()
		}
		return nil
	default:
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("outbound order %s is %s and cannot be picked", h.OrderNumber, h.Status))
	}
}

// FindItemBySKU returns the line carrying the SKU, or nil
func (h *OutboundHeader) FindItemBySKU(sku string) *OutboundItem {
	for idx := range h.Items {
		if h.Items[idx].SKU == sku {
			return &h.Items[idx]
		}
	}
	return nil
}

// ScanSKU records one verified unit against the line carrying the SKU.
// The order must be in picking.
func (h *OutboundHeader) ScanSKU(sku string) (item *OutboundItem, overScan bool, err error) {
	if h.Status != StatusPicking {
		return nil, false, shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("outbound order %s is %s; scanning requires picking", h.OrderNumber, h.Status))
	}
	item = h.FindItemBySKU(sku)
	if item == nil {
		return nil, false, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("sku %s is not on outbound order %s", sku, h.OrderNumber))
	}
	overScan = item.Scan()
	return item, overScan, nil
}

// SetWeight records the parcel weight in grams
func (h *OutboundHeader) SetWeight(weightG int) error {
	if weightG < 1 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "weight must be a positive number of grams")
	}
	h.WeightG = weightG
	return nil
}

// UnmatchedSKU returns the first line whose scan count differs from its
// planned quantity, or an empty string when every line is matched.
func (h *OutboundHeader) UnmatchedSKU() string {
	for idx := range h.Items {
		if !h.Items[idx].Matched() {
			return h.Items[idx].SKU
		}
	}
	return ""
}

// Confirm completes the order. Requires picking status and every line fully
// scanned. Stock-side effects are applied by the caller in the same
// transaction.
func (h *OutboundHeader) Confirm(now time.Time) error {
	if h.Status != StatusPicking {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("outbound order %s is %s; confirmation requires picking", h.OrderNumber, h.Status))
	}
	if sku := h.UnmatchedSKU(); sku != "" {
		return shared.NewDomainError(shared.ErrScanMismatch.Code,
			fmt.Sprintf("sku %s on outbound order %s is not fully scanned", sku, h.OrderNumber))
	}
	h.Status = StatusCompleted
	if h.OutboundDate == nil {
		h.OutboundDate = &now
	}
	return nil
}

// Cancel reverses a completed order. Stock restitution is applied by the
// caller in the same transaction.
func (h *OutboundHeader) Cancel(reason string) error {
	if h.Status != StatusCompleted {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("outbound order %s is %s; only completed orders can be canceled", h.OrderNumber, h.Status))
	}
	h.Status = StatusCanceled
	reason = strings.TrimSpace(reason)
	if reason != "" {
		if h.Memo != "" {
			h.Memo += "\n"
		}
		h.Memo += "canceled: " + reason
	}
	return nil
}

// TotalQty sums the planned quantities across all lines
func (h *OutboundHeader) TotalQty() int {
	total := 0
	for idx := range h.Items {
		total += h.Items[idx].Qty
	}
	return total
}

// TotalScanned sums the verified quantities across all lines
func (h *OutboundHeader) TotalScanned() int {
	total := 0
	for idx := range h.Items {
		total += h.Items[idx].ScannedQty
	}
	return total
}

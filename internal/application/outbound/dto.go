package outbound

import (
	"time"

	"github.com/wms/backend/internal/domain/outbound"
)

// LineState represents one outbound line in API responses
type LineState struct {
	ItemID     uint   `json:"item_id"`
	SKU        string `json:"sku"`
	Qty        int    `json:"qty"`
	ScannedQty int    `json:"scanned_qty"`
	Matched    bool   `json:"matched"`
}

// OrderState represents the picking state of an outbound order
type OrderState struct {
	HeaderID       uint        `json:"header_id"`
	OrderNumber    string      `json:"order_number"`
	TrackingNumber string      `json:"tracking_number"`
	Channel        string      `json:"channel"`
	Country        string      `json:"country"`
	ReceiverName   string      `json:"receiver_name"`
	Status         string      `json:"status"`
	WeightG        int         `json:"weight_g"`
	OutboundDate   *time.Time  `json:"outbound_date"`
	TotalQty       int         `json:"total_qty"`
	TotalScanned   int         `json:"total_scanned"`
	AllMatched     bool        `json:"all_matched"`
	Lines          []LineState `json:"lines"`
}

// ScanResult reports the outcome of a single barcode scan
type ScanResult struct {
	SKU        string `json:"sku"`
	Qty        int    `json:"qty"`
	ScannedQty int    `json:"scanned_qty"`
	OverScan   bool   `json:"over_scan"`
	Matched    bool   `json:"matched"`
}

// LoadInvoiceRequest pulls an order onto the packing bench
type LoadInvoiceRequest struct {
	InvoiceNo string `json:"invoice_no" binding:"required"`
}

// ScanItemRequest carries a barcode scanned at the packing bench
type ScanItemRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// SetWeightRequest carries the measured parcel weight
type SetWeightRequest struct {
	WeightG int `json:"weight_g" binding:"required,min=1"`
}

// CancelRequest carries the reason for canceling a completed order
type CancelRequest struct {
	Reason string `json:"reason"`
}

// ShipmentMovement is one resolved per-SKU stock debit applied at confirmation
type ShipmentMovement struct {
	SKU  string `json:"sku"`
	Qty  int    `json:"qty"`
	Memo string `json:"memo,omitempty"`
}

// ConfirmResult reports a completed confirmation
type ConfirmResult struct {
	HeaderID     uint               `json:"header_id"`
	OrderNumber  string             `json:"order_number"`
	Status       string             `json:"status"`
	OutboundDate *time.Time         `json:"outbound_date"`
	Movements    []ShipmentMovement `json:"movements"`
}

// CancelResult reports a canceled order and the stock credited back
type CancelResult struct {
	HeaderID    uint               `json:"header_id"`
	OrderNumber string             `json:"order_number"`
	Status      string             `json:"status"`
	Movements   []ShipmentMovement `json:"movements"`
}

// OrderListFilter represents filter options for listing outbound orders
type OrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=draft picking completed canceled"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderState converts a domain header to its API state representation
func ToOrderState(h *outbound.OutboundHeader) *OrderState {
	lines := make([]LineState, len(h.Items))
	for i := range h.Items {
		item := &h.Items[i]
		lines[i] = LineState{
			ItemID:     item.ID,
			SKU:        item.SKU,
			Qty:        item.Qty,
			ScannedQty: item.ScannedQty,
			Matched:    item.Matched(),
		}
	}
	return &OrderState{
		HeaderID:       h.ID,
		OrderNumber:    h.OrderNumber,
		TrackingNumber: h.TrackingNumber,
		Channel:        h.Channel,
		Country:        h.Country,
		ReceiverName:   h.ReceiverName,
		Status:         h.Status.String(),
		WeightG:        h.WeightG,
		OutboundDate:   h.OutboundDate,
		TotalQty:       h.TotalQty(),
		TotalScanned:   h.TotalScanned(),
		AllMatched:     h.UnmatchedSKU() == "",
		Lines:          lines,
	}
}

package inbound

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/inbound"
)

// ConfirmItemRequest corrects the received quantity of one inbound item
type ConfirmItemRequest struct {
	ItemID uint   `json:"item_id" binding:"required"`
	SKU    string `json:"sku"`
	Qty    int    `json:"qty" binding:"omitempty,min=1"`
}

// ConfirmRequest commits a receipt
type ConfirmRequest struct {
	Items []ConfirmItemRequest `json:"items"`
}

// ReceiptLine is the per-SKU aggregate stocked by a committed receipt
type ReceiptLine struct {
	SKU       string          `json:"sku"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ReceiptResult reports a committed receipt
type ReceiptResult struct {
	HeaderID    uint          `json:"header_id"`
	Status      string        `json:"status"`
	InboundDate *time.Time    `json:"inbound_date"`
	Lines       []ReceiptLine `json:"lines"`
}

// ItemResponse represents one inbound line in API responses
type ItemResponse struct {
	ItemID    uint            `json:"item_id"`
	SKU       string          `json:"sku"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Status    string          `json:"status"`
}

// HeaderResponse represents an inbound order in API responses
type HeaderResponse struct {
	HeaderID     uint           `json:"header_id"`
	SupplierName string         `json:"supplier_name"`
	Status       string         `json:"status"`
	InboundDate  *time.Time     `json:"inbound_date"`
	OrderDate    *time.Time     `json:"order_date"`
	Memo         string         `json:"memo"`
	Items        []ItemResponse `json:"items"`
}

// ListFilter represents filter options for listing inbound orders
type ListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft committed"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
}

// ToHeaderResponse converts a domain header to its API representation
func ToHeaderResponse(h *inbound.InboundHeader) *HeaderResponse {
	items := make([]ItemResponse, len(h.Items))
	for i := range h.Items {
		item := &h.Items[i]
		items[i] = ItemResponse{
			ItemID:    item.ID,
			SKU:       item.SKU,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Status:    item.Status.String(),
		}
	}
	return &HeaderResponse{
		HeaderID:     h.ID,
		SupplierName: h.SupplierName,
		Status:       h.Status.String(),
		InboundDate:  h.InboundDate,
		OrderDate:    h.OrderDate,
		Memo:         h.Memo,
		Items:        items,
	}
}

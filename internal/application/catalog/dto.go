package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/catalog"
)

// RegisterProductRequest creates a catalog entry
type RegisterProductRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Barcode  string `json:"barcode"`
	Name     string `json:"name" binding:"required"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	IsBundle bool   `json:"is_bundle"`
	BaseSKU  string `json:"base_sku"`
	PackQty  int    `json:"pack_qty" binding:"omitempty,min=1"`
	WeightG  int    `json:"weight_g" binding:"omitempty,min=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                   uint            `json:"id"`
	SKU                  string          `json:"sku"`
	Barcode              string          `json:"barcode"`
	Name                 string          `json:"name"`
	Brand                string          `json:"brand"`
	Category             string          `json:"category"`
	IsBundle             bool            `json:"is_bundle"`
	BaseSKU              string          `json:"base_sku"`
	PackQty              int             `json:"pack_qty"`
	LastInboundUnitPrice decimal.Decimal `json:"last_inbound_unit_price"`
	LastInboundDate      *time.Time      `json:"last_inbound_date"`
	WeightG              int             `json:"weight_g"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ListFilter represents filter options for the product listing
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                   p.ID,
		SKU:                  p.SKU,
		Barcode:              p.Barcode,
		Name:                 p.Name,
		Brand:                p.Brand,
		Category:             p.Category,
		IsBundle:             p.IsBundle,
		BaseSKU:              p.BaseSKU,
		PackQty:              p.PackQty,
		LastInboundUnitPrice: p.LastInboundUnitPrice,
		LastInboundDate:      p.LastInboundDate,
		WeightG:              p.WeightG,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

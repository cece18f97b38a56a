package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// Product represents a sellable item in the catalog. A bundle product is a
// pre-pack of a base product: shipping one bundle unit debits PackQty units
// of the base SKU from stock.
type Product struct {
	shared.BaseEntity
	SKU                  string          `gorm:"column:sku;size:64;uniqueIndex;not null" json:"sku"`
	Barcode              string          `gorm:"column:barcode;size:64;index" json:"barcode"`
	Name                 string          `gorm:"column:name;size:255;not null" json:"name"`
	Brand                string          `gorm:"column:brand;size:128" json:"brand"`
	Category             string          `gorm:"column:category;size:128" json:"category"`
	BaseSKU              string          `gorm:"column:base_sku;size:64;index" json:"base_sku"`
	PackQty              int             `gorm:"column:pack_qty;not null;default:1" json:"pack_qty"`
	IsBundle             bool            `gorm:"column:is_bundle;not null;default:false" json:"is_bundle"`
	LastInboundUnitPrice decimal.Decimal `gorm:"column:last_inbound_unit_price;type:decimal(14,2)" json:"last_inbound_unit_price"`
	LastInboundDate      *time.Time      `gorm:"column:last_inbound_date" json:"last_inbound_date"`
	WeightG              int             `gorm:"column:weight_g" json:"weight_g"`
	IsActive             bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedBy            string          `gorm:"column:created_by;size:64" json:"created_by"`
	UpdatedBy            string          `gorm:"column:updated_by;size:64" json:"updated_by"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "product"
}

// NewProduct creates a product with normalized identity fields. Non-bundle
// products resolve to themselves with a pack quantity of one.
func NewProduct(sku, barcode, name string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "sku is required")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "name is required")
	}

	return &Product{
		SKU:      sku,
		Barcode:  strings.TrimSpace(barcode),
		Name:     name,
		BaseSKU:  sku,
		PackQty:  1,
		IsActive: true,
	}, nil
}

// MarkBundle turns the product into a bundle of the given base SKU.
func (p *Product) MarkBundle(baseSKU string, packQty int) error {
	baseSKU = strings.TrimSpace(baseSKU)
	if baseSKU == "" {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "base sku is required for a bundle")
	}
	if baseSKU == p.SKU {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "bundle cannot reference its own sku as base")
	}
	if packQty < 1 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "pack quantity must be at least 1")
	}
	p.IsBundle = true
	p.BaseSKU = baseSKU
	p.PackQty = packQty
	return nil
}

// ResolveShipment maps an ordered quantity of this product to the stock SKU
// and quantity it debits. Bundles resolve to their base SKU multiplied by the
// pack quantity; plain products resolve to themselves.
func (p *Product) ResolveShipment(qty int) (sku string, debit int) {
	if p.IsBundle && p.BaseSKU != "" {
		return p.BaseSKU, qty * p.PackQty
	}
	return p.SKU, qty
}

// RecordInbound updates the rolling inbound price snapshot on the product.
func (p *Product) RecordInbound(unitPrice decimal.Decimal, at time.Time) {
	p.LastInboundUnitPrice = unitPrice
	p.LastInboundDate = &at
}

// Deactivate marks the product as no longer orderable.
func (p *Product) Deactivate(operator string) {
	p.IsActive = false
	p.UpdatedBy = operator
}

// ShipmentNote describes the bundle resolution applied to an outbound line,
// used as ledger memo text.
func (p *Product) ShipmentNote(qty int) string {
	if p.IsBundle && p.BaseSKU != "" {
		return fmt.Sprintf("bundle %s x%d -> %s x%d", p.SKU, qty, p.BaseSKU, qty*p.PackQty)
	}
	return ""
}

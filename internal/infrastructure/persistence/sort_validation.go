package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"barcode":    true,
	"name":       true,
	"brand":      true,
	"category":   true,
	"pack_qty":   true,
	"is_bundle":  true,
	"is_active":  true,
}

// OutboundSortFields contains allowed sort fields for outbound orders
var OutboundSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"outbound_date":   true,
	"order_number":    true,
	"tracking_number": true,
	"channel":         true,
	"country":         true,
	"status":          true,
	"weight_g":        true,
}

// InboundSortFields contains allowed sort fields for inbound receipts
var InboundSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"inbound_date":  true,
	"order_date":    true,
	"supplier_name": true,
	"status":        true,
}

// StockSortFields contains allowed sort fields for stock snapshots
var StockSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"sku":             true,
	"qty_on_hand":     true,
	"qty_reserved":    true,
	"qty_pending_out": true,
	"last_unit_price": true,
	"total_value":     true,
}

// LedgerSortFields contains allowed sort fields for ledger entries
var LedgerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"sku":        true,
	"event_type": true,
	"ref_type":   true,
	"ref_id":     true,
}

package outbound

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// OutboundRepository defines the interface for outbound order persistence
type OutboundRepository interface {
	// FindByID finds an outbound header with its items by ID
	FindByID(ctx context.Context, id uint) (*OutboundHeader, error)

	// FindByInvoiceNo finds an outbound header with its items by order number
	// or tracking number
	FindByInvoiceNo(ctx context.Context, invoiceNo string) (*OutboundHeader, error)

	// FindAll finds outbound headers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]OutboundHeader, error)

	// Count counts outbound headers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a header together with its items
	Save(ctx context.Context, header *OutboundHeader) error

	// SaveItem updates a single line
	SaveItem(ctx context.Context, item *OutboundItem) error
}

package inbound

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// InboundRepository defines the interface for inbound order persistence
type InboundRepository interface {
	// FindByID finds an inbound header with its items by ID
	FindByID(ctx context.Context, id uint) (*InboundHeader, error)

	// FindAll finds inbound headers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InboundHeader, error)

	// Count counts inbound headers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a header together with its items
	Save(ctx context.Context, header *InboundHeader) error
}

package persistence

import (
	"context"
	"errors"

	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOutboundRepository implements OutboundRepository using GORM
type GormOutboundRepository struct {
	db *gorm.DB
}

// NewGormOutboundRepository creates a new GormOutboundRepository
func NewGormOutboundRepository(db *gorm.DB) *GormOutboundRepository {
	return &GormOutboundRepository{db: db}
}

// FindByID finds an outbound order with its lines by ID
func (r *GormOutboundRepository) FindByID(ctx context.Context, id uint) (*outbound.OutboundHeader, error) {
	var header outbound.OutboundHeader
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&header, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &header, nil
}

// FindByInvoiceNo finds an outbound order by its order number or tracking
// number, whichever the scanned invoice carries.
func (r *GormOutboundRepository) FindByInvoiceNo(ctx context.Context, invoiceNo string) (*outbound.OutboundHeader, error) {
	var header outbound.OutboundHeader
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? OR tracking_number = ?", invoiceNo, invoiceNo).
		First(&header).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &header, nil
}

// FindAll finds all outbound orders matching the filter
func (r *GormOutboundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]outbound.OutboundHeader, error) {
	var headers []outbound.OutboundHeader
	query := r.applyFilter(r.db.WithContext(ctx).Model(&outbound.OutboundHeader{}), filter)

	if err := query.Preload("Items").Find(&headers).Error; err != nil {
		return nil, err
	}
	return headers, nil
}

// Count counts outbound orders matching the filter
func (r *GormOutboundRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&outbound.OutboundHeader{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an outbound order together with its lines
func (r *GormOutboundRepository) Save(ctx context.Context, header *outbound.OutboundHeader) error {
	return r.db.WithContext(ctx).Save(header).Error
}

// SaveItem updates a single outbound line
func (r *GormOutboundRepository) SaveItem(ctx context.Context, item *outbound.OutboundItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// applyFilter applies filter options to the query
func (r *GormOutboundRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OutboundSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOutboundRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR tracking_number ILIKE ? OR receiver_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "channel":
			query = query.Where("channel = ?", value)
		case "country":
			query = query.Where("country = ?", value)
		}
	}

	return query
}

// Ensure GormOutboundRepository implements OutboundRepository
var _ outbound.OutboundRepository = (*GormOutboundRepository)(nil)

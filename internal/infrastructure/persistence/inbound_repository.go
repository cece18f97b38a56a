package persistence

import (
	"context"
	"errors"

	"github.com/wms/backend/internal/domain/inbound"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInboundRepository implements InboundRepository using GORM
type GormInboundRepository struct {
	db *gorm.DB
}

// NewGormInboundRepository creates a new GormInboundRepository
func NewGormInboundRepository(db *gorm.DB) *GormInboundRepository {
	return &GormInboundRepository{db: db}
}

// FindByID finds an inbound receipt with its lines by ID
func (r *GormInboundRepository) FindByID(ctx context.Context, id uint) (*inbound.InboundHeader, error) {
	var header inbound.InboundHeader
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

// FindAll finds all inbound receipts matching the filter
func (r *GormInboundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inbound.InboundHeader, error) {
	var headers []inbound.InboundHeader
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inbound.InboundHeader{}), filter)

	if err := query.Preload("Items").Find(&headers).Error; err != nil {
		return nil, err
	}
	return headers, nil
}

// Count counts inbound receipts matching the filter
func (r *GormInboundRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inbound.InboundHeader{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an inbound receipt together with its lines
func (r *GormInboundRepository) Save(ctx context.Context, header *inbound.InboundHeader) error {
	return r.db.WithContext(ctx).Save(header).Error
}

// applyFilter applies filter options to the query
func (r *GormInboundRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InboundSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInboundRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("supplier_name ILIKE ? OR memo ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_name":
			query = query.Where("supplier_name = ?", value)
		}
	}

	return query
}

// Ensure GormInboundRepository implements InboundRepository
var _ inbound.InboundRepository = (*GormInboundRepository)(nil)

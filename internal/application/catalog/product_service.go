package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// ProductService manages the product catalog consulted by scanning and
// outbound confirmation.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Register creates a catalog entry. Bundles must reference an existing base
// product; duplicate live SKUs and barcodes are refused.
func (s *ProductService) Register(ctx context.Context, req RegisterProductRequest, operator string) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.SKU, req.Barcode, req.Name)
	if err != nil {
		return nil, err
	}
	product.Brand = req.Brand
	product.Category = req.Category
	product.WeightG = req.WeightG
	product.CreatedBy = operator
	product.UpdatedBy = operator

	if req.IsBundle {
		base, err := s.productRepo.FindBySKU(ctx, req.BaseSKU)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code {
				return nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
					fmt.Sprintf("base product %s is not registered", req.BaseSKU))
			}
			return nil, err
		}
		if base.IsBundle {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("base product %s is itself a bundle", req.BaseSKU))
		}
		if err := product.MarkBundle(base.SKU, req.PackQty); err != nil {
			return nil, err
		}
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code,
			fmt.Sprintf("product %s is already registered", product.SKU))
	}
	if product.Barcode != "" {
		exists, err = s.productRepo.ExistsByBarcode(ctx, product.Barcode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code,
				fmt.Sprintf("barcode %s is already registered", product.Barcode))
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySKU returns the product carrying the SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByBarcode returns the product carrying the barcode
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, req ListFilter) (*shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "sku"
	filter.OrderDir = "asc"
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Deactivate marks a product as no longer orderable
func (s *ProductService) Deactivate(ctx context.Context, sku, operator string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	product.Deactivate(operator)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

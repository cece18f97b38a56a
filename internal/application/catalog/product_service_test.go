package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKUs(ctx context.Context, skus []string) ([]catalog.Product, error) {
	args := m.Called(ctx, skus)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	args := m.Called(ctx, barcode)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductService_Register(t *testing.T) {
	t.Run("registers a plain product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("ExistsBySKU", mock.Anything, "SKU-1").Return(false, nil)
		repo.On("ExistsByBarcode", mock.Anything, "4710001").Return(false, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.SKU == "SKU-1" && p.BaseSKU == "SKU-1" && p.PackQty == 1 && !p.IsBundle
		})).Return(nil)

		resp, err := svc.Register(context.Background(), RegisterProductRequest{
			SKU:     "SKU-1",
			Barcode: "4710001",
			Name:    "Widget",
			Brand:   "Acme",
		}, "alice")
		require.NoError(t, err)
		assert.Equal(t, "SKU-1", resp.BaseSKU)
		assert.True(t, resp.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("registers a bundle against an existing base", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)
		base, _ := catalog.NewProduct("SKU-1", "4710001", "Widget")

		repo.On("FindBySKU", mock.Anything, "SKU-1").Return(base, nil)
		repo.On("ExistsBySKU", mock.Anything, "BUN-1").Return(false, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.IsBundle && p.BaseSKU == "SKU-1" && p.PackQty == 3
		})).Return(nil)

		resp, err := svc.Register(context.Background(), RegisterProductRequest{
			SKU:      "BUN-1",
			Name:     "Widget 3-pack",
			IsBundle: true,
			BaseSKU:  "SKU-1",
			PackQty:  3,
		}, "alice")
		require.NoError(t, err)
		assert.True(t, resp.IsBundle)
		assert.Equal(t, 3, resp.PackQty)
	})

	t.Run("bundle with unregistered base is refused", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("FindBySKU", mock.Anything, "SKU-9").Return(nil, shared.ErrNotFound)

		_, err := svc.Register(context.Background(), RegisterProductRequest{
			SKU:      "BUN-1",
			Name:     "Widget 3-pack",
			IsBundle: true,
			BaseSKU:  "SKU-9",
			PackQty:  3,
		}, "alice")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidInput.Code, domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("bundle on a bundle base is refused", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)
		base, _ := catalog.NewProduct("BUN-0", "", "Inner pack")
		inner, _ := catalog.NewProduct("SKU-1", "", "Widget")
		require.NoError(t, base.MarkBundle(inner.SKU, 2))

		repo.On("FindBySKU", mock.Anything, "BUN-0").Return(base, nil)

		_, err := svc.Register(context.Background(), RegisterProductRequest{
			SKU:      "BUN-1",
			Name:     "Pack of packs",
			IsBundle: true,
			BaseSKU:  "BUN-0",
			PackQty:  2,
		}, "alice")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidInput.Code, domainErr.Code)
	})

	t.Run("duplicate sku is refused", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("ExistsBySKU", mock.Anything, "SKU-1").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterProductRequest{
			SKU:  "SKU-1",
			Name: "Widget",
		}, "alice")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrAlreadyExists.Code, domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate barcode is refused", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("ExistsBySKU", mock.Anything, "SKU-2").Return(false, nil)
		repo.On("ExistsByBarcode", mock.Anything, "4710001").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterProductRequest{
			SKU:     "SKU-2",
			Barcode: "4710001",
			Name:    "Gadget",
		}, "alice")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrAlreadyExists.Code, domainErr.Code)
	})

	t.Run("blank sku is refused", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		_, err := svc.Register(context.Background(), RegisterProductRequest{
			SKU:  "   ",
			Name: "Widget",
		}, "alice")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidInput.Code, domainErr.Code)
	})
}

func TestProductService_Deactivate(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	product, _ := catalog.NewProduct("SKU-1", "4710001", "Widget")

	repo.On("FindBySKU", mock.Anything, "SKU-1").Return(product, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return !p.IsActive && p.UpdatedBy == "alice"
	})).Return(nil)

	resp, err := svc.Deactivate(context.Background(), "SKU-1", "alice")
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	repo.AssertExpectations(t)
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	p1, _ := catalog.NewProduct("SKU-1", "4710001", "Widget")
	p2, _ := catalog.NewProduct("SKU-2", "4710002", "Gadget")

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "sku" && f.OrderDir == "asc" && f.Search == "wid"
	})).Return([]catalog.Product{*p1, *p2}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	page, err := svc.List(context.Background(), ListFilter{Search: "wid", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "SKU-1", page.Items[0].SKU)
}

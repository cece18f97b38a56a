package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	outboundapp "github.com/wms/backend/internal/application/outbound"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

type outboundTestEnv struct {
	outboundRepo *MockOutboundRepository
	productRepo  *MockProductRepository
	stockRepo    *MockStockRepository
	ledgerRepo   *MockLedgerRepository
	router       *gin.Engine
}

func setupOutboundRouter() *outboundTestEnv {
	env := &outboundTestEnv{
		outboundRepo: new(MockOutboundRepository),
		productRepo:  new(MockProductRepository),
		stockRepo:    new(MockStockRepository),
		ledgerRepo:   new(MockLedgerRepository),
	}
	scope := outboundapp.NewNoOpTransactionScope(env.outboundRepo, env.productRepo, env.stockRepo, env.ledgerRepo)
	service := outboundapp.NewProcessService(scope, env.outboundRepo)
	h := NewOutboundHandler(service, zap.NewNop())

	env.router = gin.New()
	api := env.router.Group("/api/v1")
	h.RegisterRoutes(api)
	return env
}

func pickingOrder(scanned bool) *outbound.OutboundHeader {
	header := &outbound.OutboundHeader{
		OrderNumber: "ORD-1",
		Status:      outbound.StatusPicking,
		Items: []outbound.OutboundItem{
			{SKU: "SKU-1", Qty: 2},
		},
	}
	header.ID = 1
	header.Items[0].ID = 10
	if scanned {
		header.Items[0].ScannedQty = 2
	}
	return header
}

func TestOutboundHandler_LoadInvoice(t *testing.T) {
	env := setupOutboundRouter()

	header := pickingOrder(false)
	header.Status = outbound.StatusDraft
	env.outboundRepo.On("FindByInvoiceNo", mock.Anything, "ORD-1").Return(header, nil)
	env.outboundRepo.On("Save", mock.Anything, header).Return(nil)

	body, _ := json.Marshal(outboundapp.LoadInvoiceRequest{InvoiceNo: "ORD-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/outbound/load", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := json.Marshal(resp.Data)
	var state outboundapp.OrderState
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, "picking", state.Status)
	env.outboundRepo.AssertExpectations(t)
}

func TestOutboundHandler_LoadInvoice_UnknownOrder(t *testing.T) {
	env := setupOutboundRouter()
	env.outboundRepo.On("FindByInvoiceNo", mock.Anything, "ORD-404").Return(nil, shared.ErrNotFound)

	body, _ := json.Marshal(outboundapp.LoadInvoiceRequest{InvoiceNo: "ORD-404"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/outbound/load", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOutboundHandler_Confirm_Success(t *testing.T) {
	env := setupOutboundRouter()

	header := pickingOrder(true)
	row := stock.NewStockCurrent("SKU-1")
	row.QtyOnHand = 5

	env.outboundRepo.On("FindByInvoiceNo", mock.Anything, "ORD-1").Return(header, nil)
	env.productRepo.On("FindBySKUs", mock.Anything, []string{"SKU-1"}).Return([]catalog.Product{}, nil)
	env.stockRepo.On("FindBySKUsForUpdate", mock.Anything, []string{"SKU-1"}).Return([]stock.StockCurrent{*row}, nil)
	env.stockRepo.On("Save", mock.Anything, mock.AnythingOfType("*stock.StockCurrent")).Return(nil)
	env.ledgerRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*stock.LedgerEntry")).Return(nil)
	env.outboundRepo.On("Save", mock.Anything, header).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/outbound/ORD-1/confirm", nil)
	req.Header.Set("X-Operator", "bob")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env.stockRepo.AssertExpectations(t)
	env.ledgerRepo.AssertExpectations(t)
}

func TestOutboundHandler_Confirm_InsufficientStock(t *testing.T) {
	env := setupOutboundRouter()

	header := pickingOrder(true)
	env.outboundRepo.On("FindByInvoiceNo", mock.Anything, "ORD-1").Return(header, nil)
	env.productRepo.On("FindBySKUs", mock.Anything, []string{"SKU-1"}).Return([]catalog.Product{}, nil)
	env.stockRepo.On("FindBySKUsForUpdate", mock.Anything, []string{"SKU-1"}).Return([]stock.StockCurrent{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/outbound/ORD-1/confirm", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	env.ledgerRepo.AssertNotCalled(t, "CreateBatch")
}

func TestOutboundHandler_Confirm_UnscannedLine(t *testing.T) {
	env := setupOutboundRouter()

	header := pickingOrder(false)
	env.outboundRepo.On("FindByInvoiceNo", mock.Anything, "ORD-1").Return(header, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/outbound/ORD-1/confirm", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeScanMismatch, resp.Error.Code)
}

func TestOutboundHandler_Cancel_DraftOrderRejected(t *testing.T) {
	env := setupOutboundRouter()

	header := pickingOrder(false)
	header.Status = outbound.StatusDraft
	env.outboundRepo.On("FindByInvoiceNo", mock.Anything, "ORD-1").Return(header, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/outbound/ORD-1/cancel", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

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
	stockapp "github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

type stockTestEnv struct {
	stockRepo   *MockStockRepository
	ledgerRepo  *MockLedgerRepository
	productRepo *MockProductRepository
	router      *gin.Engine
}

func setupStockRouter() *stockTestEnv {
	env := &stockTestEnv{
		stockRepo:   new(MockStockRepository),
		ledgerRepo:  new(MockLedgerRepository),
		productRepo: new(MockProductRepository),
	}
	scope := stockapp.NewNoOpTransactionScope(env.stockRepo, env.ledgerRepo)
	service := stockapp.NewStockService(scope, env.stockRepo, env.ledgerRepo, env.productRepo)
	h := NewStockHandler(service, zap.NewNop())

	env.router = gin.New()
	api := env.router.Group("/api/v1")
	h.RegisterRoutes(api)
	return env
}

func TestStockHandler_GetBySKU(t *testing.T) {
	env := setupStockRouter()

	row := stock.NewStockCurrent("SKU-1")
	row.QtyOnHand = 7
	env.stockRepo.On("FindBySKU", mock.Anything, "SKU-1").Return(row, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/SKU-1", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := json.Marshal(resp.Data)
	var state stockapp.StockResponse
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, 7, state.QtyOnHand)
}

func TestStockHandler_ScanByBarcode_UnknownBarcode(t *testing.T) {
	env := setupStockRouter()
	env.productRepo.On("FindByBarcode", mock.Anything, "0000").Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/scan/0000", nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockHandler_Adjust(t *testing.T) {
	env := setupStockRouter()

	row := stock.NewStockCurrent("SKU-1")
	row.QtyOnHand = 10
	env.stockRepo.On("FindBySKUForUpdate", mock.Anything, "SKU-1").Return(row, nil)
	env.stockRepo.On("Save", mock.Anything, row).Return(nil)
	env.ledgerRepo.On("Create", mock.Anything, mock.AnythingOfType("*stock.LedgerEntry")).Return(nil)

	body, _ := json.Marshal(stockapp.AdjustRequest{FinalQty: 7, Memo: "cycle count"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/SKU-1/adjust", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Operator", "alice")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := json.Marshal(resp.Data)
	var result stockapp.AdjustResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 10, result.QtyBefore)
	assert.Equal(t, 7, result.QtyAfter)
	assert.Equal(t, -3, result.Delta)
	env.ledgerRepo.AssertExpectations(t)
}

func TestStockHandler_Adjust_NoChange(t *testing.T) {
	env := setupStockRouter()

	row := stock.NewStockCurrent("SKU-1")
	row.QtyOnHand = 10
	env.stockRepo.On("FindBySKUForUpdate", mock.Anything, "SKU-1").Return(row, nil)

	body, _ := json.Marshal(stockapp.AdjustRequest{FinalQty: 10})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/SKU-1/adjust", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env.stockRepo.AssertNotCalled(t, "Save")
	env.ledgerRepo.AssertNotCalled(t, "Create")
}

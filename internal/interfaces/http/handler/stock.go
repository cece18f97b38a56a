package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/application/stock"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// StockHandler handles stock status endpoints
type StockHandler struct {
	BaseHandler
	service *stock.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service *stock.StockService, logger *zap.Logger) *StockHandler {
	return &StockHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stocks := rg.Group("/stock")
	{
		stocks.GET("", h.List)
		stocks.GET("/scan/:barcode", h.ScanByBarcode)
		stocks.GET("/:sku", h.GetBySKU)
		stocks.GET("/:sku/history", h.History)
		stocks.POST("/:sku/adjust", h.Adjust)
	}
}

// List returns snapshot rows matching the filter
// GET /api/v1/stock
func (h *StockHandler) List(c *gin.Context) {
	req := stock.ListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ScanByBarcode resolves a barcode to its product and stock snapshot
// GET /api/v1/stock/scan/:barcode
func (h *StockHandler) ScanByBarcode(c *gin.Context) {
	resp, err := h.service.ScanByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetBySKU returns the snapshot row for a SKU
// GET /api/v1/stock/:sku
func (h *StockHandler) GetBySKU(c *gin.Context) {
	resp, err := h.service.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History returns the ledger movements for a SKU, newest first
// GET /api/v1/stock/:sku/history
func (h *StockHandler) History(c *gin.Context) {
	req := stock.HistoryFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.History(c.Request.Context(), c.Param("sku"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Adjust sets the on-hand quantity of a SKU to a counted value
// POST /api/v1/stock/:sku/adjust
func (h *StockHandler) Adjust(c *gin.Context) {
	var req stock.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Adjust(c.Request.Context(), c.Param("sku"), req, h.getOperator(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

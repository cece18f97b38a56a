package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/application/outbound"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// OutboundHandler handles the packing bench flow: load, scan, weigh,
// confirm, cancel
type OutboundHandler struct {
	BaseHandler
	service *outbound.ProcessService
}

// NewOutboundHandler creates a new outbound handler
func NewOutboundHandler(service *outbound.ProcessService, logger *zap.Logger) *OutboundHandler {
	return &OutboundHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers outbound routes
func (h *OutboundHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/outbound")
	{
		orders.GET("", h.List)
		orders.POST("/load", h.LoadInvoice)
		orders.GET("/:invoice_no", h.GetState)
		orders.POST("/:invoice_no/scan", h.ScanItem)
		orders.POST("/:invoice_no/weight", h.SetWeight)
		orders.POST("/:invoice_no/confirm", h.Confirm)
		orders.POST("/:invoice_no/cancel", h.Cancel)
	}
}

// List returns outbound orders matching the filter
// GET /api/v1/outbound
func (h *OutboundHandler) List(c *gin.Context) {
	req := outbound.OrderListFilter{Page: 1, PageSize: 20}
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

// LoadInvoice pulls an order onto the packing bench
// POST /api/v1/outbound/load
func (h *OutboundHandler) LoadInvoice(c *gin.Context) {
	var req outbound.LoadInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	state, err := h.service.LoadInvoice(c.Request.Context(), req.InvoiceNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// GetState returns the current picking state without side effects
// GET /api/v1/outbound/:invoice_no
func (h *OutboundHandler) GetState(c *gin.Context) {
	state, err := h.service.GetState(c.Request.Context(), c.Param("invoice_no"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// ScanItem records one barcode scan against the order in picking
// POST /api/v1/outbound/:invoice_no/scan
func (h *OutboundHandler) ScanItem(c *gin.Context) {
	var req outbound.ScanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.ScanItem(c.Request.Context(), c.Param("invoice_no"), req.Barcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SetWeight records the measured parcel weight
// POST /api/v1/outbound/:invoice_no/weight
func (h *OutboundHandler) SetWeight(c *gin.Context) {
	var req outbound.SetWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	state, err := h.service.SetWeight(c.Request.Context(), c.Param("invoice_no"), req.WeightG)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// Confirm completes the order, debiting stock and journaling the shipment
// POST /api/v1/outbound/:invoice_no/confirm
func (h *OutboundHandler) Confirm(c *gin.Context) {
	result, err := h.service.Confirm(c.Request.Context(), c.Param("invoice_no"), h.getOperator(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel reverses a completed order, crediting stock back
// POST /api/v1/outbound/:invoice_no/cancel
func (h *OutboundHandler) Cancel(c *gin.Context) {
	var req outbound.CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	result, err := h.service.Cancel(c.Request.Context(), c.Param("invoice_no"), req.Reason, h.getOperator(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

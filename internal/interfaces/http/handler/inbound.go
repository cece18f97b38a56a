package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/application/inbound"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// InboundHandler handles inbound receipt endpoints
type InboundHandler struct {
	BaseHandler
	service *inbound.ReceivingService
}

// NewInboundHandler creates a new inbound handler
func NewInboundHandler(service *inbound.ReceivingService, logger *zap.Logger) *InboundHandler {
	return &InboundHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers inbound routes
func (h *InboundHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/inbound")
	{
		receipts.GET("", h.List)
		receipts.GET("/:id", h.Get)
		receipts.POST("/:id/confirm", h.Confirm)
	}
}

func (h *InboundHandler) headerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.BadRequest(c, "invalid inbound order id")
		return 0, false
	}
	return uint(id), true
}

// List returns inbound orders matching the filter
// GET /api/v1/inbound
func (h *InboundHandler) List(c *gin.Context) {
	req := inbound.ListFilter{Page: 1, PageSize: 20}
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

// Get returns an inbound order with its items
// GET /api/v1/inbound/:id
func (h *InboundHandler) Get(c *gin.Context) {
	id, ok := h.headerID(c)
	if !ok {
		return
	}

	header, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, header)
}

// Confirm commits a receipt, stocking and journaling every SKU it carries
// POST /api/v1/inbound/:id/confirm
func (h *InboundHandler) Confirm(c *gin.Context) {
	id, ok := h.headerID(c)
	if !ok {
		return
	}

	var req inbound.ConfirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	result, err := h.service.Confirm(c.Request.Context(), id, req, h.getOperator(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

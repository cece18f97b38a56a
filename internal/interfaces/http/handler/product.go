package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/application/catalog"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	service *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalog.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Register)
		products.GET("", h.List)
		products.GET("/:sku", h.GetBySKU)
		products.GET("/barcode/:barcode", h.GetByBarcode)
		products.DELETE("/:sku", h.Deactivate)
	}
}

// Register creates a new catalog entry
// POST /api/v1/products
func (h *ProductHandler) Register(c *gin.Context) {
	var req catalog.RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.Register(c.Request.Context(), req, h.getOperator(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List returns catalog entries matching the filter
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	req := catalog.ListFilter{Page: 1, PageSize: 20}
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

// GetBySKU returns one catalog entry
// GET /api/v1/products/:sku
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.service.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetByBarcode resolves a barcode to its catalog entry
// GET /api/v1/products/barcode/:barcode
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.service.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Deactivate retires a catalog entry
// DELETE /api/v1/products/:sku
func (h *ProductHandler) Deactivate(c *gin.Context) {
	product, err := h.service.Deactivate(c.Request.Context(), c.Param("sku"), h.getOperator(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

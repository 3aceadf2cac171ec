package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/stationery-next/internal/http/handlers/shared"
	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/i18n"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	IsVisible         *bool           `json:"is_visible"`
	ImageURL          string          `json:"image_url"`
}

// UpdateProductRequest 更新商品请求（缺省字段不修改）
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	Price             *decimal.Decimal `json:"price"`
	Stock             *int             `json:"stock"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	IsVisible         *bool            `json:"is_visible"`
	ImageURL          *string          `json:"image_url"`
}

// VisibilityRequest 可见性切换请求
type VisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

// StockUpdateRequest 库存快速修改请求
type StockUpdateRequest struct {
	Stock             *int `json:"stock" binding:"required"`
	LowStockThreshold *int `json:"low_stock_threshold" binding:"required"`
}

// GetProducts 后台商品列表（支持库存状态筛选）
func (h *Handler) GetProducts(c *gin.Context) {
	input := parseStockListInput(c)
	products, total, err := h.ProductService.ListByStockStatus(input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.SuccessWithPage(c, service.NewProductViews(products), response.NewPagination(input.Page, input.PageSize, total))
}

// GetProduct 后台商品详情（不受前台可见性限制）
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), service.CreateProductInput{
		Name:              req.Name,
		Category:          req.Category,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		IsVisible:         req.IsVisible,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "name", product.Name)
	response.Success(c, service.NewProductView(*product))
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, service.UpdateProductInput{
		Name:              req.Name,
		Category:          req.Category,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		IsVisible:         req.IsVisible,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// DeleteProduct 删除商品；被历史订单引用时返回 409
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.product_deleted"), gin.H{"deleted": true})
}

// ToggleVisibility 切换前台可见性
func (h *Handler) ToggleVisibility(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.ToggleVisibility(c.Request.Context(), id, *req.IsVisible)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// UpdateStock 快速修改库存与阈值
func (h *Handler) UpdateStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.UpdateStock(c.Request.Context(), id, *req.Stock, *req.LowStockThreshold)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, service.NewProductView(*product))
}

func parseStockListInput(c *gin.Context) service.StockListInput {
	page, pageSize := handlershared.ParsePagination(c)
	includeOutOfStock, _ := strconv.ParseBool(c.DefaultQuery("include_out_of_stock", "false"))
	return service.StockListInput{
		Status:            strings.TrimSpace(c.DefaultQuery("status", "all")),
		Search:            strings.TrimSpace(c.Query("search")),
		Category:          strings.TrimSpace(c.Query("category")),
		IncludeOutOfStock: includeOutOfStock,
		Page:              page,
		PageSize:          pageSize,
	}
}

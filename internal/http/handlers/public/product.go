package public

import (
	"strings"

	handlershared "github.com/stationery-next/internal/http/handlers/shared"
	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 店面商品列表（仅可见商品，缺货按配置自动隐藏）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))

	products, total, err := h.ProductService.ListStorefront(search, category, page, pageSize)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithPage(c, service.NewProductViews(products), response.NewPagination(page, pageSize, total))
}

// GetProduct 店面商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetStorefrontByID(id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, categories)
}

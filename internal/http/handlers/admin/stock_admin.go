package admin

import (
	"github.com/stationery-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStockManagement 库存管理页数据
func (h *Handler) GetStockManagement(c *gin.Context) {
	view, err := h.ProductService.StockManagement(c.Request.Context(), parseStockListInput(c))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, view)
}

// GetStockAlerts 库存预警汇总
func (h *Handler) GetStockAlerts(c *gin.Context) {
	summary, err := h.ProductService.SummarizeStockAlerts(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, summary)
}

package public

import (
	handlershared "github.com/stationery-next/internal/http/handlers/shared"
	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加购请求（同一商品再次加购时替换数量）
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CartQuantityRequest 修改数量请求，数量 <= 0 时删除该行
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartCountResponse 购物车变更结果
type CartCountResponse struct {
	ItemCount int `json:"item_count"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.Get(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 添加商品或设置数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	count, err := h.CartService.AddOrSetQuantity(uid, req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.cart_updated"), CartCountResponse{ItemCount: count})
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseIDParam(c, "product_id")
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	count, err := h.CartService.UpdateQuantity(uid, productID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.cart_updated"), CartCountResponse{ItemCount: count})
}

// DeleteCartItem 删除购物车行
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseIDParam(c, "product_id")
	if !ok {
		return
	}
	count, err := h.CartService.Remove(uid, productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, CartCountResponse{ItemCount: count})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, CartCountResponse{ItemCount: 0})
}

// ValidateCart 检查购物车库存是否充足
func (h *Handler) ValidateCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	valid, err := h.CartService.ValidateStock(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"valid": valid})
}

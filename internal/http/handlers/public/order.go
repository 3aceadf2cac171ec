package public

import (
	"errors"

	handlershared "github.com/stationery-next/internal/http/handlers/shared"
	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/queue"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Checkout 结算购物车并生成订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.CheckoutService.Checkout(c.Request.Context(), uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	if err := h.QueueClient.EnqueueReportWarm(queue.ReportWarmPayload{}); err != nil && !errors.Is(err, queue.ErrQueueDisabled) {
		requestLog(c).Warnw("report_warm_enqueue_failed", "order_id", order.ID, "error", err)
	}
	response.Success(c, order)
}

// ListOrders 当前用户订单历史
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.CheckoutService.ListOrders(uid, page, pageSize)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.CheckoutService.GetOrder(uid, orderID)
	if err != nil {
		handlershared.RespondMappedError(c, err, []handlershared.MappedError{
			{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

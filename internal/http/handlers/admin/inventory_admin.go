package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/i18n"
	"github.com/stationery-next/internal/queue"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
)

// IngestItemRequest 入库条目
type IngestItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// IngestRequest 入库请求；default_threshold 为空时使用全局阈值
type IngestRequest struct {
	Items            []IngestItemRequest `json:"items" binding:"required"`
	DefaultThreshold *int                `json:"default_threshold"`
}

// IngestResponse 入库响应
type IngestResponse struct {
	Queued bool                  `json:"queued"`
	TaskID string                `json:"task_id,omitempty"`
	Items  []service.IngestItem  `json:"items,omitempty"`
	Result *service.IngestResult `json:"result,omitempty"`
}

// IngestInventory 按条目入库
func (h *Handler) IngestInventory(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	items := make([]service.IngestItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.IngestItem{Name: item.Name, Quantity: item.Quantity})
	}
	threshold := -1
	if req.DefaultThreshold != nil {
		threshold = *req.DefaultThreshold
	}
	h.reconcileOrEnqueue(c, items, threshold, constants.IngestSourceManual)
}

// multipartOverhead 表单边界与其他字段预留的字节数
const multipartOverhead = 64 << 10

// ImportInventory 上传到货单文档，识别后入库
func (h *Handler) ImportInventory(c *gin.Context) {
	maxBytes := h.Config.Ingest.MaxUploadBytes
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			respondIngestError(c, service.ErrNoFileProvided)
		case errors.As(err, &tooLarge):
			respondIngestError(c, service.ErrIngestUploadTooLarge)
		default:
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
		}
		return
	}
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		respondIngestError(c, service.ErrIngestUploadTooLarge)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	defer file.Close()

	var reader io.Reader = file
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items, err := h.InventoryService.ExtractItems(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondIngestError(c, err)
		return
	}
	threshold := -1
	if raw := strings.TrimSpace(c.PostForm("default_threshold")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		threshold = value
	}
	h.reconcileOrEnqueue(c, items, threshold, constants.IngestSourceDocument)
}

// reconcileOrEnqueue 队列启用时异步入库，否则同步对账
func (h *Handler) reconcileOrEnqueue(c *gin.Context, items []service.IngestItem, threshold int, source string) {
	locale := i18n.ResolveLocale(c)
	if h.QueueClient.Enabled() {
		payload := queue.InventoryIngestPayload{
			Items:            make([]queue.InventoryIngestItem, 0, len(items)),
			DefaultThreshold: threshold,
			Source:           source,
		}
		if uid, ok := c.Get(constants.ContextKeyUserID); ok {
			payload.RequestedBy, _ = uid.(uint)
		}
		for _, item := range items {
			payload.Items = append(payload.Items, queue.InventoryIngestItem{Name: item.Name, Quantity: item.Quantity})
		}
		taskID, err := h.QueueClient.EnqueueInventoryIngest(payload)
		if err != nil {
			respondError(c, response.CodeInternal, "error.queue_enqueue_failed", err)
			return
		}
		requestLog(c).Infow("admin_inventory_ingest_queued", "task_id", taskID, "items", len(items), "source", source)
		response.SuccessWithMsg(c, i18n.T(locale, "msg.inventory_queued"), IngestResponse{Queued: true, TaskID: taskID, Items: items})
		return
	}

	result, err := h.InventoryService.Reconcile(c.Request.Context(), items, threshold)
	if err != nil {
		respondIngestError(c, err)
		return
	}
	msg := i18n.Sprintf(locale, "msg.inventory_received", result.Created, result.Updated)
	response.SuccessWithMsg(c, msg, IngestResponse{Items: items, Result: result})
}

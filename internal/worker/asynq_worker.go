package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/provider"
	"github.com/stationery-next/internal/queue"
	"github.com/stationery-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskInventoryIngest, c.handleInventoryIngest)
	mux.HandleFunc(queue.TaskReportWarm, c.handleReportWarm)
}

func (c *Consumer) handleInventoryIngest(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_inventory_ingest_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InventoryIngestPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_inventory_ingest_unmarshal_failed", "error", err)
		// 载荷损坏重试无意义
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if len(payload.Items) == 0 {
		logger.Debugw("worker_inventory_ingest_skip_empty", "source", payload.Source)
		return nil
	}
	if c.InventoryService == nil {
		logger.Warnw("worker_inventory_ingest_service_unavailable")
		return fmt.Errorf("inventory service unavailable")
	}

	result, err := c.InventoryService.Reconcile(ctx, ingestItemsFromPayload(payload), payload.DefaultThreshold)
	if err != nil {
		logger.Warnw("worker_inventory_ingest_failed",
			"source", payload.Source,
			"requested_by", payload.RequestedBy,
			"items", len(payload.Items),
			"error", err,
		)
		// 逐条写入可能已部分提交，重放会重复累加库存
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	logger.Infow("worker_inventory_ingest_done",
		"source", payload.Source,
		"requested_by", payload.RequestedBy,
		"created", result.Created,
		"updated", result.Updated,
		"path", result.Path,
	)
	return nil
}

func (c *Consumer) handleReportWarm(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_report_warm_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReportWarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_report_warm_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if c.ReportService == nil {
		logger.Debugw("worker_report_warm_skip_service_nil")
		return nil
	}
	day, err := c.ReportService.ParseDate(strings.TrimSpace(payload.Date))
	if err != nil {
		logger.Warnw("worker_report_warm_invalid_date", "date", payload.Date, "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	report, err := c.ReportService.DailySalesReport(ctx, day)
	if err != nil {
		logger.Warnw("worker_report_warm_failed", "date", payload.Date, "error", err)
		return err
	}
	logger.Debugw("worker_report_warm_done", "date", report.Date, "orders", report.TotalOrders)
	return nil
}

func ingestItemsFromPayload(payload queue.InventoryIngestPayload) []service.IngestItem {
	items := make([]service.IngestItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, service.IngestItem{Name: item.Name, Quantity: item.Quantity})
	}
	return items
}

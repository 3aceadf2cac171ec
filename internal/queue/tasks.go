package queue

import (
	"encoding/json"
	"time"

	"github.com/stationery-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskInventoryIngest 入库对账任务
	TaskInventoryIngest = constants.TaskInventoryIngest
	// TaskReportWarm 日报缓存预热任务
	TaskReportWarm = constants.TaskReportWarm
)

const reportWarmDedup = time.Minute

// InventoryIngestItem 入库条目
type InventoryIngestItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// InventoryIngestPayload 入库对账任务载荷
type InventoryIngestPayload struct {
	Items            []InventoryIngestItem `json:"items"`
	DefaultThreshold int                   `json:"default_threshold"`
	Source           string                `json:"source"`
	RequestedBy      uint                  `json:"requested_by"`
}

// ReportWarmPayload 日报预热任务载荷（yyyy-mm-dd，空表示当天）
type ReportWarmPayload struct {
	Date string `json:"date"`
}

// NewInventoryIngestTask 创建入库对账任务
func NewInventoryIngestTask(payload InventoryIngestPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventoryIngest, body), nil
}

// NewReportWarmTask 创建日报预热任务
func NewReportWarmTask(payload ReportWarmPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarm, body), nil
}

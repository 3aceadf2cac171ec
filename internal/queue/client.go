package queue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stationery-next/internal/config"
	"github.com/stationery-next/internal/constants"

	"github.com/hibiken/asynq"
)

// Client 任务投递端；未启用时所有投递返回 ErrQueueDisabled
type Client struct {
	inner *asynq.Client
}

// NewClient 按配置创建投递端，队列关闭时返回禁用的 Client
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(RedisOpt(cfg))}, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueInventoryIngest 入库对账走 critical 队列，返回任务 ID
func (c *Client) EnqueueInventoryIngest(payload InventoryIngestPayload, opts ...asynq.Option) (string, error) {
	task, err := NewInventoryIngestTask(payload)
	if err != nil {
		return "", err
	}
	return c.enqueue(task, constants.QueueCritical, inventoryIngestOptions(opts))
}

// inventoryIngestOptions 逐条入库失败时已写入的条目不会回滚，任务不重试
func inventoryIngestOptions(opts []asynq.Option) []asynq.Option {
	return append([]asynq.Option{asynq.MaxRetry(0)}, opts...)
}

// EnqueueReportWarm 日报预热，同一日期 1 分钟内只保留一个待执行任务
func (c *Client) EnqueueReportWarm(payload ReportWarmPayload, opts ...asynq.Option) error {
	task, err := NewReportWarmTask(payload)
	if err != nil {
		return err
	}
	_, err = c.enqueue(task, constants.QueueDefault, append([]asynq.Option{asynq.Unique(reportWarmDedup)}, opts...))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func (c *Client) enqueue(task *asynq.Task, queueName string, opts []asynq.Option) (string, error) {
	if !c.Enabled() {
		return "", ErrQueueDisabled
	}
	info, err := c.inner.Enqueue(task, append([]asynq.Option{asynq.Queue(queueName)}, opts...)...)
	if err != nil {
		return "", fmt.Errorf("enqueue %s failed: %w", task.Type(), err)
	}
	return info.ID, nil
}

// ServerConfig worker 端配置；未配置队列权重时 critical 优先
func ServerConfig(cfg *config.QueueConfig) asynq.Config {
	out := asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{constants.QueueCritical: 6, constants.QueueDefault: 3},
	}
	if cfg == nil {
		return out
	}
	if cfg.Concurrency > 0 {
		out.Concurrency = cfg.Concurrency
	}
	if len(cfg.Queues) > 0 {
		out.Queues = cfg.Queues
	}
	return out
}

// RedisOpt 队列使用的 Redis 连接
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host, port := strings.TrimSpace(cfg.Host), cfg.Port
	if host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}

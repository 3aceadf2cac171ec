package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stationery-next/internal/config"
	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 消费队列任务，并按 cron 投递日报预热
type Service struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

// NewService 队列未启用时返回错误
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}

	redisOpt := queue.RedisOpt(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	svc := &Service{
		server: asynq.NewServer(redisOpt, queue.ServerConfig(cfg)),
		mux:    mux,
	}
	if spec := strings.TrimSpace(cfg.ReportWarmCron); spec != "" {
		scheduler, err := newReportWarmScheduler(redisOpt, spec)
		if err != nil {
			return nil, err
		}
		svc.scheduler = scheduler
	}
	return svc, nil
}

func newReportWarmScheduler(redisOpt asynq.RedisClientOpt, spec string) (*asynq.Scheduler, error) {
	task, err := queue.NewReportWarmTask(queue.ReportWarmPayload{})
	if err != nil {
		return nil, err
	}
	scheduler := asynq.NewScheduler(redisOpt, nil)
	entryID, err := scheduler.Register(spec, task, asynq.Queue(constants.QueueDefault))
	if err != nil {
		return nil, fmt.Errorf("register report warm schedule %q failed: %w", spec, err)
	}
	logger.Infow("worker_report_warm_scheduled", "cron", spec, "entry_id", entryID)
	return scheduler, nil
}

func (s *Service) Name() string { return "worker" }

// Start 阻塞直到 server 退出
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker not initialized")
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler failed: %w", err)
		}
	}
	return s.server.Run(s.mux)
}

func (s *Service) Stop(context.Context) error {
	if s == nil {
		return nil
	}
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}

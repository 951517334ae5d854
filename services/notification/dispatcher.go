package notification

import (
	"context"
	"fmt"

	"freightbook/config"
	"freightbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher enqueues status messages onto the notify queue; the worker
// in cron drains it and performs the actual push.
type AsynqDispatcher struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqDispatcher(logger *zap.Logger) *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyQueue,
	})
	return &AsynqDispatcher{client: client, logger: logger}
}

// DispatchStatus enqueues the message. The caller decides what to do on
// failure; the engine treats it as best-effort.
func (d *AsynqDispatcher) DispatchStatus(ctx context.Context, msg models.StatusMessage) error {
	task, err := NewStatusTask(msg)
	if err != nil {
		return fmt.Errorf("failed to build status task: %w", err)
	}
	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue status task: %w", err)
	}
	d.logger.Debug("status notification queued",
		zap.String("taskId", info.ID),
		zap.String("requestId", msg.RequestID),
		zap.String("state", string(msg.State)))
	return nil
}

// Close releases the underlying queue client.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

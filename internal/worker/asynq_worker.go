package worker

import (
	"context"
	"encoding/json"

	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/provider"
	"github.com/quickshop-api/quickshop/internal/queue"
	"github.com/quickshop-api/quickshop/internal/service"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
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
	mux.HandleFunc(queue.TaskPaymentNotification, c.handlePaymentNotification)
}

func (c *Consumer) handlePaymentNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PaymentNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payment_notification_unmarshal_failed", "error", err)
		return err
	}

	amount := decimal.Zero
	if payload.Amount != "" {
		parsed, err := decimal.NewFromString(payload.Amount)
		if err != nil {
			logger.Warnw("worker_payment_notification_invalid_amount", "amount", payload.Amount)
		} else {
			amount = parsed
		}
	}

	notification := service.PaymentNotification{
		TransactionID: payload.TransactionID,
		Status:        payload.Status,
		Amount:        models.NewMoneyFromDecimal(amount),
		OrderID:       payload.OrderID,
		UserID:        payload.UserID,
	}
	// HandleNotification 自身是尽力而为语义，内部吞掉业务失败
	return c.PaymentService.HandleNotification(notification)
}

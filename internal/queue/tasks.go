package queue

import (
	"encoding/json"

	"github.com/quickshop-api/quickshop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentNotification 支付通知任务
	TaskPaymentNotification = constants.TaskPaymentNotification
)

// PaymentNotificationPayload 支付通知任务载荷
type PaymentNotificationPayload struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	OrderID       uint   `json:"order_id"`
	UserID        uint   `json:"user_id"`
}

// NewPaymentNotificationTask 创建支付通知任务
func NewPaymentNotificationTask(payload PaymentNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentNotification, body), nil
}

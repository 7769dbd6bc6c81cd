package handlers

import (
	"github.com/quickshop-api/quickshop/internal/http/response"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/queue"
	"github.com/quickshop-api/quickshop/internal/service"

	"github.com/gin-gonic/gin"
)

// ProcessPaymentRequest 支付请求
type ProcessPaymentRequest struct {
	OrderID uint         `json:"order_id" binding:"required"`
	Method  string       `json:"method" binding:"required"`
	Amount  models.Money `json:"amount"`
}

// UpdatePaymentRequest 支付记录更新请求
type UpdatePaymentRequest struct {
	Method        string       `json:"method"`
	Amount        models.Money `json:"amount"`
	Status        string       `json:"status"`
	TransactionID string       `json:"transaction_id"`
}

// GetPaymentByOrder 获取订单的最新支付记录
func (h *Handler) GetPaymentByOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		return
	}

	payment, err := h.PaymentService.GetByOrderID(orderID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, payment)
}

// ProcessPayment 发起支付，只允许支付本人订单
func (h *Handler) ProcessPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	payment, err := h.PaymentService.Process(uid, req.OrderID, req.Method, req.Amount)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Created(c, payment)
}

// UpdatePayment 覆盖支付记录的方式/金额/状态/流水号
func (h *Handler) UpdatePayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	payment, err := h.PaymentService.Update(id, service.UpdatePaymentInput{
		Method:        req.Method,
		Amount:        req.Amount,
		Status:        req.Status,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, payment)
}

// PaymentNotify 接收外部支付通知。
// 通知按尽力而为处理：队列可用时异步消费，否则就地应用；
// 通知内容有误只记录日志，端点总是回执成功。
func (h *Handler) PaymentNotify(c *gin.Context) {
	var notification service.PaymentNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	if h.QueueClient.Enabled() {
		payload := queue.PaymentNotificationPayload{
			TransactionID: notification.TransactionID,
			Status:        notification.Status,
			Amount:        notification.Amount.String(),
			OrderID:       notification.OrderID,
			UserID:        notification.UserID,
		}
		err := h.QueueClient.EnqueuePaymentNotification(payload)
		if err == nil {
			response.Success(c, gin.H{"received": true})
			return
		}
		// 入队失败降级为就地处理
		requestLog(c).Warnw("payment_notification_enqueue_failed",
			"order_id", notification.OrderID,
			"error", err,
		)
	}

	if err := h.PaymentService.HandleNotification(notification); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.Success(c, gin.H{"received": true})
}

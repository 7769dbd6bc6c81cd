package service

import (
	"strings"
	"time"

	"github.com/quickshop-api/quickshop/internal/constants"
	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentNotification 支付网关异步通知
type PaymentNotification struct {
	TransactionID string       `json:"transactionId"`
	Status        string       `json:"status"`
	Amount        models.Money `json:"amount"`
	OrderID       uint         `json:"orderId"`
	UserID        uint         `json:"userId"`
}

// UpdatePaymentInput 支付更新输入
type UpdatePaymentInput struct {
	Method        string       `json:"method"`
	Amount        models.Money `json:"amount"`
	Status        string       `json:"status"`
	TransactionID string       `json:"transaction_id"`
}

// PaymentService 支付服务。网关为模拟实现，Process 总是立即成功。
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

// NewPaymentService 创建支付服务
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// Process 处理支付：校验订单归属后创建支付记录并模拟网关成功
func (s *PaymentService) Process(userID, orderID uint, method string, amount models.Money) (*models.Payment, error) {
	if !constants.IsValidPaymentMethod(method) {
		return nil, ErrPaymentMethodInvalid
	}
	if amount.IsNegative() {
		return nil, ErrInvalidParams
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrPaymentForbidden
	}

	now := time.Now()
	payment := &models.Payment{
		OrderID:       orderID,
		UserID:        userID,
		Method:        method,
		Amount:        amount,
		Status:        constants.PaymentStatusPending,
		TransactionID: uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 模拟网关：支付总是成功
	payment.Status = constants.PaymentStatusCompleted

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.paymentRepo.WithTx(tx).Create(payment)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("payment_processed",
		"payment_id", payment.ID,
		"order_id", orderID,
		"user_id", userID,
		"method", method,
		"amount", amount.String(),
	)
	return payment, nil
}

// GetByOrderID 获取订单的支付记录
func (s *PaymentService) GetByOrderID(orderID uint) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	payment, err := s.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListByUser 获取用户支付记录列表
func (s *PaymentService) ListByUser(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.ListByUser(filter)
}

// UpdateStatus 更新支付状态
func (s *PaymentService) UpdateStatus(id uint, status string) (*models.Payment, error) {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if !constants.IsValidPaymentStatus(normalized) {
		return nil, ErrPaymentStatusInvalid
	}
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if err := s.paymentRepo.UpdateStatus(id, normalized); err != nil {
		return nil, err
	}
	payment.Status = normalized
	return payment, nil
}

// Update 覆盖支付记录的可变字段
func (s *PaymentService) Update(id uint, input UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	if input.Method != "" {
		if !constants.IsValidPaymentMethod(input.Method) {
			return nil, ErrPaymentMethodInvalid
		}
		payment.Method = input.Method
	}
	if input.Status != "" {
		normalized := strings.ToUpper(strings.TrimSpace(input.Status))
		if !constants.IsValidPaymentStatus(normalized) {
			return nil, ErrPaymentStatusInvalid
		}
		payment.Status = normalized
	}
	if !input.Amount.IsZero() {
		payment.Amount = input.Amount
	}
	if input.TransactionID != "" {
		payment.TransactionID = input.TransactionID
	}
	payment.UpdatedAt = time.Now()

	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// HandleNotification 处理异步支付通知。
// 尽力而为：任何解析或查找失败只记日志，不向调用方返回错误。
func (s *PaymentService) HandleNotification(n PaymentNotification) error {
	if n.OrderID == 0 {
		logger.Warnw("payment_notification_missing_order_id", "transaction_id", n.TransactionID)
		return nil
	}

	order, err := s.orderRepo.GetByID(n.OrderID)
	if err != nil {
		logger.Errorw("payment_notification_order_lookup_failed", "order_id", n.OrderID, "error", err)
		return nil
	}
	if order == nil {
		logger.Warnw("payment_notification_order_not_found", "order_id", n.OrderID)
		return nil
	}

	payment, err := s.paymentRepo.GetByOrderID(n.OrderID)
	if err != nil {
		logger.Errorw("payment_notification_payment_lookup_failed", "order_id", n.OrderID, "error", err)
		return nil
	}
	if payment == nil {
		logger.Warnw("payment_notification_payment_not_found", "order_id", n.OrderID)
		return nil
	}

	if n.Status != "" {
		normalized := strings.ToUpper(strings.TrimSpace(n.Status))
		if constants.IsValidPaymentStatus(normalized) {
			payment.Status = normalized
		} else {
			logger.Warnw("payment_notification_invalid_status", "order_id", n.OrderID, "status", n.Status)
		}
	}
	if n.TransactionID != "" {
		payment.TransactionID = n.TransactionID
	}
	payment.UpdatedAt = time.Now()

	if err := s.paymentRepo.Update(payment); err != nil {
		logger.Errorw("payment_notification_save_failed", "order_id", n.OrderID, "error", err)
		return nil
	}

	logger.Infow("payment_notification_applied",
		"payment_id", payment.ID,
		"order_id", n.OrderID,
		"status", payment.Status,
	)
	return nil
}

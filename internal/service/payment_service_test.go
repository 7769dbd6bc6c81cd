package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quickshop-api/quickshop/internal/constants"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:payment_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Payment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewPaymentService(repository.NewPaymentRepository(db), repository.NewOrderRepository(db)), db
}

func createPaymentTestOrder(t *testing.T, db *gorm.DB, userID uint) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:     userID,
		Status:     constants.OrderStatusPending,
		TotalPrice: models.NewMoneyFromFloat(999.99),
		OrderDate:  time.Now(),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestProcessPaymentSimulatedGateway(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)

	order := createPaymentTestOrder(t, db, 1)

	payment, err := svc.Process(1, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99))
	if err != nil {
		t.Fatalf("process payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("expected simulated gateway to complete payment, got %s", payment.Status)
	}
	if payment.TransactionID == "" {
		t.Fatalf("expected generated transaction id")
	}
	if payment.OrderID != order.ID || payment.UserID != 1 {
		t.Fatalf("payment not bound to order: %+v", payment)
	}
}

func TestProcessPaymentRejectsForeignOrder(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)

	order := createPaymentTestOrder(t, db, 1)

	_, err := svc.Process(2, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99))
	if !errors.Is(err, ErrPaymentForbidden) {
		t.Fatalf("expected ErrPaymentForbidden, got %v", err)
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)

	order := createPaymentTestOrder(t, db, 1)

	if _, err := svc.Process(1, order.ID, "BITCOIN", models.NewMoneyFromFloat(10)); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got %v", err)
	}
	if _, err := svc.Process(1, order.ID, constants.PaymentMethodPaypal, models.NewMoneyFromFloat(-1)); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for negative amount, got %v", err)
	}
	if _, err := svc.Process(1, 99999, constants.PaymentMethodPaypal, models.NewMoneyFromFloat(10)); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestGetByOrderIDReturnsLatest(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)

	order := createPaymentTestOrder(t, db, 1)

	if _, err := svc.GetByOrderID(order.ID); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound before payments, got %v", err)
	}

	if _, err := svc.Process(1, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99)); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	second, err := svc.Process(1, order.ID, constants.PaymentMethodPaypal, models.NewMoneyFromFloat(999.99))
	if err != nil {
		t.Fatalf("second payment failed: %v", err)
	}

	latest, err := svc.GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("get by order failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected latest payment %d, got %d", second.ID, latest.ID)
	}

	if _, err := svc.GetByOrderID(99999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for unknown order, got %v", err)
	}
}

func TestUpdateStatusValidates(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)

	order := createPaymentTestOrder(t, db, 1)
	payment, err := svc.Process(1, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99))
	if err != nil {
		t.Fatalf("process payment failed: %v", err)
	}

	// 状态大小写不敏感，存储统一为大写
	updated, err := svc.UpdateStatus(payment.ID, "failed")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.PaymentStatusFailed {
		t.Fatalf("expected FAILED, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(payment.ID, "REFUNDED"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}
	if _, err := svc.UpdateStatus(99999, "FAILED"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestUpdatePaymentFields(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)

	order := createPaymentTestOrder(t, db, 1)
	payment, err := svc.Process(1, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99))
	if err != nil {
		t.Fatalf("process payment failed: %v", err)
	}

	updated, err := svc.Update(payment.ID, UpdatePaymentInput{
		Method:        constants.PaymentMethodBankTransfer,
		Status:        "pending",
		TransactionID: "TX-REPLAY-1",
	})
	if err != nil {
		t.Fatalf("update payment failed: %v", err)
	}
	if updated.Method != constants.PaymentMethodBankTransfer {
		t.Fatalf("method not applied: %s", updated.Method)
	}
	if updated.Status != constants.PaymentStatusPending {
		t.Fatalf("status not normalized: %s", updated.Status)
	}
	if updated.TransactionID != "TX-REPLAY-1" {
		t.Fatalf("transaction id not applied: %s", updated.TransactionID)
	}

	if _, err := svc.Update(payment.ID, UpdatePaymentInput{Method: "BITCOIN"}); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got %v", err)
	}
	if _, err := svc.Update(99999, UpdatePaymentInput{}); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestHandleNotificationBestEffort(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)

	// 缺少订单号只记日志，不返回错误
	if err := svc.HandleNotification(PaymentNotification{TransactionID: "TX-1"}); err != nil {
		t.Fatalf("expected nil for missing order id, got %v", err)
	}
	if err := svc.HandleNotification(PaymentNotification{OrderID: 99999, Status: "COMPLETED"}); err != nil {
		t.Fatalf("expected nil for unknown order, got %v", err)
	}

	order := createPaymentTestOrder(t, db, 1)
	payment, err := svc.Process(1, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99))
	if err != nil {
		t.Fatalf("process payment failed: %v", err)
	}

	if err := svc.HandleNotification(PaymentNotification{
		OrderID: order.ID,
		Status:  "REFUNDED",
	}); err != nil {
		t.Fatalf("expected nil for invalid status, got %v", err)
	}
	reloaded, err := svc.GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("reload payment failed: %v", err)
	}
	if reloaded.Status != constants.PaymentStatusCompleted {
		t.Fatalf("invalid status should be ignored, got %s", reloaded.Status)
	}

	if err := svc.HandleNotification(PaymentNotification{
		OrderID:       order.ID,
		Status:        "failed",
		TransactionID: "TX-GATEWAY-7",
	}); err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}
	reloaded, err = svc.GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("reload payment failed: %v", err)
	}
	if reloaded.ID != payment.ID {
		t.Fatalf("expected same payment record, got %d", reloaded.ID)
	}
	if reloaded.Status != constants.PaymentStatusFailed {
		t.Fatalf("expected FAILED after notification, got %s", reloaded.Status)
	}
	if reloaded.TransactionID != "TX-GATEWAY-7" {
		t.Fatalf("expected gateway transaction id, got %s", reloaded.TransactionID)
	}
}

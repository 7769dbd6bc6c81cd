package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quickshop-api/quickshop/internal/constants"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/provider"
	"github.com/quickshop-api/quickshop/internal/repository"
	"github.com/quickshop-api/quickshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPaymentHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:payment_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Payment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	container := &provider.Container{
		PaymentService: service.NewPaymentService(
			repository.NewPaymentRepository(db),
			repository.NewOrderRepository(db),
		),
	}
	return New(container), db
}

func TestPaymentNotifyRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h, _ := setupPaymentHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/notify", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.PaymentNotify(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestPaymentNotifyAppliesInline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h, db := setupPaymentHandlerTest(t)

	order := &models.Order{
		UserID:     1,
		Status:     constants.OrderStatusPending,
		TotalPrice: models.NewMoneyFromFloat(999.99),
		OrderDate:  time.Now(),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := h.PaymentService.Process(1, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99)); err != nil {
		t.Fatalf("process payment failed: %v", err)
	}

	body := fmt.Sprintf(`{"transactionId":"TX-NOTIFY-1","status":"FAILED","amount":"999.99","orderId":%d,"userId":1}`, order.ID)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.PaymentNotify(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"received":true`) {
		t.Fatalf("expected receipt ack, got %s", w.Body.String())
	}

	payment, err := h.PaymentService.GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("reload payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusFailed {
		t.Fatalf("expected FAILED after notify, got %s", payment.Status)
	}
	if payment.TransactionID != "TX-NOTIFY-1" {
		t.Fatalf("expected gateway transaction id, got %s", payment.TransactionID)
	}
}

func TestPaymentNotifyUnknownOrderStillAcks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h, _ := setupPaymentHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/notify", strings.NewReader(`{"transactionId":"TX-NOTIFY-2","status":"COMPLETED","orderId":99999}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.PaymentNotify(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for unknown order, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"received":true`) {
		t.Fatalf("expected receipt ack, got %s", w.Body.String())
	}
}

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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	orderSvc := NewOrderService(repository.NewOrderRepository(db), cartRepo, repository.NewPaymentRepository(db))
	cartSvc := NewCartService(cartRepo, repository.NewProductRepository(db))
	return orderSvc, cartSvc, db
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name string, price float64, quantity int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     name,
		Price:    models.NewMoneyFromFloat(price),
		Quantity: quantity,
		Category: "Electronics",
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", name, err)
	}
	return product
}

func TestPlaceOrderSnapshotsCartAndKeepsCartIntact(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)

	laptop := createOrderTestProduct(t, db, "Laptop", 999.99, 10)
	mouse := createOrderTestProduct(t, db, "Wireless Mouse", 49.99, 30)
	if _, err := cartSvc.AddItem(1, laptop.ID, 1); err != nil {
		t.Fatalf("add laptop failed: %v", err)
	}
	if _, err := cartSvc.AddItem(1, mouse.ID, 2); err != nil {
		t.Fatalf("add mouse failed: %v", err)
	}

	order, err := orderSvc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if !order.TotalPrice.Equal(decimal.RequireFromString("1099.97")) {
		t.Fatalf("expected total 1099.97, got %s", order.TotalPrice.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	names := map[string]bool{}
	for _, item := range order.Items {
		names[item.ProductName] = true
	}
	if !names["Laptop"] || !names["Wireless Mouse"] {
		t.Fatalf("expected product name snapshots, got %+v", names)
	}

	// 下单不清空购物车，也不扣减库存
	cart, err := cartSvc.GetOrCreate(1)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected cart untouched after order, got %d items", len(cart.Items))
	}
	var reloaded models.Product
	if err := db.First(&reloaded, laptop.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Quantity != 10 {
		t.Fatalf("expected stock unchanged, got %d", reloaded.Quantity)
	}
}

func TestPlaceOrderPriceChangeDoesNotAffectPlacedOrder(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)

	laptop := createOrderTestProduct(t, db, "Laptop", 999.99, 10)
	if _, err := cartSvc.AddItem(1, laptop.ID, 1); err != nil {
		t.Fatalf("add laptop failed: %v", err)
	}

	order, err := orderSvc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", laptop.ID).
		Update("price", models.NewMoneyFromFloat(1299.99)).Error; err != nil {
		t.Fatalf("update product price failed: %v", err)
	}

	reloaded, err := orderSvc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if len(reloaded.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(reloaded.Items))
	}
	if !reloaded.Items[0].Price.Equal(decimal.RequireFromString("999.99")) {
		t.Fatalf("expected snapshot price 999.99, got %s", reloaded.Items[0].Price.String())
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)

	if _, err := orderSvc.PlaceOrder(1); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart without cart, got %v", err)
	}

	if _, err := cartSvc.GetOrCreate(1); err != nil {
		t.Fatalf("create empty cart failed: %v", err)
	}
	if _, err := orderSvc.PlaceOrder(1); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for empty cart, got %v", err)
	}
}

func TestGetOrderByIDNotFound(t *testing.T) {
	orderSvc, _, _ := setupOrderServiceTest(t)

	if _, err := orderSvc.GetByID(99999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestListByUserStatusFilter(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)

	laptop := createOrderTestProduct(t, db, "Laptop", 999.99, 10)
	if _, err := cartSvc.AddItem(1, laptop.ID, 1); err != nil {
		t.Fatalf("add laptop failed: %v", err)
	}
	first, err := orderSvc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place first order failed: %v", err)
	}
	if _, err := cartSvc.AddItem(1, laptop.ID, 1); err != nil {
		t.Fatalf("refill cart failed: %v", err)
	}
	if _, err := orderSvc.PlaceOrder(1); err != nil {
		t.Fatalf("place second order failed: %v", err)
	}
	if _, err := orderSvc.Update(first.ID, UpdateOrderInput{Status: constants.OrderStatusCompleted}); err != nil {
		t.Fatalf("complete first order failed: %v", err)
	}

	orders, total, err := orderSvc.ListByUser(1, "", 1, 20)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders, got total=%d len=%d", total, len(orders))
	}

	orders, total, err = orderSvc.ListByUser(1, constants.OrderStatusCompleted, 1, 20)
	if err != nil {
		t.Fatalf("list completed orders failed: %v", err)
	}
	if total != 1 || orders[0].ID != first.ID {
		t.Fatalf("expected only completed order, got total=%d", total)
	}

	// 未知状态不报错，只是过滤结果为空
	_, total, err = orderSvc.ListByUser(1, "shipped", 1, 20)
	if err != nil {
		t.Fatalf("list with unknown status failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no orders for unknown status, got %d", total)
	}

	_, total, err = orderSvc.ListByUser(2, "", 1, 20)
	if err != nil {
		t.Fatalf("list for other user failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no orders for other user, got %d", total)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)

	laptop := createOrderTestProduct(t, db, "Laptop", 999.99, 10)
	if _, err := cartSvc.AddItem(1, laptop.ID, 1); err != nil {
		t.Fatalf("add laptop failed: %v", err)
	}
	order, err := orderSvc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	updated, err := orderSvc.Update(order.ID, UpdateOrderInput{Status: constants.OrderStatusCanceled})
	if err != nil {
		t.Fatalf("update order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled status, got %s", updated.Status)
	}

	reloaded, err := orderSvc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCanceled {
		t.Fatalf("status not persisted, got %s", reloaded.Status)
	}

	if _, err := orderSvc.Update(99999, UpdateOrderInput{Status: constants.OrderStatusCompleted}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDeleteOrderCascades(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)

	laptop := createOrderTestProduct(t, db, "Laptop", 999.99, 10)
	if _, err := cartSvc.AddItem(1, laptop.ID, 1); err != nil {
		t.Fatalf("add laptop failed: %v", err)
	}
	order, err := orderSvc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	paymentSvc := NewPaymentService(repository.NewPaymentRepository(db), repository.NewOrderRepository(db))
	if _, err := paymentSvc.Process(1, order.ID, constants.PaymentMethodCreditCard, models.NewMoneyFromFloat(999.99)); err != nil {
		t.Fatalf("process payment failed: %v", err)
	}

	if err := orderSvc.Delete(order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if _, err := orderSvc.GetByID(order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound after delete, got %v", err)
	}

	payment, err := repository.NewPaymentRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("lookup payment failed: %v", err)
	}
	if payment != nil {
		t.Fatalf("expected payment removed with order, got %+v", payment)
	}

	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count order items failed: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected order items removed, got %d", itemCount)
	}

	if err := orderSvc.Delete(order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on double delete, got %v", err)
	}
}

package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:cart_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)), db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, name string, price float64, quantity int) *models.Product {
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

func TestGetOrCreateReusesCart(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	first, err := svc.GetOrCreate(1)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if first.ID == 0 || first.UserID != 1 {
		t.Fatalf("unexpected cart: %+v", first)
	}
	if len(first.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(first.Items))
	}

	second, err := svc.GetOrCreate(1)
	if err != nil {
		t.Fatalf("second get or create failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same cart, got %d and %d", first.ID, second.ID)
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	laptop := createCartTestProduct(t, db, "Laptop", 999.99, 10)

	item, err := svc.AddItem(1, laptop.ID, 2)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}

	item, err = svc.AddItem(1, laptop.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected incremented quantity 5, got %d", item.Quantity)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("product_id = ?", laptop.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single cart line, got %d", count)
	}
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	laptop := createCartTestProduct(t, db, "Laptop", 999.99, 10)

	if _, err := svc.AddItem(1, laptop.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddItem(1, 99999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestUpdateItemQuantityChecksOwnership(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	laptop := createCartTestProduct(t, db, "Laptop", 999.99, 10)
	item, err := svc.AddItem(1, laptop.ID, 1)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if _, err := svc.UpdateItemQuantity(2, item.ID, 5); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for foreign user, got %v", err)
	}

	updated, err := svc.UpdateItemQuantity(1, item.ID, 5)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if updated.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", updated.Quantity)
	}

	if _, err := svc.UpdateItemQuantity(1, item.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	laptop := createCartTestProduct(t, db, "Laptop", 999.99, 10)
	item, err := svc.AddItem(1, laptop.ID, 1)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if err := svc.RemoveItem(2, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for foreign user, got %v", err)
	}
	if err := svc.RemoveItem(1, item.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if err := svc.RemoveItem(1, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound after removal, got %v", err)
	}
}

func TestAddItemAfterRemoveAndClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	laptop := createCartTestProduct(t, db, "Laptop", 999.99, 10)

	item, err := svc.AddItem(1, laptop.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.RemoveItem(1, item.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}

	// 移除后同商品可以重新加入，数量从头计
	item, err = svc.AddItem(1, laptop.ID, 3)
	if err != nil {
		t.Fatalf("re-add after remove failed: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("expected fresh quantity 3, got %d", item.Quantity)
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	item, err = svc.AddItem(1, laptop.ID, 1)
	if err != nil {
		t.Fatalf("re-add after clear failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected fresh quantity 1, got %d", item.Quantity)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("product_id = ?", laptop.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single cart line, got %d", count)
	}
}

func TestClearCart(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	if err := svc.Clear(1); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for missing cart, got %v", err)
	}

	laptop := createCartTestProduct(t, db, "Laptop", 999.99, 10)
	mouse := createCartTestProduct(t, db, "Wireless Mouse", 49.99, 30)
	if _, err := svc.AddItem(1, laptop.ID, 1); err != nil {
		t.Fatalf("add laptop failed: %v", err)
	}
	if _, err := svc.AddItem(1, mouse.ID, 2); err != nil {
		t.Fatalf("add mouse failed: %v", err)
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}

	cart, err := svc.GetOrCreate(1)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(cart.Items))
	}
}

package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewProductService(repository.NewProductRepository(db)), db
}

func createTestProduct(t *testing.T, svc *ProductService, name string, price float64, quantity int, category string) *models.Product {
	t.Helper()

	product, err := svc.Create(ProductInput{
		Name:     name,
		Price:    models.NewMoneyFromFloat(price),
		Quantity: quantity,
		Category: category,
	})
	if err != nil {
		t.Fatalf("create product %s failed: %v", name, err)
	}
	return product
}

func TestCreateProductRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	createTestProduct(t, svc, "Laptop", 999.99, 10, "Electronics")

	_, err := svc.Create(ProductInput{
		Name:     "laptop",
		Price:    models.NewMoneyFromFloat(899.99),
		Quantity: 5,
	})
	if !errors.Is(err, ErrProductExists) {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}
}

func TestCreateProductValidatesInput(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	cases := []ProductInput{
		{Name: "", Price: models.NewMoneyFromFloat(10), Quantity: 1},
		{Name: "Mouse", Price: models.NewMoneyFromFloat(-1), Quantity: 1},
		{Name: "Mouse", Price: models.NewMoneyFromFloat(10), Quantity: -1},
	}
	for i, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrProductInvalid) {
			t.Fatalf("case %d: expected ErrProductInvalid, got %v", i, err)
		}
	}
}

func TestListByCategoryExactMatch(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	createTestProduct(t, svc, "Laptop", 999.99, 10, "Electronics")
	createTestProduct(t, svc, "Smartphone", 699.99, 15, "Electronics")
	createTestProduct(t, svc, "Desk Chair", 199.99, 6, "Furniture")

	products, total, err := svc.ListByCategory("Electronics", 1, 20)
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 electronics, got total=%d len=%d", total, len(products))
	}

	products, total, err = svc.ListByCategory("Electro", 1, 20)
	if err != nil {
		t.Fatalf("list by partial category failed: %v", err)
	}
	if total != 0 || len(products) != 0 {
		t.Fatalf("expected exact category match only, got total=%d", total)
	}
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(ProductInput{
		Name:        "Smartphone",
		Price:       models.NewMoneyFromFloat(699.99),
		Quantity:    15,
		Category:    "Electronics",
		Description: "Latest smartphone with 5G capability",
	}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if _, err := svc.Create(ProductInput{
		Name:        "Running Shoes",
		Price:       models.NewMoneyFromFloat(129.99),
		Quantity:    12,
		Category:    "Sports",
		Description: "Lightweight running shoes with cushioning",
	}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	products, total, err := svc.Search("phone", 1, 20)
	if err != nil {
		t.Fatalf("search by name failed: %v", err)
	}
	if total != 1 || products[0].Name != "Smartphone" {
		t.Fatalf("expected smartphone by name, got total=%d", total)
	}

	_, total, err = svc.Search("cushioning", 1, 20)
	if err != nil {
		t.Fatalf("search by description failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected match by description, got total=%d", total)
	}

	// 关键字大小写不敏感
	products, total, err = svc.Search("PHONE", 1, 20)
	if err != nil {
		t.Fatalf("search with uppercase keyword failed: %v", err)
	}
	if total != 1 || products[0].Name != "Smartphone" {
		t.Fatalf("expected case-insensitive match, got total=%d", total)
	}
}

func TestListByPriceRangeInclusive(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	createTestProduct(t, svc, "Blender", 59.99, 10, "Home Appliances")
	createTestProduct(t, svc, "Backpack", 79.99, 25, "Accessories")
	createTestProduct(t, svc, "Headphones", 199.99, 20, "Electronics")

	products, total, err := svc.ListByPriceRange(decimal.RequireFromString("59.99"), decimal.RequireFromString("79.99"), 1, 20)
	if err != nil {
		t.Fatalf("list by price range failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected inclusive bounds to match 2 products, got total=%d", total)
	}

	if _, _, err := svc.ListByPriceRange(decimal.NewFromInt(-1), decimal.NewFromInt(10), 1, 20); !errors.Is(err, ErrPriceRangeInvalid) {
		t.Fatalf("expected ErrPriceRangeInvalid for negative min, got %v", err)
	}
	if _, _, err := svc.ListByPriceRange(decimal.NewFromInt(100), decimal.NewFromInt(10), 1, 20); !errors.Is(err, ErrPriceRangeInvalid) {
		t.Fatalf("expected ErrPriceRangeInvalid for inverted range, got %v", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	laptop := createTestProduct(t, svc, "Laptop", 999.99, 10, "Electronics")
	createTestProduct(t, svc, "Smartphone", 699.99, 15, "Electronics")

	updated, err := svc.Update(laptop.ID, ProductInput{
		Name:     "Laptop Pro",
		Price:    models.NewMoneyFromFloat(1299.99),
		Quantity: 8,
		Category: "Electronics",
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Name != "Laptop Pro" || updated.Quantity != 8 {
		t.Fatalf("update not applied: %+v", updated)
	}

	_, err = svc.Update(laptop.ID, ProductInput{
		Name:     "smartphone",
		Price:    models.NewMoneyFromFloat(1.00),
		Quantity: 1,
	})
	if !errors.Is(err, ErrProductExists) {
		t.Fatalf("expected ErrProductExists on rename collision, got %v", err)
	}

	_, err = svc.Update(99999, ProductInput{
		Name:     "Ghost",
		Price:    models.NewMoneyFromFloat(1.00),
		Quantity: 1,
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	laptop := createTestProduct(t, svc, "Laptop", 999.99, 10, "Electronics")

	if err := svc.Delete(laptop.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.GetByID(laptop.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := svc.Delete(laptop.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on double delete, got %v", err)
	}
}

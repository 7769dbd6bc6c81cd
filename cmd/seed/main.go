package main

import (
	"time"

	"github.com/quickshop-api/quickshop/internal/config"
	"github.com/quickshop-api/quickshop/internal/constants"
	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示账号
	demoUser := seedDemoUser(stdLog.Printf)

	// 演示商品
	products := []models.Product{
		{Name: "Laptop", Price: models.NewMoneyFromFloat(999.99), Quantity: 10, Category: "Electronics", Description: "High-performance laptop with 16GB RAM", ImageURL: "https://example.com/laptop.jpg"},
		{Name: "Smartphone", Price: models.NewMoneyFromFloat(699.99), Quantity: 15, Category: "Electronics", Description: "Latest smartphone with 5G capability", ImageURL: "https://example.com/phone.jpg"},
		{Name: "Headphones", Price: models.NewMoneyFromFloat(199.99), Quantity: 20, Category: "Electronics", Description: "Noise-cancelling wireless headphones", ImageURL: "https://example.com/headphones.jpg"},
		{Name: "Coffee Maker", Price: models.NewMoneyFromFloat(89.99), Quantity: 8, Category: "Home Appliances", Description: "Programmable coffee maker with thermal carafe", ImageURL: "https://example.com/coffee.jpg"},
		{Name: "Running Shoes", Price: models.NewMoneyFromFloat(129.99), Quantity: 12, Category: "Sports", Description: "Lightweight running shoes with cushioning", ImageURL: "https://example.com/shoes.jpg"},
		{Name: "Backpack", Price: models.NewMoneyFromFloat(79.99), Quantity: 25, Category: "Accessories", Description: "Water-resistant backpack with laptop compartment", ImageURL: "https://example.com/backpack.jpg"},
		{Name: "Smart Watch", Price: models.NewMoneyFromFloat(249.99), Quantity: 5, Category: "Electronics", Description: "Fitness tracker with heart rate monitor", ImageURL: "https://example.com/watch.jpg"},
		{Name: "Desk Chair", Price: models.NewMoneyFromFloat(199.99), Quantity: 6, Category: "Furniture", Description: "Ergonomic office chair with lumbar support", ImageURL: "https://example.com/chair.jpg"},
		{Name: "Blender", Price: models.NewMoneyFromFloat(59.99), Quantity: 10, Category: "Home Appliances", Description: "High-speed blender for smoothies and more", ImageURL: "https://example.com/blender.jpg"},
		{Name: "Wireless Mouse", Price: models.NewMoneyFromFloat(49.99), Quantity: 30, Category: "Electronics", Description: "Ergonomic wireless mouse with long battery life", ImageURL: "https://example.com/mouse.jpg"},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("LOWER(name) = LOWER(?)", product.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", product.Name)
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Name)
	}

	// 演示订单：一台笔记本的快照
	if demoUser != nil {
		seedDemoOrder(demoUser, stdLog.Printf)
	}

	stdLog.Printf("Seed completed")
}

func seedDemoUser(logf func(format string, v ...interface{})) *models.User {
	var existing models.User
	if err := models.DB.Where("username = ?", "username").First(&existing).Error; err == nil {
		logf("Demo user already exists: %s", existing.Username)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		logf("Failed to hash demo password: %v", err)
		return nil
	}
	user := models.User{
		Username:     "username",
		Email:        "email@example.com",
		PasswordHash: string(hash),
		FirstName:    "John",
		LastName:     "Doe",
		Address:      "123 Main St",
		PhoneNumber:  "1234567890",
		Role:         constants.RoleCustomer,
		Status:       constants.UserStatusActive,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		logf("Failed to create demo user: %v", err)
		return nil
	}
	logf("Created demo user: %s", user.Username)

	if err := models.DB.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		logf("Failed to create demo cart: %v", err)
	}
	return &user
}

func seedDemoOrder(user *models.User, logf func(format string, v ...interface{})) {
	var count int64
	models.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		logf("Demo order already exists")
		return
	}

	order := models.Order{
		UserID:     user.ID,
		Status:     constants.OrderStatusPending,
		TotalPrice: models.NewMoneyFromFloat(999.99),
		OrderDate:  time.Now(),
	}
	if err := models.DB.Create(&order).Error; err != nil {
		logf("Failed to create demo order: %v", err)
		return
	}
	item := models.OrderItem{
		OrderID:     order.ID,
		ProductName: "Laptop",
		Quantity:    1,
		Price:       models.NewMoneyFromFloat(999.99),
	}
	if err := models.DB.Create(&item).Error; err != nil {
		logf("Failed to create demo order item: %v", err)
		return
	}
	logf("Created demo order #%d", order.ID)
}

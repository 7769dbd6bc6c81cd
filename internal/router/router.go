package router

import (
	"fmt"
	"strings"

	"github.com/quickshop-api/quickshop/internal/cache"
	"github.com/quickshop-api/quickshop/internal/config"
	"github.com/quickshop-api/quickshop/internal/http/handlers"
	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "qs"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	auth := JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo)
	rbac := RBACMiddleware(c.AuthzService)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			users.POST("/login/username", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndQueryField("username")), h.LoginWithUsername)
			users.POST("/login/email", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndQueryField("email")), h.LoginWithEmail)

			users.PUT("/reset-password", auth, h.ResetPassword)
			users.PUT("/update-profile/:id", auth, h.UpdateProfile)
			users.GET("/display-UserDetails/:id", auth, h.GetUserDetails)

			// 管理端
			users.GET("/allUsers", auth, rbac, h.AllUsers)
			users.DELETE("/delete/:id", auth, rbac, h.DeleteUser)
		}

		products := api.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.GET("/search", h.SearchProducts)
			products.GET("/category/:category", h.ListProductsByCategory)
			products.GET("/:id", h.GetProduct)
			products.GET("/:id/:max", h.ListProductsByPriceRange)

			// 管理端
			products.POST("", auth, rbac, h.CreateProduct)
			products.PUT("/:id", auth, rbac, h.UpdateProduct)
			products.DELETE("/:id", auth, rbac, h.DeleteProduct)
		}

		cart := api.Group("/cart", auth)
		{
			cart.GET("", h.GetCart)
			cart.DELETE("", h.ClearCart)
			cart.POST("/items", h.AddCartItem)
			cart.GET("/items/:id", h.GetCartItem)
			cart.PATCH("/items/:id", h.UpdateCartItemQuantity)
			cart.DELETE("/items/:id", h.RemoveCartItem)
		}

		orders := api.Group("/orders", auth)
		{
			orders.GET("", h.ListOrders)
			orders.POST("", h.PlaceOrder)
			orders.GET("/:id", h.GetOrder)
			orders.PUT("/:id", h.UpdateOrder)
			orders.DELETE("/:id", h.DeleteOrder)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/notify", h.PaymentNotify)

			payments.GET("/:orderId", auth, h.GetPaymentByOrder)
			payments.POST("", auth, h.ProcessPayment)
			payments.PUT("/:id", auth, h.UpdatePayment)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

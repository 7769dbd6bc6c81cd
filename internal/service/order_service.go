package service

import (
	"time"

	"github.com/quickshop-api/quickshop/internal/constants"
	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UpdateOrderInput 订单更新输入
type UpdateOrderInput struct {
	Status string `json:"status"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	paymentRepo repository.PaymentRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, paymentRepo repository.PaymentRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		paymentRepo: paymentRepo,
	}
}

// ListByUser 获取用户订单列表，可按状态过滤
func (s *OrderService) ListByUser(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// PlaceOrder 下单：将购物车内容固化为订单快照。
// 商品名称与单价在此刻复制，后续改价不影响已生成订单；
// 购物车不会被清空，库存也不会扣减。
func (s *OrderService) PlaceOrder(userID uint) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		if line.Product == nil {
			return nil, ErrProductNotFound
		}
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Product.Price,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	order := &models.Order{
		UserID:     userID,
		Status:     constants.OrderStatusPending,
		TotalPrice: models.NewMoneyFromDecimal(total),
		OrderDate:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	logger.Infow("order_placed",
		"order_id", order.ID,
		"user_id", userID,
		"total", order.TotalPrice.String(),
		"item_count", len(items),
	)
	return order, nil
}

// Update 覆盖订单状态
func (s *OrderService) Update(id uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(id, input.Status, map[string]interface{}{
		"updated_at": time.Now(),
	}); err != nil {
		return nil, err
	}
	order.Status = input.Status
	return order, nil
}

// Delete 删除订单：先支付记录，再订单项，最后订单本身
func (s *OrderService) Delete(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).DeleteByOrderID(id); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	logger.Infow("order_deleted", "order_id", id)
	return nil
}

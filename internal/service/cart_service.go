package service

import (
	"time"

	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"gorm.io/gorm"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreate 获取用户购物车，不存在时懒创建空购物车
func (s *CartService) GetOrCreate(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now()
	cart = &models.Cart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return cart, nil
}

// AddItem 添加商品到购物车；同一商品重复添加时累加数量
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	var result *models.CartItem
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		cart, err := cartRepo.GetByUser(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			now := time.Now()
			cart = &models.Cart{
				UserID:    userID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := cartRepo.Create(cart); err != nil {
				return err
			}
		}

		existing, err := cartRepo.GetItem(cart.ID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			newQuantity := existing.Quantity + quantity
			if err := cartRepo.UpdateItemQuantity(existing.ID, newQuantity); err != nil {
				return err
			}
			existing.Quantity = newQuantity
			result = existing
			return nil
		}

		now := time.Now()
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := cartRepo.CreateItem(item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Product = product
	return result, nil
}

// UpdateItemQuantity 覆盖购物车项数量
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteItemByID(item.ID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	return s.cartRepo.ClearItems(cart.ID)
}

// GetItem 获取当前用户的购物车项
func (s *CartService) GetItem(userID, itemID uint) (*models.CartItem, error) {
	return s.ownedItem(userID, itemID)
}

// ownedItem 校验购物车项归属于当前用户
func (s *CartService) ownedItem(userID, itemID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.ID != item.CartID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

package repository

import (
	"errors"

	"github.com/quickshop-api/quickshop/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	GetItem(cartID, productID uint) (*models.CartItem, error)
	GetItemByID(itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(cartID, productID uint) error
	DeleteItemByID(itemID uint) error
	ClearItems(cartID uint) error
	DeleteByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车（带商品信息）
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id asc")
	}).Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// GetItem 获取购物车项
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByID 根据项 ID 获取购物车项
func (r *GormCartRepository) GetItemByID(itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 新增购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(cartID, productID uint) error {
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// DeleteItemByID 根据项 ID 删除购物车项
func (r *GormCartRepository) DeleteItemByID(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ClearItems 清空购物车项
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// DeleteByUser 删除用户购物车及其全部项（注销账号时使用）
func (r *GormCartRepository) DeleteByUser(userID uint) error {
	cart, err := r.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	if err := r.ClearItems(cart.ID); err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, cart.ID).Error
}

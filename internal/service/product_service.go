package service

import (
	"strings"
	"time"

	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name        string       `json:"name"`
	Price       models.Money `json:"price"`
	Quantity    int          `json:"quantity"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
}

// ProductService 商品目录服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ListByCategory 按分类查询商品
func (s *ProductService) ListByCategory(category string, page, pageSize int) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(category),
	})
}

// Search 按名称/描述关键字查询商品
func (s *ProductService) Search(keyword string, page, pageSize int) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(keyword),
	})
}

// ListByPriceRange 按价格区间查询商品（闭区间）
func (s *ProductService) ListByPriceRange(min, max decimal.Decimal, page, pageSize int) ([]models.Product, int64, error) {
	if min.IsNegative() || max.LessThan(min) {
		return nil, 0, ErrPriceRangeInvalid
	}
	return s.productRepo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		PriceMin: &min,
		PriceMax: &max,
	})
}

// Create 创建商品，同名（忽略大小写）商品不可重复
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price.IsNegative() || input.Quantity < 0 {
		return nil, ErrProductInvalid
	}

	exist, err := s.productRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrProductExists
	}

	now := time.Now()
	product := &models.Product{
		Name:        name,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// Update 更新商品，整体覆盖可变字段
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price.IsNegative() || input.Quantity < 0 {
		return nil, ErrProductInvalid
	}
	if !strings.EqualFold(name, product.Name) {
		exist, err := s.productRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != id {
			return nil, ErrProductExists
		}
	}

	product.Name = name
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.Category = strings.TrimSpace(input.Category)
	product.Description = input.Description
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	logger.Infow("product_deleted", "product_id", id)
	return nil
}

package handlers

import (
	"strings"

	"github.com/quickshop-api/quickshop/internal/http/response"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"
	"github.com/quickshop-api/quickshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品写入请求
type ProductRequest struct {
	Name        string       `json:"name" binding:"required"`
	Price       models.Money `json:"price"`
	Quantity    int          `json:"quantity"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Category:    r.Category,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

// ListProducts 商品列表，支持分类与关键词过滤
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := normalizePagination(parseQueryInt(c, "page", 1), parseQueryInt(c, "page_size", 20))

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, product)
}

// ListProductsByCategory 按分类列出商品
func (h *Handler) ListProductsByCategory(c *gin.Context) {
	category := strings.TrimSpace(c.Param("category"))
	if category == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}
	page, pageSize := normalizePagination(parseQueryInt(c, "page", 1), parseQueryInt(c, "page_size", 20))

	products, total, err := h.ProductService.ListByCategory(category, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// SearchProducts 按名称/描述关键词搜索商品
func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}
	page, pageSize := normalizePagination(parseQueryInt(c, "page", 1), parseQueryInt(c, "page_size", 20))

	products, total, err := h.ProductService.Search(keyword, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// ListProductsByPriceRange 按价格区间列出商品。
// 路由与 GetProduct 共用首段通配符，下界从 :id 取值。
func (h *Handler) ListProductsByPriceRange(c *gin.Context) {
	min, err := decimal.NewFromString(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.price_range_invalid", nil)
		return
	}
	max, err := decimal.NewFromString(c.Param("max"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.price_range_invalid", nil)
		return
	}
	page, pageSize := normalizePagination(parseQueryInt(c, "page", 1), parseQueryInt(c, "page_size", 20))

	products, total, err := h.ProductService.ListByPriceRange(min, max, page, pageSize)
	if err != nil {
		respondProductError(c, err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// CreateProduct 创建商品（管理端）
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	response.Created(c, product)
}

// UpdateProduct 按 ID 覆盖商品（管理端）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品（管理端）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

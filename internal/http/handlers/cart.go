package handlers

import (
	"strconv"

	"github.com/quickshop-api/quickshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// parseQuantityQuery 解析查询参数中的数量，缺失或非法时报参数错误。
func parseQuantityQuery(c *gin.Context) (int, bool) {
	raw := c.Query("quantity")
	if raw == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	return quantity, true
}

// GetCart 获取当前用户购物车，不存在时惰性创建
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.GetOrCreate(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}

// ClearCart 清空当前用户购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		respondCartError(c, err)
		return
	}

	response.NoContent(c)
}

// AddCartItem 加入购物车，商品与数量来自查询参数；同商品的已有行做数量累加
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rawProductID := c.Query("productId")
	productID, err := strconv.ParseUint(rawProductID, 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}
	quantity, ok := parseQuantityQuery(c)
	if !ok {
		return
	}

	item, err := h.CartService.AddItem(uid, uint(productID), quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Created(c, item)
}

// GetCartItem 获取当前用户的购物车项
func (h *Handler) GetCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	item, err := h.CartService.GetItem(uid, itemID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, item)
}

// UpdateCartItemQuantity 更新购物车项数量，数量来自查询参数
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	quantity, ok := parseQuantityQuery(c)
	if !ok {
		return
	}

	item, err := h.CartService.UpdateItemQuantity(uid, itemID, quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, item)
}

// RemoveCartItem 删除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.CartService.RemoveItem(uid, itemID); err != nil {
		respondCartError(c, err)
		return
	}

	response.NoContent(c)
}

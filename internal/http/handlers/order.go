package handlers

import (
	"strings"

	"github.com/quickshop-api/quickshop/internal/http/response"
	"github.com/quickshop-api/quickshop/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderRequest 订单更新请求
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders 列出当前用户订单，可按状态过滤
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := normalizePagination(parseQueryInt(c, "page", 1), parseQueryInt(c, "page_size", 20))
	status := strings.TrimSpace(c.Query("status"))

	orders, total, err := h.OrderService.ListByUser(uid, status, page, pageSize)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder 获取订单详情，不存在时统一返回未找到
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.Success(c, order)
}

// PlaceOrder 从当前购物车下单，逐行快照商品名与单价
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.PlaceOrder(uid)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.Created(c, order)
}

// UpdateOrder 更新订单状态
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	order, err := h.OrderService.Update(id, service.UpdateOrderInput{
		Status: req.Status,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.Success(c, order)
}

// DeleteOrder 删除订单及其支付记录与订单项
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.OrderService.Delete(id); err != nil {
		respondOrderError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

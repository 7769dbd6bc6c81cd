package handlers

import (
	"github.com/quickshop-api/quickshop/internal/provider"
)

// Handler HTTP 处理器，持有依赖注入容器
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{
		Container: c,
	}
}

package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Category string
	Search   string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentListFilter 查询支付列表的过滤条件
type PaymentListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	OrderID  uint
	Status   string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

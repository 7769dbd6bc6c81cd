package service

import "errors"

// 服务层哨兵错误，handler 通过 errors.Is 映射为响应码
var (
	ErrInvalidParams      = errors.New("请求参数无效")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUsernameExists     = errors.New("用户名已存在")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrWeakPassword       = errors.New("密码不符合安全策略")

	ErrProductNotFound = errors.New("商品不存在")
	ErrProductExists   = errors.New("同名商品已存在")
	ErrProductInvalid  = errors.New("商品数据无效")

	ErrCartNotFound     = errors.New("购物车不存在")
	ErrCartItemNotFound = errors.New("购物车项不存在")
	ErrInvalidQuantity  = errors.New("数量必须为正数")

	ErrOrderNotFound = errors.New("订单不存在")
	ErrEmptyCart     = errors.New("购物车为空")

	ErrPaymentNotFound      = errors.New("支付记录不存在")
	ErrPaymentForbidden     = errors.New("只能支付自己的订单")
	ErrPaymentStatusInvalid = errors.New("支付状态无效")
	ErrPaymentMethodInvalid = errors.New("支付方式无效")

	ErrPriceRangeInvalid = errors.New("价格区间无效")
)

package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"

	defaultLocale = LocaleEnUS
)

var messages = map[string]map[string]string{
	LocaleEnUS: {
		"error.invalid_params":           "invalid request parameters",
		"error.unauthorized":             "unauthorized",
		"error.forbidden":                "forbidden",
		"error.not_found":                "resource not found",
		"error.internal_error":           "internal server error",
		"error.auth_header_missing":      "authorization header missing",
		"error.auth_header_invalid":      "authorization header invalid",
		"error.token_invalid":            "token invalid or expired",
		"error.token_revoked":            "token revoked, please login again",
		"error.jwt_secret_missing":       "jwt secret not configured",
		"error.user_disabled":            "user account disabled",
		"error.rate_limited":             "too many attempts, please try again later",
		"error.rate_limit_unavailable":   "rate limiter unavailable",
		"error.user_not_found":           "user not found",
		"error.username_exists":          "username already exists",
		"error.email_exists":             "email already exists",
		"error.invalid_credentials":      "invalid username or password",
		"error.password_policy":          "password does not meet the password policy",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",
		"error.product_not_found":        "product not found",
		"error.product_exists":           "product with the same name already exists",
		"error.product_invalid":          "invalid product data",
		"error.cart_not_found":           "cart not found",
		"error.cart_item_not_found":      "cart item not found",
		"error.cart_empty":               "cart is empty",
		"error.order_not_found":          "order not found",
		"error.payment_not_found":        "payment not found",
		"error.payment_forbidden":        "payment does not belong to this user",
		"error.payment_status_invalid":   "invalid payment status",
		"error.payment_method_invalid":   "invalid payment method",
		"error.quantity_invalid":         "quantity must be positive",
		"error.price_range_invalid":      "invalid price range",
	},
	LocaleZhCN: {
		"error.invalid_params":           "请求参数无效",
		"error.unauthorized":             "未登录或登录已过期",
		"error.forbidden":                "没有权限执行该操作",
		"error.not_found":                "资源不存在",
		"error.internal_error":           "服务器内部错误",
		"error.auth_header_missing":      "缺少认证头",
		"error.auth_header_invalid":      "认证头格式错误",
		"error.token_invalid":            "令牌无效或已过期",
		"error.token_revoked":            "令牌已失效，请重新登录",
		"error.jwt_secret_missing":       "JWT 密钥未配置",
		"error.user_disabled":            "账号已被禁用",
		"error.rate_limited":             "尝试次数过多，请稍后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.user_not_found":           "用户不存在",
		"error.username_exists":          "用户名已存在",
		"error.email_exists":             "邮箱已被注册",
		"error.invalid_credentials":      "用户名或密码错误",
		"error.password_policy":          "密码不符合安全策略",
		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_require_upper":   "密码必须包含大写字母",
		"error.password_require_lower":   "密码必须包含小写字母",
		"error.password_require_number":  "密码必须包含数字",
		"error.password_require_special": "密码必须包含特殊字符",
		"error.product_not_found":        "商品不存在",
		"error.product_exists":           "同名商品已存在",
		"error.product_invalid":          "商品数据无效",
		"error.cart_not_found":           "购物车不存在",
		"error.cart_item_not_found":      "购物车项不存在",
		"error.cart_empty":               "购物车为空",
		"error.order_not_found":          "订单不存在",
		"error.payment_not_found":        "支付记录不存在",
		"error.payment_forbidden":        "支付不属于当前用户",
		"error.payment_status_invalid":   "支付状态无效",
		"error.payment_method_invalid":   "支付方式无效",
		"error.quantity_invalid":         "数量必须为正数",
		"error.price_range_invalid":      "价格区间无效",
	},
}

// ResolveLocale 解析请求语言，优先 query 参数 lang，其次 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		if lang := normalizeLocale(strings.SplitN(part, ";", 2)[0]); lang != "" {
			return lang
		}
	}
	return defaultLocale
}

// T 返回 key 对应的本地化文案，找不到时回退到英文，再回退到 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带参数的本地化文案
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func normalizeLocale(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zh", "zh-cn", "zh-hans":
		return LocaleZhCN
	case "en", "en-us":
		return LocaleEnUS
	}
	return ""
}

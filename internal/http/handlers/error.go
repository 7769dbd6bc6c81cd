package handlers

import (
	"errors"

	"github.com/quickshop-api/quickshop/internal/http/response"
	"github.com/quickshop-api/quickshop/internal/i18n"
	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例。
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError 返回国际化错误响应，并在有原始错误时记录日志。
func respondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// respondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// respondPasswordPolicyError 按密码策略细则渲染弱密码错误。
func respondPasswordPolicyError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.password_policy", nil)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrUsernameExists, code: response.CodeBadRequest, key: "error.username_exists"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, key: "error.user_disabled"},
}

var userLookupErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var productLookupErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrPriceRangeInvalid, code: response.CodeBadRequest, key: "error.price_range_invalid"},
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, key: "error.product_invalid"},
	{target: service.ErrProductExists, code: response.CodeBadRequest, key: "error.product_exists"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, key: "error.cart_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
	{target: service.ErrPaymentStatusInvalid, code: response.CodeBadRequest, key: "error.payment_status_invalid"},
	{target: service.ErrPaymentForbidden, code: response.CodeForbidden, key: "error.payment_forbidden"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, key: "error.payment_not_found"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

func respondRegisterError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrWeakPassword) {
		respondPasswordPolicyError(c, err)
		return
	}
	respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.internal_error")
}

func respondLoginError(c *gin.Context, err error) {
	respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.internal_error")
}

func respondUserError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userLookupErrorRules, response.CodeInternal, "error.internal_error")
}

func respondProductError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(productLookupErrorRules, productWriteErrorRules), response.CodeInternal, "error.internal_error")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
}

func respondPaymentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "error.internal_error")
}

package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// 支付状态常量（与网关通知约定保持大写）
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// 支付方式常量
const (
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodDebitCard    = "DEBIT_CARD"
	PaymentMethodPaypal       = "PAYPAL"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCash         = "CASH_ON_DELIVERY"
)

// 用户角色常量
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskPaymentNotification = "payment:notification"
)

// IsValidPaymentStatus 判断支付状态是否合法
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// IsValidPaymentMethod 判断支付方式是否合法
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPaypal,
		PaymentMethodBankTransfer, PaymentMethodCash:
		return true
	}
	return false
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付记录表
type Payment struct {
	ID            uint           `gorm:"primarykey" json:"id"`                          // 主键
	OrderID       uint           `gorm:"index;not null" json:"order_id"`                // 订单ID
	UserID        uint           `gorm:"index;not null" json:"user_id"`                 // 用户ID（须与订单归属一致）
	Method        string         `gorm:"not null" json:"method"`                        // 支付方式
	Amount        Money          `gorm:"type:decimal(20,2);not null" json:"amount"`     // 支付金额
	Status        string         `gorm:"index;not null" json:"status"`                  // 支付状态（PENDING/COMPLETED/FAILED）
	TransactionID string         `gorm:"index" json:"transaction_id"`                   // 交易流水号
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

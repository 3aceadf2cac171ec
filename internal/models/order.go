package models

import (
	"time"
)

// Order 订单表（创建后不可修改）
type Order struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID      uint      `gorm:"index;not null" json:"user_id"`                             // 用户ID
	TotalAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额（下单时计算）
	OrderDate   time.Time `gorm:"index;not null" json:"order_date"`                          // 下单时间
	CreatedAt   time.Time `json:"created_at"`                                                // 创建时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID;constraint:false" json:"-"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ItemCount 商品件数合计
func (o Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

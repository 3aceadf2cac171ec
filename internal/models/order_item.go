package models

import (
	"github.com/shopspring/decimal"
)

// OrderItem 订单项表
type OrderItem struct {
	ID          uint   `gorm:"primarykey" json:"id"`                               // 主键
	OrderID     uint   `gorm:"index;not null" json:"order_id"`                     // 订单ID
	ProductID   uint   `gorm:"index;not null" json:"product_id"`                   // 商品ID（引用，商品被引用时禁止删除）
	ProductName string `gorm:"type:varchar(100);not null" json:"product_name"`     // 商品名称快照
	Quantity    int    `gorm:"not null" json:"quantity"`                           // 数量
	Price       Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价快照
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 小计
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Times(i.Quantity)
}

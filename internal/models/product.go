package models

import (
	"time"
)

// 库存状态标签
const (
	StockStatusInStock    = "In Stock"
	StockStatusLowStock   = "Low Stock"
	StockStatusOutOfStock = "Out of Stock"
)

// Product 商品表
type Product struct {
	ID                uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name              string    `gorm:"type:varchar(100);not null;index" json:"name"`       // 商品名称
	Category          string    `gorm:"type:varchar(50);not null;index" json:"category"`    // 分类名称
	Price             Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Stock             int       `gorm:"not null;default:0;index" json:"stock"`              // 库存数量
	LowStockThreshold int       `gorm:"not null;default:0" json:"low_stock_threshold"`      // 低库存阈值
	IsVisible         bool      `gorm:"not null;index" json:"is_visible"`                   // 是否在前台展示
	ImageURL          string    `gorm:"type:varchar(500);default:''" json:"image_url"`      // 商品图片
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsOutOfStock 是否缺货
func (p Product) IsOutOfStock() bool {
	return p.Stock <= 0
}

// IsLowStock 是否低库存（缺货不算低库存）
func (p Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.LowStockThreshold
}

// IsEffectivelyVisible 前台是否可见
func (p Product) IsEffectivelyVisible(autoHideOutOfStock bool) bool {
	return p.IsVisible && (!p.IsOutOfStock() || !autoHideOutOfStock)
}

// StockStatus 库存状态标签
func (p Product) StockStatus() string {
	switch {
	case p.IsOutOfStock():
		return StockStatusOutOfStock
	case p.IsLowStock():
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

package repository

import (
	"errors"
	"time"

	"github.com/stationery-next/internal/models"

	"gorm.io/gorm"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page              int
	PageSize          int
	Category          string
	Search            string
	StockStatus       string // all / available / outOfStock / lowStock
	IncludeOutOfStock bool   // available 时是否包含缺货的可见商品
	OnlyVisible       bool
	OrderBy           string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// StockAlertStatsRow 库存预警统计原始行
type StockAlertStatsRow struct {
	Total      int64
	InStock    int64
	LowStock   int64
	OutOfStock int64
	Critical   int64
}

// DailySalesRow 日销售报表原始行
type DailySalesRow struct {
	OrderID   uint
	OrderDate time.Time
	Username  string
	ItemCount int64
	UserID    uint
	Amount    models.Money
}

// paginate 分页 scope，pageSize <= 0 时不分页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// firstOrNil 取第一条记录，不存在时返回 (nil, nil)
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	err := query.First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

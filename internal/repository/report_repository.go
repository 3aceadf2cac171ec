package repository

import (
	"context"
	"time"

	"github.com/stationery-next/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 报表聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type ReportRepository interface {
	GetDailySalesRows(ctx context.Context, startAt, endAt time.Time) ([]DailySalesRow, error)
	GetDailySalesTotals(ctx context.Context, startAt, endAt time.Time) (DailySalesTotalsRow, error)
}

// DailySalesTotalsRow 日销售合计
type DailySalesTotalsRow struct {
	TotalOrders    int64
	TotalItemsSold int64
	TotalAmount    models.Money
}

// GormReportRepository GORM 报表聚合实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// GetDailySalesRows 按订单聚合 [startAt, endAt) 内的销售明细，按下单时间倒序
func (r *GormReportRepository) GetDailySalesRows(ctx context.Context, startAt, endAt time.Time) ([]DailySalesRow, error) {
	startAt, endAt = startAt.UTC(), endAt.UTC()
	var rows []DailySalesRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(
			"orders.id AS order_id, "+
				"orders.order_date AS order_date, "+
				"orders.user_id AS user_id, "+
				"COALESCE(users.username, '') AS username, "+
				"COALESCE(SUM(order_items.quantity), 0) AS item_count, "+
				"orders.total_amount AS amount",
		).
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.order_date >= ? AND orders.order_date < ?", startAt, endAt).
		Group("orders.id, orders.order_date, orders.user_id, users.username, orders.total_amount").
		Order("orders.order_date DESC, orders.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDailySalesTotals 汇总 [startAt, endAt) 内的订单数、件数与金额
func (r *GormReportRepository) GetDailySalesTotals(ctx context.Context, startAt, endAt time.Time) (DailySalesTotalsRow, error) {
	startAt, endAt = startAt.UTC(), endAt.UTC()
	result := DailySalesTotalsRow{}
	db := r.db.WithContext(ctx)

	var orderRow struct {
		TotalOrders int64
		TotalAmount models.Money
	}
	if err := db.Model(&models.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total_amount), 0) AS total_amount").
		Where("order_date >= ? AND order_date < ?", startAt, endAt).
		Scan(&orderRow).Error; err != nil {
		return result, err
	}

	var itemsSold int64
	if err := db.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.order_date >= ? AND orders.order_date < ?", startAt, endAt).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&itemsSold).Error; err != nil {
		return result, err
	}

	result.TotalOrders = orderRow.TotalOrders
	result.TotalAmount = orderRow.TotalAmount
	result.TotalItemsSold = itemsSold
	return result, nil
}

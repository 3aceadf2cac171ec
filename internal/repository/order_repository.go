package repository

import (
	"time"

	"github.com/stationery-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单写入后不再修改
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListByDateRange(startAt, endAt time.Time) ([]models.Order, error)
	WithTx(tx *gorm.DB) OrderRepository
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 订单头与明细一并写入，明细的 OrderID 由 gorm 回填；下单时间统一存 UTC
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	order.OrderDate = order.OrderDate.UTC()
	order.Items = items
	return r.db.Omit("User").Create(order).Error
}

// withItems 预加载明细，按插入顺序
func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("id ASC") })
}

// orderedBetween [from, to) 半开区间，nil 端不限
// sqlite 按文本比较时间，边界需与存储一致转为 UTC
func orderedBetween(from, to *time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("order_date >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where("order_date < ?", to.UTC())
		}
		return db
	}
}

func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return firstOrNil[models.Order](r.db.Scopes(withItems), id)
}

// GetByIDAndUser 不属于该用户时视为不存在
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	return firstOrNil[models.Order](r.db.Scopes(withItems).Where("id = ? AND user_id = ?", id, userID))
}

// ListByUser 最新订单在前
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).
		Where("user_id = ?", filter.UserID).
		Scopes(orderedBetween(filter.CreatedFrom, filter.CreatedTo))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	err := query.Scopes(withItems, paginate(filter.Page, filter.PageSize)).
		Order("order_date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByDateRange [startAt, endAt) 内的订单，时间升序
func (r *GormOrderRepository) ListByDateRange(startAt, endAt time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Scopes(withItems, orderedBetween(&startAt, &endAt)).
		Order("order_date ASC, id ASC").
		Find(&orders).Error
	return orders, err
}

package repository

import (
	"strings"

	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetByNameFold(name string) (*models.Product, error)
	ListByNamesFold(names []string) ([]models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListCategories() ([]string, error)
	Create(product *models.Product) error
	CreateBatch(products []models.Product) error
	Update(product *models.Product) error
	UpdateFields(id uint, updates map[string]interface{}) (int64, error)
	Delete(id uint) error
	CountOrderReferences(id uint) (int64, error)
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int, defaultThreshold int) (int64, error)
	GetStockAlertStats() (StockAlertStatsRow, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.OnlyVisible {
		query = query.Where("is_visible = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	query = query.Scopes(containsFold(filter.Search, "name", "category"))
	query = applyStockStatusFilter(query, filter.StockStatus, filter.IncludeOutOfStock)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	orderBy := strings.TrimSpace(filter.OrderBy)
	if orderBy == "" {
		orderBy = "name ASC, id ASC"
	}
	if err := query.Order(orderBy).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// NormalizeStockStatus 归一化库存筛选状态，无法识别时视为 all
func NormalizeStockStatus(status string) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	switch normalized {
	case "available", "instock":
		return constants.StockFilterAvailable
	case "outofstock", "out":
		return constants.StockFilterOutOfStock
	case "lowstock", "low":
		return constants.StockFilterLowStock
	default:
		return constants.StockFilterAll
	}
}

func applyStockStatusFilter(query *gorm.DB, status string, includeOutOfStock bool) *gorm.DB {
	if query == nil {
		return query
	}
	switch NormalizeStockStatus(status) {
	case constants.StockFilterAvailable:
		if includeOutOfStock {
			return query.Where("is_visible = ?", true)
		}
		return query.Where("stock > 0 AND is_visible = ?", true)
	case constants.StockFilterOutOfStock:
		return query.Where("stock <= 0")
	case constants.StockFilterLowStock:
		return query.Where("stock > 0 AND stock <= low_stock_threshold")
	default:
		return query
	}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	return firstOrNil[models.Product](r.db, id)
}

// GetByNameFold 按名称（忽略大小写）精确查找商品
func (r *GormProductRepository) GetByNameFold(name string) (*models.Product, error) {
	return firstOrNil[models.Product](r.db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).Order("id ASC"))
}

// ListByNamesFold 按名称集合（忽略大小写）批量查询
func (r *GormProductRepository) ListByNamesFold(names []string) ([]models.Product, error) {
	if len(names) == 0 {
		return []models.Product{}, nil
	}
	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(name)))
	}
	var products []models.Product
	if err := r.db.Where("LOWER(name) IN ?", lowered).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories 获取去重后的分类
func (r *GormProductRepository) ListCategories() ([]string, error) {
	var categories []string
	if err := r.db.Model(&models.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// CreateBatch 批量创建商品
func (r *GormProductRepository) CreateBatch(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.CreateInBatches(products, 100).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// UpdateFields 按字段更新商品
func (r *GormProductRepository) UpdateFields(id uint, updates map[string]interface{}) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountOrderReferences 统计引用该商品的订单项数量
func (r *GormProductRepository) CountOrderReferences(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock 条件扣减库存（库存不足时不更新）
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementStock 增加库存，阈值未设置时写入默认阈值
func (r *GormProductRepository) IncrementStock(productID uint, quantity int, defaultThreshold int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":               gorm.Expr("stock + ?", quantity),
			"low_stock_threshold": gorm.Expr("CASE WHEN low_stock_threshold <= 0 THEN ? ELSE low_stock_threshold END", defaultThreshold),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetStockAlertStats 库存预警聚合统计
func (r *GormProductRepository) GetStockAlertStats() (StockAlertStatsRow, error) {
	row := StockAlertStatsRow{}
	err := r.db.Model(&models.Product{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN stock > low_stock_threshold THEN 1 ELSE 0 END), 0) AS in_stock, "+
				"COALESCE(SUM(CASE WHEN stock > 0 AND stock <= low_stock_threshold THEN 1 ELSE 0 END), 0) AS low_stock, "+
				"COALESCE(SUM(CASE WHEN stock <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock, "+
				"COALESCE(SUM(CASE WHEN stock = ? THEN 1 ELSE 0 END), 0) AS critical",
			constants.CriticalStockLevel,
		).
		Scan(&row).Error
	return row, err
}

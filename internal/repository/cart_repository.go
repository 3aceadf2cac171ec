package repository

import (
	"github.com/stationery-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车行，(user_id, product_id) 唯一
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByUserAndProduct(userID, productID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByUserAndProduct(userID, productID uint) error
	DeleteByProduct(productID uint) error
	ClearByUser(userID uint) error
	SumQuantity(userID uint) (int, error)
	WithTx(tx *gorm.DB) CartRepository
}

type GormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func (r *GormCartRepository) byUser(userID uint) *gorm.DB {
	return r.db.Where("user_id = ?", userID)
}

// ListByUser 按加入顺序返回；商品已删除的行 Product 为 nil
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.byUser(userID).Preload("Product").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormCartRepository) GetByUserAndProduct(userID, productID uint) (*models.CartItem, error) {
	return firstOrNil[models.CartItem](r.byUser(userID).Where("product_id = ?", productID))
}

// Upsert 同一商品只保留一行，数量以最新写入为准
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(item).Error
}

func (r *GormCartRepository) DeleteByUserAndProduct(userID, productID uint) error {
	return r.byUser(userID).Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
}

// DeleteByProduct 商品删除时清理所有用户的购物车
func (r *GormCartRepository) DeleteByProduct(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
}

func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.byUser(userID).Delete(&models.CartItem{}).Error
}

// SumQuantity 购物车商品总件数
func (r *GormCartRepository) SumQuantity(userID uint) (int, error) {
	var total int64
	err := r.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

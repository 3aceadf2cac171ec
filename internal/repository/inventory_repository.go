package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/models"

	"gorm.io/gorm"
)

// InventoryUpsertItem 入库条目（名称已按忽略大小写去重）
type InventoryUpsertItem struct {
	Name     string
	Quantity int
}

// InventoryRepository 入库批量写入接口
type InventoryRepository interface {
	BulkUpsert(ctx context.Context, items []InventoryUpsertItem, defaultThreshold int) (created int, updated int, err error)
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建入库仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// BulkUpsert 在单个事务内批量入库：一次查询匹配已有商品，新商品批量插入，已有商品原子累加库存
func (r *GormInventoryRepository) BulkUpsert(ctx context.Context, items []InventoryUpsertItem, defaultThreshold int) (int, int, error) {
	if len(items) == 0 {
		return 0, 0, nil
	}
	created, updated := 0, 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := NewProductRepository(tx)

		names := make([]string, 0, len(items))
		for _, item := range items {
			names = append(names, item.Name)
		}
		existing, err := productRepo.ListByNamesFold(names)
		if err != nil {
			return err
		}
		byName := make(map[string]models.Product, len(existing))
		for _, product := range existing {
			key := strings.ToLower(strings.TrimSpace(product.Name))
			if _, ok := byName[key]; !ok {
				byName[key] = product
			}
		}

		toCreate := make([]models.Product, 0)
		for _, item := range items {
			key := strings.ToLower(strings.TrimSpace(item.Name))
			if product, ok := byName[key]; ok {
				affected, err := productRepo.IncrementStock(product.ID, item.Quantity, defaultThreshold)
				if err != nil {
					return err
				}
				if affected == 0 {
					return fmt.Errorf("increment stock for product %d affected no rows", product.ID)
				}
				updated++
				continue
			}
			toCreate = append(toCreate, models.Product{
				Name:              strings.TrimSpace(item.Name),
				Category:          constants.IngestDefaultCategory,
				Stock:             item.Quantity,
				LowStockThreshold: defaultThreshold,
				IsVisible:         false,
			})
		}
		if err := productRepo.CreateBatch(toCreate); err != nil {
			return err
		}
		created = len(toCreate)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

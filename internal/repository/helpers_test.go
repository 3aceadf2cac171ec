package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stationery-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name, category, price string, stock, threshold int, visible bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:              name,
		Category:          category,
		Price:             models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Stock:             stock,
		LowStockThreshold: threshold,
		IsVisible:         visible,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

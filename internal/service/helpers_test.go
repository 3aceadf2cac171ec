package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db            *gorm.DB
	productRepo   *repository.GormProductRepository
	cartRepo      *repository.GormCartRepository
	orderRepo     *repository.GormOrderRepository
	userRepo      *repository.GormUserRepository
	reportRepo    *repository.GormReportRepository
	inventoryRepo *repository.GormInventoryRepository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &serviceFixture{
		db:            db,
		productRepo:   repository.NewProductRepository(db),
		cartRepo:      repository.NewCartRepository(db),
		orderRepo:     repository.NewOrderRepository(db),
		userRepo:      repository.NewUserRepository(db),
		reportRepo:    repository.NewReportRepository(db),
		inventoryRepo: repository.NewInventoryRepository(db),
	}
}

func (f *serviceFixture) createProduct(t *testing.T, name, price string, stock, threshold int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:              name,
		Category:          "Writing",
		Price:             models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Stock:             stock,
		LowStockThreshold: threshold,
		IsVisible:         true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *serviceFixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *serviceFixture) reloadProduct(t *testing.T, id uint) *models.Product {
	t.Helper()
	product, err := f.productRepo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product
}

func (f *serviceFixture) productService(autoHide bool) *ProductService {
	return NewProductService(f.productRepo, f.cartRepo, CatalogOptions{
		AutoHideOutOfStock:       autoHide,
		DefaultLowStockThreshold: 5,
	})
}

func (f *serviceFixture) cartService() *CartService {
	return NewCartService(f.cartRepo, f.productRepo)
}

func (f *serviceFixture) checkoutService() *CheckoutService {
	return NewCheckoutService(f.cartRepo, f.productRepo, f.orderRepo)
}

func intPtr(v int) *int {
	return &v
}

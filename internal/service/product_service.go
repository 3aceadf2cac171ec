package service

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/stationery-next/internal/cache"
	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	maxProductNameLength     = 100
	maxProductCategoryLength = 50
)

// CatalogOptions 商品目录配置（构造时注入，不使用全局可变状态）
type CatalogOptions struct {
	AutoHideOutOfStock       bool
	DefaultLowStockThreshold int
	StockAlertCacheTTL       time.Duration
}

// ProductService 商品业务服务
type ProductService struct {
	repo     repository.ProductRepository
	cartRepo repository.CartRepository
	options  CatalogOptions
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, cartRepo repository.CartRepository, options CatalogOptions) *ProductService {
	if options.DefaultLowStockThreshold < 0 {
		options.DefaultLowStockThreshold = 0
	}
	return &ProductService{repo: repo, cartRepo: cartRepo, options: options}
}

// Options 返回目录配置
func (s *ProductService) Options() CatalogOptions {
	return s.options
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Name              string
	Category          string
	Price             decimal.Decimal
	Stock             int
	LowStockThreshold *int
	IsVisible         *bool
	ImageURL          string
}

// UpdateProductInput 更新商品输入（nil 表示不修改）
type UpdateProductInput struct {
	Name              *string
	Category          *string
	Price             *decimal.Decimal
	Stock             *int
	LowStockThreshold *int
	IsVisible         *bool
	ImageURL          *string
}

// StockListInput 库存筛选输入
type StockListInput struct {
	Status            string
	Search            string
	Category          string
	IncludeOutOfStock bool
	Page              int
	PageSize          int
}

// ProductView 商品响应（附带库存派生字段）
type ProductView struct {
	models.Product
	IsOutOfStock bool   `json:"is_out_of_stock"`
	IsLowStock   bool   `json:"is_low_stock"`
	StockStatus  string `json:"stock_status"`
}

// StockAlertSummary 库存预警汇总
type StockAlertSummary struct {
	TotalProducts         int64   `json:"total_products"`
	InStockProducts       int64   `json:"in_stock_products"`
	LowStockProducts      int64   `json:"low_stock_products"`
	OutOfStockProducts    int64   `json:"out_of_stock_products"`
	CriticalStockProducts int64   `json:"critical_stock_products"`
	InStockPercentage     float64 `json:"in_stock_percentage"`
	LowStockPercentage    float64 `json:"low_stock_percentage"`
	OutOfStockPercentage  float64 `json:"out_of_stock_percentage"`
	HasAlerts             bool    `json:"has_alerts"`
	HasCriticalAlerts     bool    `json:"has_critical_alerts"`
}

// StockManagementView 库存管理页数据
type StockManagementView struct {
	Products                []ProductView     `json:"products"`
	Total                   int64             `json:"total"`
	Summary                 StockAlertSummary `json:"summary"`
	Status                  string            `json:"status"`
	Search                  string            `json:"search"`
	Category                string            `json:"category"`
	Categories              []string          `json:"categories"`
	GlobalLowStockThreshold int               `json:"global_low_stock_threshold"`
}

// NewProductView 构建商品响应
func NewProductView(product models.Product) ProductView {
	return ProductView{
		Product:      product,
		IsOutOfStock: product.IsOutOfStock(),
		IsLowStock:   product.IsLowStock(),
		StockStatus:  product.StockStatus(),
	}
}

// NewProductViews 批量构建商品响应
func NewProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, NewProductView(product))
	}
	return views
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	threshold := s.options.DefaultLowStockThreshold
	if input.LowStockThreshold != nil {
		threshold = *input.LowStockThreshold
	}
	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}
	product := &models.Product{
		Name:              strings.TrimSpace(input.Name),
		Category:          strings.TrimSpace(input.Category),
		Price:             models.NewMoneyFromDecimal(input.Price),
		Stock:             input.Stock,
		LowStockThreshold: threshold,
		IsVisible:         visible,
		ImageURL:          strings.TrimSpace(input.ImageURL),
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(ctx context.Context, id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Price != nil {
		product.Price = models.NewMoneyFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.IsVisible != nil {
		product.IsVisible = *input.IsVisible
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return product, nil
}

// UpdateStock 快速修改库存与低库存阈值
func (s *ProductService) UpdateStock(ctx context.Context, id uint, stock int, threshold int) (*models.Product, error) {
	if stock < 0 {
		return nil, ErrProductStockInvalid
	}
	if threshold < 0 {
		return nil, ErrProductThresholdInvalid
	}
	affected, err := s.repo.UpdateFields(id, map[string]interface{}{
		"stock":               stock,
		"low_stock_threshold": threshold,
		"updated_at":          time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	s.invalidateCache(ctx)
	return s.GetByID(id)
}

// Delete 删除商品：被订单引用时拒绝，否则先清理购物车引用
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.repo.WithTx(tx)
		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}
		refs, err := productRepo.CountOrderReferences(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrProductInUse
		}
		if s.cartRepo != nil {
			if err := s.cartRepo.WithTx(tx).DeleteByProduct(id); err != nil {
				return err
			}
		}
		return productRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Search 按关键字（名称或分类）与分类搜索全部商品
func (s *ProductService) Search(term, category string) ([]models.Product, error) {
	products, _, err := s.repo.List(repository.ProductListFilter{
		Search:   term,
		Category: category,
	})
	return products, err
}

// ListByStockStatus 按库存状态筛选，与搜索、分类条件取交集
func (s *ProductService) ListByStockStatus(input StockListInput) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:              input.Page,
		PageSize:          input.PageSize,
		Category:          input.Category,
		Search:            input.Search,
		StockStatus:       repository.NormalizeStockStatus(input.Status),
		IncludeOutOfStock: input.IncludeOutOfStock,
	})
}

// ListStorefront 前台商品列表，仅返回实际可见的商品
func (s *ProductService) ListStorefront(search, category string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:              page,
		PageSize:          pageSize,
		Category:          category,
		Search:            search,
		OnlyVisible:       true,
		StockStatus:       constants.StockFilterAvailable,
		IncludeOutOfStock: !s.options.AutoHideOutOfStock,
	})
}

// GetStorefrontByID 前台商品详情
func (s *ProductService) GetStorefrontByID(id uint) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !product.IsEffectivelyVisible(s.options.AutoHideOutOfStock) {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListCategories 获取分类列表
func (s *ProductService) ListCategories() ([]string, error) {
	return s.repo.ListCategories()
}

// ToggleVisibility 切换商品前台可见性
func (s *ProductService) ToggleVisibility(ctx context.Context, id uint, visible bool) (*models.Product, error) {
	affected, err := s.repo.UpdateFields(id, map[string]interface{}{
		"is_visible": visible,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	s.invalidateCache(ctx)
	return s.GetByID(id)
}

// SummarizeStockAlerts 库存预警汇总（Redis 可用时缓存）
func (s *ProductService) SummarizeStockAlerts(ctx context.Context) (*StockAlertSummary, error) {
	var cached StockAlertSummary
	if hit, err := cache.GetJSON(ctx, constants.CacheKeyStockAlertSummary, &cached); err == nil && hit {
		return &cached, nil
	}

	stats, err := s.repo.GetStockAlertStats()
	if err != nil {
		return nil, err
	}
	summary := buildStockAlertSummary(stats)

	ttl := s.options.StockAlertCacheTTL
	if ttl > 0 {
		if err := cache.SetJSON(ctx, constants.CacheKeyStockAlertSummary, summary, ttl); err != nil {
			logger.Warnw("stock_alert_cache_set_failed", "error", err)
		}
	}
	return summary, nil
}

// StockManagement 库存管理页：筛选列表 + 汇总 + 全局阈值
func (s *ProductService) StockManagement(ctx context.Context, input StockListInput) (*StockManagementView, error) {
	products, total, err := s.ListByStockStatus(input)
	if err != nil {
		return nil, err
	}
	summary, err := s.SummarizeStockAlerts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories()
	if err != nil {
		return nil, err
	}
	return &StockManagementView{
		Products:                NewProductViews(products),
		Total:                   total,
		Summary:                 *summary,
		Status:                  repository.NormalizeStockStatus(input.Status),
		Search:                  strings.TrimSpace(input.Search),
		Category:                strings.TrimSpace(input.Category),
		Categories:              categories,
		GlobalLowStockThreshold: s.options.DefaultLowStockThreshold,
	}, nil
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	if err := cache.InvalidateCatalog(ctx); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

func buildStockAlertSummary(stats repository.StockAlertStatsRow) *StockAlertSummary {
	return &StockAlertSummary{
		TotalProducts:         stats.Total,
		InStockProducts:       stats.InStock,
		LowStockProducts:      stats.LowStock,
		OutOfStockProducts:    stats.OutOfStock,
		CriticalStockProducts: stats.Critical,
		InStockPercentage:     percentOf(stats.InStock, stats.Total),
		LowStockPercentage:    percentOf(stats.LowStock, stats.Total),
		OutOfStockPercentage:  percentOf(stats.OutOfStock, stats.Total),
		HasAlerts:             stats.LowStock > 0 || stats.OutOfStock > 0,
		HasCriticalAlerts:     stats.Critical > 0 || stats.OutOfStock > 0,
	}
}

func percentOf(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}

func validateProduct(product *models.Product) error {
	nameLength := utf8.RuneCountInString(product.Name)
	if nameLength == 0 || nameLength > maxProductNameLength {
		return ErrProductNameInvalid
	}
	categoryLength := utf8.RuneCountInString(product.Category)
	if categoryLength == 0 || categoryLength > maxProductCategoryLength {
		return ErrProductCategoryInvalid
	}
	if product.Price.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrProductPriceInvalid
	}
	if product.Stock < 0 {
		return ErrProductStockInvalid
	}
	if product.LowStockThreshold < 0 {
		return ErrProductThresholdInvalid
	}
	return nil
}

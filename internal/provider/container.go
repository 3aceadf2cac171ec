package provider

import (
	"strings"
	"time"

	"github.com/stationery-next/internal/authz"
	"github.com/stationery-next/internal/cache"
	"github.com/stationery-next/internal/config"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/queue"
	"github.com/stationery-next/internal/repository"
	"github.com/stationery-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	ReportRepo    repository.ReportRepository
	InventoryRepo repository.InventoryRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	ProductService   *service.ProductService
	CartService      *service.CartService
	CheckoutService  *service.CheckoutService
	ReportService    *service.ReportService
	ReportExporter   *service.ReportExporter
	InventoryService *service.InventoryService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories(models.DB)
	c.initServices(models.DB)
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	cfg := c.Config
	c.AuthService = service.NewAuthService(cfg.JWT, cfg.Security.MinPasswordLen, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CartRepo, service.CatalogOptions{
		AutoHideOutOfStock:       cfg.Catalog.AutoHideOutOfStock,
		DefaultLowStockThreshold: cfg.Catalog.DefaultLowStockThreshold,
		StockAlertCacheTTL:       time.Duration(cfg.Catalog.StockAlertCacheSeconds) * time.Second,
	})
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.ProductRepo, c.OrderRepo)

	location := ResolveReportLocation(cfg.Report.Timezone)
	c.ReportService = service.NewReportService(
		service.NewDefaultSalesReportSource(c.ReportRepo, c.OrderRepo, c.UserRepo),
		location,
		time.Duration(cfg.Report.CacheSeconds)*time.Second,
	)
	c.ReportExporter = service.NewReportExporter(location)
	c.InventoryService = service.NewInventoryService(
		service.NewDefaultInventoryUpserter(c.InventoryRepo, c.ProductRepo),
		service.NewPlainTextExtractor(cfg.Ingest.PDFOCREnabled),
		service.InventoryOptions{
			DefaultLowStockThreshold: cfg.Catalog.DefaultLowStockThreshold,
			MaxUploadBytes:           cfg.Ingest.MaxUploadBytes,
		},
	)
}

// ResolveReportLocation 解析报表时区，无效时回退本地时区
func ResolveReportLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warnw("provider_report_timezone_invalid", "timezone", name, "error", err)
		return time.Local
	}
	return location
}

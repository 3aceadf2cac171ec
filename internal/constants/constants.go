package constants

// 库存筛选状态常量
const (
	StockFilterAll        = "all"
	StockFilterAvailable  = "available"
	StockFilterOutOfStock = "outOfStock"
	StockFilterLowStock   = "lowStock"
)

// 入库导入常量
const (
	IngestDefaultCategory = "Uncategorized"
	IngestSourceManual    = "manual"
	IngestSourceDocument  = "document"
)

// 报表导出格式
const (
	ReportFormatExcel = "xlsx"
	ReportFormatPDF   = "pdf"
)

// 报表日期格式
const (
	ReportDateLayout     = "2006-01-02"
	ReportDateTimeLayout = "2006-01-02 15:04"
)

// 缓存 key 常量
const (
	CacheKeyStockAlertSummary = "stock_alert:summary"
	CacheKeyDailyReportPrefix = "report:daily:"
)

// 上下文 key 常量
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyUserRole = "user_role"
	ContextKeyLocale   = "locale"
)

// CriticalStockLevel 库存为 1 视为紧急
const CriticalStockLevel = 1

// 队列与任务类型
const (
	QueueDefault        = "default"
	QueueCritical       = "critical"
	TaskInventoryIngest = "inventory:ingest"
	TaskReportWarm      = "report:warm"
)

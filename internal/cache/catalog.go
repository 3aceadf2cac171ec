package cache

import (
	"context"
	"time"

	"github.com/stationery-next/internal/constants"
)

// DailyReportKey 日报缓存 key
func DailyReportKey(day time.Time) string {
	return constants.CacheKeyDailyReportPrefix + day.Format(constants.ReportDateLayout)
}

// InvalidateCatalog 库存或订单变更后清理库存预警摘要和全部日报
func InvalidateCatalog(ctx context.Context) error {
	return Del(ctx, []string{constants.CacheKeyStockAlertSummary}, constants.CacheKeyDailyReportPrefix)
}

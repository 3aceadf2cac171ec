package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stationery-next/internal/cache"
	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"

	"github.com/shopspring/decimal"
)

// SalesReportRow 日报明细行（每个订单一行）
type SalesReportRow struct {
	OrderID   uint         `json:"order_id"`
	OrderDate time.Time    `json:"order_date"`
	Username  string       `json:"username"`
	ItemCount int          `json:"item_count"`
	Amount    models.Money `json:"amount"`
}

// SalesReport 日销售报表，Rows 按下单时间倒序
type SalesReport struct {
	Date             string           `json:"date"`
	Rows             []SalesReportRow `json:"rows"`
	TotalOrders      int              `json:"total_orders"`
	TotalItemsSold   int              `json:"total_items_sold"`
	TotalSalesAmount models.Money     `json:"total_sales_amount"`
}

// ExportRows 导出用明细（按下单时间正序）
func (r *SalesReport) ExportRows() []SalesReportRow {
	if r == nil {
		return nil
	}
	rows := make([]SalesReportRow, len(r.Rows))
	copy(rows, r.Rows)
	sortSalesRows(rows, true)
	return rows
}

// SalesReportSource 日报数据来源
type SalesReportSource interface {
	Name() string
	DailySales(ctx context.Context, startAt, endAt time.Time) (*SalesReport, error)
}

// ReportService 报表服务
type ReportService struct {
	source   SalesReportSource
	location *time.Location
	cacheTTL time.Duration
}

// NewReportService 创建报表服务
func NewReportService(source SalesReportSource, location *time.Location, cacheTTL time.Duration) *ReportService {
	if location == nil {
		location = time.Local
	}
	return &ReportService{source: source, location: location, cacheTTL: cacheTTL}
}

// NewDefaultSalesReportSource 数据库聚合优先，失败时退回内存聚合
func NewDefaultSalesReportSource(reportRepo repository.ReportRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository) SalesReportSource {
	return NewFallbackSalesReportSource(
		NewSQLSalesReportSource(reportRepo),
		NewMemorySalesReportSource(orderRepo, userRepo),
	)
}

// Location 报表时区
func (s *ReportService) Location() *time.Location {
	return s.location
}

// ParseDate 解析报表日期（yyyy-mm-dd），为空时取今天
func (s *ReportService) ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		now := time.Now().In(s.location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location), nil
	}
	day, err := time.ParseInLocation(constants.ReportDateLayout, raw, s.location)
	if err != nil {
		return time.Time{}, ErrReportDateInvalid
	}
	return day, nil
}

// DailySalesReport 统计 [date, date+1d) 内的订单
func (s *ReportService) DailySalesReport(ctx context.Context, date time.Time) (*SalesReport, error) {
	startAt := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location)
	if date.Location() != s.location {
		local := date.In(s.location)
		startAt = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	}
	endAt := startAt.AddDate(0, 0, 1)
	cacheKey := cache.DailyReportKey(startAt)

	var cached SalesReport
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	report, err := s.source.DailySales(ctx, startAt, endAt)
	if err != nil {
		return nil, err
	}
	report.Date = startAt.Format(constants.ReportDateLayout)
	for i := range report.Rows {
		report.Rows[i].OrderDate = report.Rows[i].OrderDate.In(s.location)
	}

	if s.cacheTTL > 0 {
		if err := cache.SetJSON(ctx, cacheKey, report, s.cacheTTL); err != nil {
			logger.Warnw("report_cache_set_failed", "date", report.Date, "error", err)
		}
	}
	return report, nil
}

// fallbackSalesReportSource 优先路径任意失败时使用备用路径
type fallbackSalesReportSource struct {
	preferred SalesReportSource
	fallback  SalesReportSource
}

// NewFallbackSalesReportSource 组合优先/备用数据来源
func NewFallbackSalesReportSource(preferred, fallback SalesReportSource) SalesReportSource {
	return &fallbackSalesReportSource{preferred: preferred, fallback: fallback}
}

func (s *fallbackSalesReportSource) Name() string {
	return s.preferred.Name() + "+" + s.fallback.Name()
}

func (s *fallbackSalesReportSource) DailySales(ctx context.Context, startAt, endAt time.Time) (*SalesReport, error) {
	report, err := s.preferred.DailySales(ctx, startAt, endAt)
	if err == nil {
		return report, nil
	}
	logger.Warnw("report_preferred_path_failed",
		"source", s.preferred.Name(),
		"fallback", s.fallback.Name(),
		"start_at", startAt,
		"error", err,
	)
	return s.fallback.DailySales(ctx, startAt, endAt)
}

// sqlSalesReportSource 数据库端聚合
type sqlSalesReportSource struct {
	repo repository.ReportRepository
}

// NewSQLSalesReportSource 创建数据库聚合来源
func NewSQLSalesReportSource(repo repository.ReportRepository) SalesReportSource {
	return &sqlSalesReportSource{repo: repo}
}

func (s *sqlSalesReportSource) Name() string {
	return "sql"
}

func (s *sqlSalesReportSource) DailySales(ctx context.Context, startAt, endAt time.Time) (*SalesReport, error) {
	rows, err := s.repo.GetDailySalesRows(ctx, startAt, endAt)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.GetDailySalesTotals(ctx, startAt, endAt)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Rows:             make([]SalesReportRow, 0, len(rows)),
		TotalOrders:      int(totals.TotalOrders),
		TotalItemsSold:   int(totals.TotalItemsSold),
		TotalSalesAmount: models.NewMoneyFromDecimal(totals.TotalAmount.Decimal),
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, SalesReportRow{
			OrderID:   row.OrderID,
			OrderDate: row.OrderDate,
			Username:  resolveReportUsername(row.Username, row.UserID),
			ItemCount: int(row.ItemCount),
			Amount:    models.NewMoneyFromDecimal(row.Amount.Decimal),
		})
	}
	sortSalesRows(report.Rows, false)
	return report, nil
}

// memorySalesReportSource 加载订单后在进程内聚合
type memorySalesReportSource struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewMemorySalesReportSource 创建内存聚合来源
func NewMemorySalesReportSource(orderRepo repository.OrderRepository, userRepo repository.UserRepository) SalesReportSource {
	return &memorySalesReportSource{orderRepo: orderRepo, userRepo: userRepo}
}

func (s *memorySalesReportSource) Name() string {
	return "memory"
}

func (s *memorySalesReportSource) DailySales(_ context.Context, startAt, endAt time.Time) (*SalesReport, error) {
	orders, err := s.orderRepo.ListByDateRange(startAt, endAt)
	if err != nil {
		return nil, err
	}

	usernames := make(map[uint]string)
	if s.userRepo != nil && len(orders) > 0 {
		ids := make([]uint, 0, len(orders))
		seen := make(map[uint]struct{}, len(orders))
		for _, order := range orders {
			if _, ok := seen[order.UserID]; ok {
				continue
			}
			seen[order.UserID] = struct{}{}
			ids = append(ids, order.UserID)
		}
		users, err := s.userRepo.ListByIDs(ids)
		if err != nil {
			logger.Warnw("report_username_lookup_failed", "error", err)
		} else {
			for _, user := range users {
				usernames[user.ID] = user.Username
			}
		}
	}

	report := &SalesReport{Rows: make([]SalesReportRow, 0, len(orders))}
	total := decimal.Zero
	for _, order := range orders {
		itemCount := order.ItemCount()
		report.Rows = append(report.Rows, SalesReportRow{
			OrderID:   order.ID,
			OrderDate: order.OrderDate,
			Username:  resolveReportUsername(usernames[order.UserID], order.UserID),
			ItemCount: itemCount,
			Amount:    models.NewMoneyFromDecimal(order.TotalAmount.Decimal),
		})
		report.TotalOrders++
		report.TotalItemsSold += itemCount
		total = total.Add(order.TotalAmount.Decimal)
	}
	report.TotalSalesAmount = models.NewMoneyFromDecimal(total)
	sortSalesRows(report.Rows, false)
	return report, nil
}

func resolveReportUsername(username string, userID uint) string {
	if trimmed := strings.TrimSpace(username); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("User#%d", userID)
}

func sortSalesRows(rows []SalesReportRow, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.OrderDate.Equal(b.OrderDate) {
			if ascending {
				return a.OrderDate.Before(b.OrderDate)
			}
			return a.OrderDate.After(b.OrderDate)
		}
		if ascending {
			return a.OrderID < b.OrderID
		}
		return a.OrderID > b.OrderID
	})
}

package admin

import (
	"strings"

	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDailyReport 日销售报表，date 为空时取当天
func (h *Handler) GetDailyReport(c *gin.Context) {
	day, err := h.ReportService.ParseDate(c.Query("date"))
	if err != nil {
		respondReportError(c, err)
		return
	}
	report, err := h.ReportService.DailySalesReport(c.Request.Context(), day)
	if err != nil {
		respondReportError(c, err)
		return
	}
	response.Success(c, report)
}

// ExportDailyReport 导出日销售报表（xlsx / pdf）
func (h *Handler) ExportDailyReport(c *gin.Context) {
	day, err := h.ReportService.ParseDate(c.Query("date"))
	if err != nil {
		respondReportError(c, err)
		return
	}
	format := strings.TrimSpace(c.DefaultQuery("format", constants.ReportFormatExcel))
	report, err := h.ReportService.DailySalesReport(c.Request.Context(), day)
	if err != nil {
		respondReportError(c, err)
		return
	}
	exported, err := h.ReportExporter.Export(report, format)
	if err != nil {
		respondReportError(c, err)
		return
	}
	requestLog(c).Infow("admin_report_exported",
		"date", report.Date,
		"format", format,
		"bytes", len(exported.Data),
	)
	response.Attachment(c, exported.Filename, exported.ContentType, exported.Data)
}

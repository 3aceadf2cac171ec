package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stationery-next/internal/constants"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

var reportColumns = []string{"Order ID", "Date", "User", "Items", "Amount"}

// ExportedReport 导出结果
type ExportedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportExporter 日报导出（表格 / 分页文档），明细按时间正序
type ReportExporter struct {
	location *time.Location
}

// NewReportExporter 创建导出器
func NewReportExporter(location *time.Location) *ReportExporter {
	if location == nil {
		location = time.Local
	}
	return &ReportExporter{location: location}
}

// Export 按格式导出
func (e *ReportExporter) Export(report *SalesReport, format string) (*ExportedReport, error) {
	if report == nil {
		return nil, ErrNotFound
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case constants.ReportFormatExcel, "excel":
		data, err := e.ExportExcel(report)
		if err != nil {
			return nil, err
		}
		return &ExportedReport{
			Filename:    fmt.Sprintf("sales_report_%s.xlsx", report.Date),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case constants.ReportFormatPDF:
		data, err := e.ExportPDF(report)
		if err != nil {
			return nil, err
		}
		return &ExportedReport{
			Filename:    fmt.Sprintf("sales_report_%s.pdf", report.Date),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, ErrReportFormatInvalid
	}
}

// ExportExcel 导出 xlsx
func (e *ReportExporter) ExportExcel(report *SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := "Sales Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheet, "A1", "Daily Sales Report - "+report.Date); err != nil {
		return nil, err
	}
	for i, title := range reportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheet, "A3", "E3", headerStyle); err != nil {
		return nil, err
	}

	row := 4
	for _, item := range report.ExportRows() {
		values := []interface{}{
			item.OrderID,
			item.OrderDate.In(e.location).Format(constants.ReportDateTimeLayout),
			item.Username,
			item.ItemCount,
			item.Amount.Decimal.Round(2).InexactFloat64(),
		}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
		amountCell, _ := excelize.CoordinatesToCellName(5, row)
		if err := f.SetCellStyle(sheet, amountCell, amountCell, amountStyle); err != nil {
			return nil, err
		}
		row++
	}

	row++
	totals := [][2]interface{}{
		{"Total Orders", report.TotalOrders},
		{"Total Items", report.TotalItemsSold},
		{"Total Sales", report.TotalSalesAmount.Decimal.Round(2).InexactFloat64()},
	}
	for _, total := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(4, row)
		valueCell, _ := excelize.CoordinatesToCellName(5, row)
		if err := f.SetCellValue(sheet, labelCell, total[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, valueCell, total[1]); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, headerStyle); err != nil {
			return nil, err
		}
		row++
	}
	lastCell, _ := excelize.CoordinatesToCellName(5, row-1)
	if err := f.SetCellStyle(sheet, lastCell, lastCell, amountStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 10); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "C", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "D", "E", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF 导出分页 PDF，每页重复表头
func (e *ReportExporter) ExportPDF(report *SalesReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := []float64{25, 40, 60, 20, 35}
	aligns := []string{"L", "L", "L", "R", "R"}
	const rowHeight = 7.0
	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - 15

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(217, 225, 242)
		for i, title := range reportColumns {
			pdf.CellFormat(widths[i], rowHeight, title, "1", 0, aligns[i], true, 0, "")
		}
		pdf.Ln(rowHeight)
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Daily Sales Report - "+report.Date), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	drawHeader()

	for _, item := range report.ExportRows() {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			drawHeader()
		}
		values := []string{
			strconv.FormatUint(uint64(item.OrderID), 10),
			item.OrderDate.In(e.location).Format(constants.ReportDateTimeLayout),
			tr(item.Username),
			strconv.Itoa(item.ItemCount),
			item.Amount.Decimal.StringFixed(2),
		}
		for i, value := range values {
			pdf.CellFormat(widths[i], rowHeight, value, "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	if pdf.GetY()+rowHeight*4 > bottom {
		pdf.AddPage()
	}
	pdf.Ln(rowHeight)
	pdf.SetFont("Helvetica", "B", 11)
	labelWidth := widths[0] + widths[1] + widths[2] + widths[3]
	totals := [][2]string{
		{"Total Orders", strconv.Itoa(report.TotalOrders)},
		{"Total Items", strconv.Itoa(report.TotalItemsSold)},
		{"Total Sales", report.TotalSalesAmount.Decimal.StringFixed(2)},
	}
	for _, total := range totals {
		pdf.CellFormat(labelWidth, rowHeight, total[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], rowHeight, total[1], "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

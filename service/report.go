package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"wallet/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// 报表输出格式
const (
	ReportFormatCSV   = "csv"
	ReportFormatExcel = "excel"
	ReportFormatPDF   = "pdf"
)

// ReportFilename 报表下载文件名（不含扩展名），固定值
const ReportFilename = "balance_changes_report"

// reportTimeLayout 报表时间列格式，如 "Mar 05, 2024 02:30 PM"
const reportTimeLayout = "Jan 02, 2006 03:04 PM"

// reportHeaders 四列表头，三种格式一致
var reportHeaders = []string{"Time", "Description", "Amount", "Category"}

// ReportMIME 各格式的 Content-Type
func ReportMIME(format string) string {
	switch format {
	case ReportFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ReportFormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// ReportExtension 各格式的文件扩展名
func ReportExtension(format string) string {
	switch format {
	case ReportFormatExcel:
		return "xlsx"
	case ReportFormatPDF:
		return "pdf"
	default:
		return "csv"
	}
}

// formatReportAmount 带符号两位小数金额，如 $-40.00
func formatReportAmount(e models.LedgerEntry) string {
	return "$" + e.Amount.StringFixed(2)
}

// reportRow 一条流水对应的报表行，三种格式共用
func reportRow(e models.LedgerEntry) []string {
	return []string{
		e.Timestamp.Format(reportTimeLayout),
		e.Description,
		formatReportAmount(e),
		e.CategoryName,
	}
}

// RenderReport 按格式渲染报表，行顺序即传入顺序（筛选序，不再排序）
func RenderReport(entries []models.LedgerEntry, format string) ([]byte, error) {
	switch format {
	case ReportFormatCSV:
		return renderCSVReport(entries)
	case ReportFormatExcel:
		return renderExcelReport(entries)
	case ReportFormatPDF:
		return renderPDFReport(entries)
	default:
		return nil, fmt.Errorf("%w: 不支持的报表格式 %q", ErrInvalidInput, format)
	}
}

// renderCSVReport 生成 CSV 报表
func renderCSVReport(entries []models.LedgerEntry) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write(reportHeaders); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := writer.Write(reportRow(e)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderExcelReport 生成 Excel 报表
func renderExcelReport(entries []models.LedgerEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Balance Changes"
	f.SetSheetName("Sheet1", sheetName)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 18)

	// 写入表头
	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	for rowIdx, e := range entries {
		for colIdx, value := range reportRow(e) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderPDFReport 生成 PDF 报表
func renderPDFReport(entries []models.LedgerEntry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Balance Changes Report")
	pdf.Ln(12)

	colWidths := []float64{48, 62, 30, 40}

	// 表头
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(79, 129, 189)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range reportHeaders {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// 数据行
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, e := range entries {
		for i, value := range reportRow(e) {
			pdf.CellFormat(colWidths[i], 7, value, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderReport_CSV(t *testing.T) {
	entries := testEntries()[:2]
	data, err := RenderReport(entries, ReportFormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	// 固定四列表头
	assert.Equal(t, []string{"Time", "Description", "Amount", "Category"}, records[0])

	// 行顺序即传入顺序，金额为带符号两位小数
	assert.Equal(t, "Mar 04, 2024 10:00 AM", records[1][0])
	assert.Equal(t, "$100.00", records[1][2])
	assert.Equal(t, "Food", records[1][3])
	assert.Equal(t, "$-40.00", records[2][2])
}

func TestRenderReport_CSV_Empty(t *testing.T) {
	data, err := RenderReport(nil, ReportFormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "空报表只有表头")
}

func TestRenderReport_Excel(t *testing.T) {
	entries := testEntries()[:3]
	data, err := RenderReport(entries, ReportFormatExcel)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Balance Changes")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Time", "Description", "Amount", "Category"}, rows[0])
	assert.Equal(t, "$25.00", rows[3][2])
	assert.Equal(t, "Shopping", rows[3][3])
}

func TestRenderReport_PDF(t *testing.T) {
	entries := testEntries()
	data, err := RenderReport(entries, ReportFormatPDF)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "应为 PDF 文件头")
}

func TestRenderReport_UnknownFormat(t *testing.T) {
	_, err := RenderReport(nil, "docx")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportMIMEAndExtension(t *testing.T) {
	assert.Equal(t, "text/csv", ReportMIME(ReportFormatCSV))
	assert.Equal(t, "application/pdf", ReportMIME(ReportFormatPDF))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ReportMIME(ReportFormatExcel))

	assert.Equal(t, "csv", ReportExtension(ReportFormatCSV))
	assert.Equal(t, "xlsx", ReportExtension(ReportFormatExcel))
	assert.Equal(t, "pdf", ReportExtension(ReportFormatPDF))
}

func TestReportTimeLayout(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)
	e := entry(1, "-40.00", ts, "Food")
	row := reportRow(e)
	assert.Equal(t, "Mar 05, 2024 02:30 PM", row[0])
	assert.Equal(t, "$-40.00", row[2])
}

package api

import (
	"fmt"
	"net/http"

	"wallet/database"
	"wallet/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler 报表导出处理器
type ExportHandler struct{}

// NewExportHandler 创建报表导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// Export 导出流水报表
// @Summary 导出流水报表
// @Description 按筛选条件导出钱包流水，格式为 csv / excel / pdf。三种格式的行集合一致：Time、Description、Amount、Category 四列，行顺序为筛选序，不做额外排序。
// @Tags 导出
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param format path string true "导出格式" Enums(csv,excel,pdf)
// @Param category query string false "类别名称"
// @Param min_amount query string false "金额下限"
// @Param max_amount query string false "金额上限"
// @Param year query string false "年份，如 2024"
// @Param month query string false "月份英文名，如 March"
// @Param weekday query string false "星期英文名，如 Monday"
// @Param day query string false "几号，1-31"
// @Success 200 {file} file "报表文件"
// @Failure 400 {object} Response "不支持的导出格式"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id}/export/{format} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	format := c.Param("format")
	switch format {
	case service.ReportFormatCSV, service.ReportFormatExcel, service.ReportFormatPDF:
	default:
		BadRequest(c, "不支持的导出格式，可选值：csv、excel、pdf")
		return
	}

	var filter service.LedgerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	svc := service.NewLedgerService(database.DB)
	entries, err := svc.ListEntries(walletID, user.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 报表只做筛选，行顺序即筛选序
	filtered := filter.Apply(entries)

	data, err := service.RenderReport(filtered, format)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	mime := service.ReportMIME(format)
	filename := fmt.Sprintf("%s.%s", service.ReportFilename, service.ReportExtension(format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(data)))

	c.Data(http.StatusOK, mime, data)
}

package api

import (
	"errors"

	"wallet/service"

	"github.com/gin-gonic/gin"
)

// HandleServiceError 将 service 层业务错误映射为 HTTP 响应
// 所有业务错误都在边界恢复为用户可读提示，不会使进程退出
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientBalance):
		BadRequest(c, "余额不足，无法完成该笔交易")
	case errors.Is(err, service.ErrCategoryNotFound):
		BadRequest(c, "类别不存在")
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, "记录不存在")
	case errors.Is(err, service.ErrInvalidAmount):
		BadRequest(c, "金额格式错误")
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
	default:
		InternalError(c, SafeErrorMessage(err, "操作失败"))
	}
}

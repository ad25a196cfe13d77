package api

import (
	"wallet/database"
	"wallet/models"
	"wallet/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List 获取钱包关联的类别列表
// @Summary 获取钱包类别列表
// @Description 获取钱包关联的全部类别，按名称升序
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id}/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	svc := service.NewLedgerService(database.DB)
	if _, err := svc.GetWallet(walletID, user.ID); err != nil {
		HandleServiceError(c, err)
		return
	}

	var list []models.Category
	err := database.DB.
		Joins("JOIN wallet_categories ON wallet_categories.category_id = categories.id").
		Where("wallet_categories.wallet_id = ?", walletID).
		Order("categories.name ASC").
		Find(&list).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, list)
}

// Reset 重置钱包类别为默认集合
// @Summary 重置钱包类别
// @Description 清空钱包的类别关联，重建为固定的六个默认类别（按字典序）
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Success 200 {object} Response{data=[]models.Category} "重置成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id}/categories/reset [post]
func (h *CategoryHandler) Reset(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	svc := service.NewLedgerService(database.DB)
	cats, err := svc.ResetCategories(walletID, user)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessWithMessage(c, "重置成功", cats)
}

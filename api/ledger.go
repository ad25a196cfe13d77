package api

import (
	"strconv"
	"time"

	"wallet/database"
	"wallet/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LedgerHandler 流水处理器
type LedgerHandler struct{}

// NewLedgerHandler 创建流水处理器
func NewLedgerHandler() *LedgerHandler {
	return &LedgerHandler{}
}

// CreateTransactionRequest 记账请求
// category_id 与 new_category 二选一，new_category 优先
type CreateTransactionRequest struct {
	Amount      string `json:"amount" binding:"required" example:"-40.00"` // 带符号十进制字符串
	Description string `json:"description" example:"午餐"`
	CategoryID  uint   `json:"category_id" example:"1"`
	NewCategory string `json:"new_category" example:"Food"`
	Timestamp   string `json:"timestamp" example:"2024-01-15 12:30:00"` // 缺省取当前时间
}

// UpdateEntryRequest 流水更正请求，金额不可修改
type UpdateEntryRequest struct {
	Description *string `json:"description"`
	Category    *string `json:"category"` // 类别名称，必须已存在
}

// LedgerListRequest 流水列表请求：筛选 + 排序 + 分页
type LedgerListRequest struct {
	service.LedgerFilter
	Page int `form:"page" example:"1"`
}

// entryIDParam 解析路径中的流水ID
func entryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的流水ID")
		return 0, false
	}
	return uint(id), true
}

// Create 记一笔账
// @Summary 创建流水
// @Description 对钱包应用一笔带符号金额：正数入账、负数出账。扣减超过余额会被拒绝；金额为零或未选择类别视为参数错误。
// @Tags 流水
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param request body CreateTransactionRequest true "记账信息"
// @Success 200 {object} Response{data=models.LedgerEntry} "记账成功"
// @Failure 400 {object} Response "金额为零、未选择类别或余额不足"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id}/entries [post]
func (h *LedgerHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 记账金额必须可解析
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		BadRequest(c, "金额格式错误")
		return
	}

	var ts time.Time
	if req.Timestamp != "" {
		ts, err = time.ParseInLocation("2006-01-02 15:04:05", req.Timestamp, time.Local)
		if err != nil {
			BadRequest(c, "时间格式错误，应为: 2006-01-02 15:04:05")
			return
		}
	}

	svc := service.NewLedgerService(database.DB)
	entry, err := svc.ApplyTransaction(walletID, user, service.TransactionInput{
		Amount:          amount,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		NewCategoryName: req.NewCategory,
		Timestamp:       ts,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessWithMessage(c, "记账成功", entry)
}

// List 获取流水列表
// @Summary 获取流水列表
// @Description 获取钱包流水，支持按类别、金额区间、年/月/星期/日筛选与排序分页。非法的数值或日期筛选值按无约束处理，不报错。
// @Tags 流水
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param category query string false "类别名称"
// @Param min_amount query string false "金额下限"
// @Param max_amount query string false "金额上限"
// @Param year query string false "年份，如 2024"
// @Param month query string false "月份英文名，如 March"
// @Param weekday query string false "星期英文名，如 Monday"
// @Param day query string false "几号，1-31"
// @Param sort query string false "排序键" Enums(amount_asc,amount_desc,timestamp_asc,timestamp_desc,category_asc,category_desc)
// @Param page query int false "页码，1 起始" default(1)
// @Success 200 {object} Response{data=PageResponse{list=[]models.LedgerEntry}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id}/entries [get]
func (h *LedgerHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	var req LedgerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	svc := service.NewLedgerService(database.DB)
	entries, err := svc.ListEntries(walletID, user.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	filtered := req.LedgerFilter.Apply(entries)
	service.SortEntries(filtered, req.SortKey)
	page := service.Paginate(filtered, req.Page)

	Success(c, PageResponse{
		Total:    int64(len(filtered)),
		Page:     req.Page,
		PageSize: service.PageSize,
		List:     page,
	})
}

// Update 更正流水
// @Summary 更正流水
// @Description 更正流水的描述或类别；金额与余额不受影响
// @Tags 流水
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param entry_id path int true "流水ID"
// @Param request body UpdateEntryRequest true "更正内容"
// @Success 200 {object} Response{data=models.LedgerEntry} "更正成功"
// @Failure 400 {object} Response "类别不存在"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "流水不存在"
// @Router /api/v1/wallets/{id}/entries/{entry_id} [put]
func (h *LedgerHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	svc := service.NewLedgerService(database.DB)
	entry, err := svc.EditEntry(walletID, entryID, user, req.Description, req.Category)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 重新获取更正后的记录
	database.DB.First(entry, entry.ID)
	SuccessWithMessage(c, "更正成功", entry)
}

// Delete 删除流水并冲销
// @Summary 删除流水
// @Description 删除一条流水并从余额中冲销其金额；冲销会使余额为负时拒绝删除
// @Tags 流水
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param entry_id path int true "流水ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "冲销会使余额为负"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "流水不存在"
// @Router /api/v1/wallets/{id}/entries/{entry_id} [delete]
func (h *LedgerHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	svc := service.NewLedgerService(database.DB)
	if err := svc.DeleteEntry(walletID, entryID, user); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

package api

import (
	"strconv"

	"wallet/database"
	"wallet/middleware"
	"wallet/models"
	"wallet/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler 钱包处理器
type WalletHandler struct{}

// NewWalletHandler 创建钱包处理器
func NewWalletHandler() *WalletHandler {
	return &WalletHandler{}
}

// CreateWalletRequest 创建钱包请求
type CreateWalletRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100" example:"日常开销"`
	Kind           string `json:"kind" binding:"omitempty,oneof=personal group" example:"personal"`
	Currency       string `json:"currency" binding:"omitempty,len=3" example:"USD"`
	OpeningBalance string `json:"opening_balance" example:"100.00"` // 十进制字符串，缺省为 0
}

// AddMemberRequest 添加成员请求
type AddMemberRequest struct {
	Username string `json:"username" binding:"required" example:"friend01"`
}

// currentUser 读取当前登录用户
func currentUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := database.DB.First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		Unauthorized(c, "请先登录")
		return nil, false
	}
	return &user, true
}

// walletIDParam 解析路径中的钱包ID
func walletIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的钱包ID")
		return 0, false
	}
	return uint(id), true
}

// Create 创建钱包
// @Summary 创建钱包
// @Description 创建个人或群组钱包，并按开户余额合成首条 Initial balance 流水
// @Tags 钱包
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWalletRequest true "钱包信息"
// @Success 200 {object} Response{data=models.Wallet} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/wallets [post]
func (h *WalletHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.Kind == "" {
		req.Kind = models.WalletKindPersonal
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	// 开户余额必须可解析（与筛选参数的静默降级不同，此处是强校验）
	opening := decimal.Zero
	if req.OpeningBalance != "" {
		var err error
		opening, err = decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			BadRequest(c, "金额格式错误")
			return
		}
	}

	svc := service.NewLedgerService(database.DB)
	wallet, err := svc.CreateWallet(user, req.Name, req.Kind, req.Currency, opening)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessWithMessage(c, "创建成功", wallet)
}

// List 列出我的钱包
// @Summary 获取钱包列表
// @Description 获取当前用户加入的全部钱包
// @Tags 钱包
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Wallet} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/wallets [get]
func (h *WalletHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	svc := service.NewLedgerService(database.DB)
	wallets, err := svc.ListWallets(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, wallets)
}

// Get 获取钱包详情
// @Summary 获取钱包详情
// @Description 获取指定钱包的余额、币种和类别集合
// @Tags 钱包
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Success 200 {object} Response{data=models.Wallet} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id} [get]
func (h *WalletHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	svc := service.NewLedgerService(database.DB)
	wallet, err := svc.GetWallet(walletID, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	Success(c, wallet)
}

// AddMember 向群组钱包添加成员
// @Summary 添加钱包成员
// @Description 向群组钱包添加成员，个人钱包不允许
// @Tags 钱包
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param request body AddMemberRequest true "成员信息"
// @Success 200 {object} Response "添加成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包或用户不存在"
// @Router /api/v1/wallets/{id}/members [post]
func (h *WalletHandler) AddMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	svc := service.NewLedgerService(database.DB)
	if err := svc.AddMember(walletID, user, req.Username); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessWithMessage(c, "添加成功", nil)
}

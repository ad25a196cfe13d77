package service

import "errors"

// 核心操作的业务错误，HTTP 层据此映射状态码和提示文案
var (
	// ErrInvalidInput 输入非法：金额为零、未选择类别等
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidAmount 金额无法解析（必填金额场景，区别于筛选参数的静默降级）
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance 余额不足：扣减或冲销会使余额为负
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNotFound 钱包/流水不存在或不属于调用方
	ErrNotFound = errors.New("not found")
	// ErrCategoryNotFound 指定的类别不存在
	ErrCategoryNotFound = errors.New("category not found")
)

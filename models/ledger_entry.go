package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry 余额变动流水
// amount 为带符号金额，写入后不可修改；description/category 可以事后更正。
// CategoryName 是写入时刻类别名称的冗余快照：类别随后被改名或删除，
// 历史流水显示的仍是当时的名字（这是有意的历史留痕，不是缓存）。
type LedgerEntry struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	WalletID     uint            `json:"wallet_id" gorm:"index;not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description  string          `json:"description" gorm:"size:100"`
	CategoryID   *uint           `json:"category_id" gorm:"index"` // 类别删除后置空，快照字段保留
	CategoryName string          `json:"category_name" gorm:"size:100"`
	Actor        string          `json:"actor" gorm:"size:50"` // 个人钱包为固定标签，群组钱包为成员用户名
	Timestamp    time.Time       `json:"timestamp" gorm:"index;not null"`
	CreatedAt    time.Time       `json:"created_at"`

	Wallet   Wallet    `json:"-" gorm:"foreignKey:WalletID"`
	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (LedgerEntry) TableName() string {
	return "balance_changes"
}

// DescriptionDefaults 描述缺省值：按金额符号取 Income / Expense
const (
	DescriptionIncome  = "Income"
	DescriptionExpense = "Expense"
	// DescriptionInitial 钱包建立时合成的首条流水描述
	DescriptionInitial = "Initial balance"
)

// DefaultDescription 按金额符号给出缺省描述
func DefaultDescription(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return DescriptionExpense
	}
	return DescriptionIncome
}

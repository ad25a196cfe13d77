package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// WalletKindPersonal 个人钱包：单一所有者
	WalletKindPersonal = "personal"
	// WalletKindGroup 群组钱包：多名成员共同记账
	WalletKindGroup = "group"
)

// ActorOwner 个人钱包流水的固定操作人标签
const ActorOwner = "Owner"

// Wallet 钱包模型
// 余额只能通过流水变更，任何一次变更都会生成一条 LedgerEntry，
// 余额恒等于全部流水金额之和（增量维护，不做全表重算）。
type Wallet struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:100;not null"`
	Kind      string          `json:"kind" gorm:"size:20;not null;default:personal"` // personal/group
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(12,2);not null"`
	Currency  string          `json:"currency" gorm:"size:3;not null;default:USD"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`

	// 个人钱包仅有一名成员，群组钱包可以有多名
	Members []User `json:"members,omitempty" gorm:"many2many:wallet_users"`
	// 钱包关联的记账类别集合
	Categories []Category `json:"categories,omitempty" gorm:"many2many:wallet_categories"`
}

// TableName 设置表名
func (Wallet) TableName() string {
	return "wallets"
}

// IsGroup 是否群组钱包
func (w *Wallet) IsGroup() bool {
	return w.Kind == WalletKindGroup
}

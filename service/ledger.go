package service

import (
	"fmt"
	"time"

	"wallet/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerService 钱包流水服务
// 余额变更和流水追加必须是同一笔事务：先对钱包行加排他锁，
// 校验通过后更新余额并写入流水，避免并发请求打破余额不变式。
type LedgerService struct {
	db *gorm.DB
}

// NewLedgerService 创建钱包流水服务
func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// TransactionInput 记账输入
// NewCategoryName 非空时优先于 CategoryID；两者都为空视为未选择类别。
type TransactionInput struct {
	Amount          decimal.Decimal
	Description     string
	CategoryID      uint
	NewCategoryName string
	Timestamp       time.Time // 零值取当前时间
}

// CreateWallet 创建钱包，并合成首条 "Initial balance" 流水
// 开户余额即首条流水的金额，与后续流水一起保证余额等于流水之和。
func (s *LedgerService) CreateWallet(owner *models.User, name, kind, currency string, openingBalance decimal.Decimal) (*models.Wallet, error) {
	if kind != models.WalletKindPersonal && kind != models.WalletKindGroup {
		return nil, fmt.Errorf("%w: 钱包类型应为 personal 或 group", ErrInvalidInput)
	}
	if openingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: 开户余额不能为负", ErrInvalidAmount)
	}

	wallet := &models.Wallet{
		Name:     name,
		Kind:     kind,
		Balance:  openingBalance,
		Currency: currency,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wallet).Error; err != nil {
			return err
		}
		if err := tx.Model(wallet).Association("Members").Append(owner); err != nil {
			return err
		}
		entry := models.LedgerEntry{
			WalletID:    wallet.ID,
			Amount:      openingBalance,
			Description: models.DescriptionInitial,
			Actor:       actorLabel(wallet, owner),
			Timestamp:   time.Now(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// ApplyTransaction 对钱包应用一笔带符号金额的记账
// 校验顺序：金额非零 → 类别已选择 → 成员资格 → 余额充足，
// 通过后在同一事务内提交新余额并追加流水。
func (s *LedgerService) ApplyTransaction(walletID uint, actor *models.User, in TransactionInput) (*models.LedgerEntry, error) {
	if in.Amount.IsZero() {
		return nil, fmt.Errorf("%w: 金额不能为零", ErrInvalidInput)
	}
	if in.NewCategoryName == "" && in.CategoryID == 0 {
		return nil, fmt.Errorf("%w: 未选择类别", ErrInvalidInput)
	}

	var entry *models.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, walletID)
		if err != nil {
			return err
		}
		if err := requireMember(tx, wallet.ID, actor.ID); err != nil {
			return err
		}

		cat, created, err := s.resolveCategory(tx, in.CategoryID, in.NewCategoryName)
		if err != nil {
			return err
		}
		if created || !walletHasCategory(tx, wallet.ID, cat.ID) {
			if err := tx.Model(wallet).Association("Categories").Append(cat); err != nil {
				return err
			}
		}

		if in.Amount.IsNegative() && wallet.Balance.LessThan(in.Amount.Neg()) {
			return ErrInsufficientBalance
		}
		newBalance := wallet.Balance.Add(in.Amount)
		if err := tx.Model(wallet).Update("balance", newBalance).Error; err != nil {
			return err
		}

		description := in.Description
		if description == "" {
			description = models.DefaultDescription(in.Amount)
		}
		ts := in.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		entry = &models.LedgerEntry{
			WalletID:     wallet.ID,
			Amount:       in.Amount,
			Description:  description,
			CategoryID:   &cat.ID,
			CategoryName: cat.Name, // 写入时刻的类别名快照
			Actor:        actorLabel(wallet, actor),
			Timestamp:    ts,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry 删除一条流水并冲销其金额
// 冲销校验独立于记账：余额减去流水金额为负则拒绝删除。
func (s *LedgerService) DeleteEntry(walletID, entryID uint, actor *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, walletID)
		if err != nil {
			return err
		}
		if err := requireMember(tx, wallet.ID, actor.ID); err != nil {
			return err
		}

		var entry models.LedgerEntry
		if err := tx.Where("id = ? AND wallet_id = ?", entryID, wallet.ID).First(&entry).Error; err != nil {
			return ErrNotFound
		}

		candidate := wallet.Balance.Sub(entry.Amount)
		if candidate.IsNegative() {
			return ErrInsufficientBalance
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}
		return tx.Model(wallet).Update("balance", candidate).Error
	})
}

// EditEntry 更正一条流水的描述或类别，金额与余额不受影响
func (s *LedgerService) EditEntry(walletID, entryID uint, actor *models.User, newDescription, newCategoryName *string) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireMember(tx, walletID, actor.ID); err != nil {
			return err
		}
		if err := tx.Where("id = ? AND wallet_id = ?", entryID, walletID).First(&entry).Error; err != nil {
			return ErrNotFound
		}

		updates := make(map[string]interface{})
		if newDescription != nil {
			updates["description"] = *newDescription
		}
		if newCategoryName != nil {
			var cat models.Category
			if err := tx.Where("name = ?", *newCategoryName).First(&cat).Error; err != nil {
				return ErrCategoryNotFound
			}
			updates["category_id"] = cat.ID
			updates["category_name"] = cat.Name
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&entry).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ResetCategories 清空钱包的类别关联，重建为固定的六个默认类别
// 默认集合按字典序逐个取用或创建，结果顺序即字典序。
func (s *LedgerService) ResetCategories(walletID uint, actor *models.User) ([]models.Category, error) {
	var result []models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.First(&wallet, walletID).Error; err != nil {
			return ErrNotFound
		}
		if err := requireMember(tx, wallet.ID, actor.ID); err != nil {
			return err
		}
		if err := tx.Model(&wallet).Association("Categories").Clear(); err != nil {
			return err
		}
		for _, name := range models.DefaultCategoryNames() {
			cat, err := getOrCreateCategory(tx, name)
			if err != nil {
				return err
			}
			if err := tx.Model(&wallet).Association("Categories").Append(cat); err != nil {
				return err
			}
			result = append(result, *cat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddMember 向群组钱包添加成员
func (s *LedgerService) AddMember(walletID uint, actor *models.User, username string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.First(&wallet, walletID).Error; err != nil {
			return ErrNotFound
		}
		if err := requireMember(tx, wallet.ID, actor.ID); err != nil {
			return err
		}
		if !wallet.IsGroup() {
			return fmt.Errorf("%w: 个人钱包不能添加成员", ErrInvalidInput)
		}
		var user models.User
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			return ErrNotFound
		}
		return tx.Model(&wallet).Association("Members").Append(&user)
	})
}

// GetWallet 读取调用方可见的钱包
func (s *LedgerService) GetWallet(walletID, actorID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.Preload("Categories").First(&wallet, walletID).Error; err != nil {
		return nil, ErrNotFound
	}
	if err := requireMember(s.db, wallet.ID, actorID); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// ListWallets 列出调用方加入的全部钱包
func (s *LedgerService) ListWallets(actorID uint) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := s.db.
		Joins("JOIN wallet_users ON wallet_users.wallet_id = wallets.id").
		Where("wallet_users.user_id = ?", actorID).
		Find(&wallets).Error
	if err != nil {
		return nil, err
	}
	return wallets, nil
}

// ListEntries 读取钱包的全部流水（过滤、排序、分页在内存管线中完成）
func (s *LedgerService) ListEntries(walletID, actorID uint) ([]models.LedgerEntry, error) {
	if err := requireMember(s.db, walletID, actorID); err != nil {
		return nil, err
	}
	var entries []models.LedgerEntry
	if err := s.db.Where("wallet_id = ?", walletID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// lockWallet 以排他锁读取钱包行，事务提交前串行化同一钱包的变更
func lockWallet(tx *gorm.DB, walletID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wallet, walletID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &wallet, nil
}

// requireMember 校验用户是钱包成员
func requireMember(tx *gorm.DB, walletID, userID uint) error {
	var count int64
	tx.Table("wallet_users").
		Where("wallet_id = ? AND user_id = ?", walletID, userID).
		Count(&count)
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// walletHasCategory 类别是否已关联到钱包
func walletHasCategory(tx *gorm.DB, walletID, categoryID uint) bool {
	var count int64
	tx.Table("wallet_categories").
		Where("wallet_id = ? AND category_id = ?", walletID, categoryID).
		Count(&count)
	return count > 0
}

// resolveCategory 解析类别选择：新名称优先于已有ID
func (s *LedgerService) resolveCategory(tx *gorm.DB, categoryID uint, newName string) (cat *models.Category, created bool, err error) {
	if newName != "" {
		var before int64
		tx.Model(&models.Category{}).Where("name = ?", newName).Count(&before)
		cat, err = getOrCreateCategory(tx, newName)
		return cat, before == 0, err
	}
	var existing models.Category
	if err := tx.First(&existing, categoryID).Error; err != nil {
		return nil, false, ErrCategoryNotFound
	}
	return &existing, false, nil
}

// getOrCreateCategory 按名取用类别，不存在则创建
// 名称列有唯一约束，并发下的重复创建用 ON CONFLICT 忽略后回读
func getOrCreateCategory(tx *gorm.DB, name string) (*models.Category, error) {
	cat := models.Category{Name: name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cat).Error; err != nil {
		return nil, err
	}
	// DoNothing 命中冲突时不回填主键，统一按名称回读
	var out models.Category
	if err := tx.Where("name = ?", name).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// actorLabel 流水操作人标签：个人钱包固定为 Owner，群组钱包记成员用户名
func actorLabel(wallet *models.Wallet, actor *models.User) string {
	if wallet.IsGroup() {
		return actor.Username
	}
	return models.ActorOwner
}

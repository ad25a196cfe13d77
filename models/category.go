package models

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// Category 记账类别，名称全局唯一（按名取用，不存在则创建）
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategoryNames 类别重置后的固定集合，按字典序返回
func DefaultCategoryNames() []string {
	names := []string{
		"Entertainment",
		"Food",
		"Health",
		"Savings",
		"Shopping",
		"Transportation",
	}
	sort.Strings(names)
	return names
}

package models

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultCategoryNames(t *testing.T) {
	names := DefaultCategoryNames()

	// 固定六个默认类别，按区分大小写的字典序排列
	assert.Equal(t, []string{"Entertainment", "Food", "Health", "Savings", "Shopping", "Transportation"}, names)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestDefaultDescription(t *testing.T) {
	assert.Equal(t, DescriptionExpense, DefaultDescription(decimal.RequireFromString("-0.01")))
	assert.Equal(t, DescriptionIncome, DefaultDescription(decimal.RequireFromString("10.00")))
	assert.Equal(t, DescriptionIncome, DefaultDescription(decimal.Zero))
}

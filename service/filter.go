package service

import (
	"sort"
	"strconv"
	"time"

	"wallet/models"

	"github.com/shopspring/decimal"
)

// PageSize 流水列表固定页大小
const PageSize = 3

// 排序键，未设置或不认识的值一律退回 SortTimestampDesc
const (
	SortAmountAsc     = "amount_asc"
	SortAmountDesc    = "amount_desc"
	SortTimestampAsc  = "timestamp_asc"
	SortTimestampDesc = "timestamp_desc"
	SortCategoryAsc   = "category_asc"
	SortCategoryDesc  = "category_desc"
)

// monthNumbers 月份英文名 → 月份序号
var monthNumbers = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// weekdayNames 星期英文名，周一起始
var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// weekdayNumber 星期名 → time.Weekday（周日为 0）
// 列表周一起始，故下标 i 映射为 (i+1) mod 7
func weekdayNumber(name string) (time.Weekday, bool) {
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday((i + 1) % 7), true
		}
	}
	return 0, false
}

// LedgerFilter 流水筛选条件，字段保留表单原始字符串
// 数值/日期字段解析失败不报错，按“无约束”处理
type LedgerFilter struct {
	Category  string `form:"category"`
	MinAmount string `form:"min_amount"`
	MaxAmount string `form:"max_amount"`
	Year      string `form:"year"`
	Month     string `form:"month"`   // 月份英文名，如 March
	Weekday   string `form:"weekday"` // 星期英文名，如 Monday
	Day       string `form:"day"`
	SortKey   string `form:"sort"`
}

// Apply 按固定顺序做合取筛选：类别 → 下限 → 上限 → 年 → 月 → 星期 → 日
// 只做筛选不排序；列表页在筛选后调用 SortEntries，报表导出保持筛选序
func (f *LedgerFilter) Apply(entries []models.LedgerEntry) []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(entries))
	copy(out, entries)

	if f.Category != "" {
		out = keep(out, func(e models.LedgerEntry) bool {
			return e.CategoryName == f.Category
		})
	}
	if min, err := decimal.NewFromString(f.MinAmount); f.MinAmount != "" && err == nil {
		out = keep(out, func(e models.LedgerEntry) bool {
			return e.Amount.GreaterThanOrEqual(min)
		})
	}
	if max, err := decimal.NewFromString(f.MaxAmount); f.MaxAmount != "" && err == nil {
		out = keep(out, func(e models.LedgerEntry) bool {
			return e.Amount.LessThanOrEqual(max)
		})
	}
	if year, err := strconv.Atoi(f.Year); f.Year != "" && err == nil {
		out = keep(out, func(e models.LedgerEntry) bool {
			return e.Timestamp.Year() == year
		})
	}
	if month, ok := monthNumbers[f.Month]; ok {
		out = keep(out, func(e models.LedgerEntry) bool {
			return e.Timestamp.Month() == month
		})
	}
	if weekday, ok := weekdayNumber(f.Weekday); ok {
		out = keep(out, func(e models.LedgerEntry) bool {
			return e.Timestamp.Weekday() == weekday
		})
	}
	if day, err := strconv.Atoi(f.Day); f.Day != "" && err == nil {
		out = keep(out, func(e models.LedgerEntry) bool {
			return e.Timestamp.Day() == day
		})
	}

	return out
}

// keep 原地保留满足谓词的元素
func keep(entries []models.LedgerEntry, pred func(models.LedgerEntry) bool) []models.LedgerEntry {
	kept := entries[:0]
	for _, e := range entries {
		if pred(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// SortEntries 按排序键稳定排序，未知键退回时间倒序
func SortEntries(entries []models.LedgerEntry, key string) {
	var less func(i, j int) bool
	switch key {
	case SortAmountAsc:
		less = func(i, j int) bool { return entries[i].Amount.LessThan(entries[j].Amount) }
	case SortAmountDesc:
		less = func(i, j int) bool { return entries[j].Amount.LessThan(entries[i].Amount) }
	case SortTimestampAsc:
		less = func(i, j int) bool { return entries[i].Timestamp.Before(entries[j].Timestamp) }
	case SortCategoryAsc:
		less = func(i, j int) bool { return entries[i].CategoryName < entries[j].CategoryName }
	case SortCategoryDesc:
		less = func(i, j int) bool { return entries[j].CategoryName < entries[i].CategoryName }
	default: // SortTimestampDesc
		less = func(i, j int) bool { return entries[j].Timestamp.Before(entries[i].Timestamp) }
	}
	sort.SliceStable(entries, less)
}

// Paginate 取第 page 页（1 起始），页大小固定为 PageSize
// 越界页返回空切片
func Paginate(entries []models.LedgerEntry, page int) []models.LedgerEntry {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(entries) {
		return []models.LedgerEntry{}
	}
	end := start + PageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}

// TotalPages 总页数
func TotalPages(total int) int {
	if total == 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth 绕过 JWT 中间件，直接注入登录态
func fakeAuth(userID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

func entryColumns() []string {
	return []string{"id", "wallet_id", "amount", "description", "category_id", "category_name", "actor", "timestamp", "created_at"}
}

// 三笔 Food、一笔 Shopping，时间各不相同
func sampleEntryRows() *sqlmock.Rows {
	rows := sqlmock.NewRows(entryColumns())
	rows.AddRow(1, 1, "100.00", "Income", 2, "Food", "Owner", time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local), time.Now())
	rows.AddRow(2, 1, "-40.00", "Expense", 2, "Food", "Owner", time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local), time.Now())
	rows.AddRow(3, 1, "25.00", "Income", 5, "Shopping", "Owner", time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local), time.Now())
	rows.AddRow(4, 1, "-12.50", "Expense", 2, "Food", "Owner", time.Date(2024, 3, 20, 18, 0, 0, 0, time.Local), time.Now())
	return rows
}

func expectListEntries(mock sqlmock.Sqlmock) {
	// 当前用户 → 成员校验 → 流水查询
	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows(1, "alice", "hash", "a@x.com"))
	mock.ExpectQuery("SELECT count(.+) FROM `wallet_users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT .* FROM `balance_changes`").WillReturnRows(sampleEntryRows())
}

func TestLedgerHandler_List_FilterAndPaginate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	expectListEntries(mock)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/wallets/:id/entries", fakeAuth(1, "alice"), NewLedgerHandler().List)

	req := httptest.NewRequest("GET", "/wallets/1/entries?category=Food", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(3), data["page_size"])

	// 默认时间倒序：最新的 Food 流水排第一
	list := data["list"].([]interface{})
	require.Len(t, list, 3)
	first := list[0].(map[string]interface{})
	assert.Equal(t, float64(4), first["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerHandler_List_MalformedFilterIgnored(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	expectListEntries(mock)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/wallets/:id/entries", fakeAuth(1, "alice"), NewLedgerHandler().List)

	// 非法筛选值按无约束处理，不报错
	req := httptest.NewRequest("GET", "/wallets/1/entries?min_amount=abc&month=Febtober", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["total"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerHandler_Create_InvalidAmount(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows(1, "alice", "hash", "a@x.com"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/wallets/:id/entries", fakeAuth(1, "alice"), NewLedgerHandler().Create)

	body := `{"amount":"12,5","category_id":2}`
	req := httptest.NewRequest("POST", "/wallets/1/entries", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "金额格式错误", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletHandler_Create_InvalidOpeningBalance(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").WillReturnRows(userRows(1, "alice", "hash", "a@x.com"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/wallets", fakeAuth(1, "alice"), NewWalletHandler().Create)

	body := `{"name":"日常开销","opening_balance":"1O0"}`
	req := httptest.NewRequest("POST", "/wallets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "金额格式错误", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

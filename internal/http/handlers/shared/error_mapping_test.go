package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func runMapped(t *testing.T, locale string, err error, rules []MappedError) response.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if locale != "" {
		c.Request.Header.Set("Accept-Language", locale)
	}
	RespondMappedError(c, err, rules, response.CodeInternal, "error.internal")

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRespondMappedErrorRules(t *testing.T) {
	resp := runMapped(t, "", fmt.Errorf("delete: %w", service.ErrProductInUse), CatalogErrorRules)
	require.Equal(t, response.CodeConflict, resp.StatusCode)
	require.Equal(t, "Cannot delete product because it exists in past orders.", resp.Msg)

	resp = runMapped(t, "zh-CN", service.ErrProductInUse, CatalogErrorRules)
	require.Equal(t, "商品已存在于历史订单中，无法删除", resp.Msg)

	resp = runMapped(t, "", service.ErrEmptyCart, CartErrorRules)
	require.Equal(t, response.CodeBadRequest, resp.StatusCode)

	resp = runMapped(t, "", errors.New("disk on fire"), CartErrorRules)
	require.Equal(t, response.CodeInternal, resp.StatusCode)
}

func TestRespondMappedErrorInsufficientStock(t *testing.T) {
	err := fmt.Errorf("checkout: %w", &service.InsufficientStockError{ProductID: 4, ProductName: "Gel Pen", Available: 2})
	resp := runMapped(t, "", err, nil)
	require.Equal(t, response.CodeConflict, resp.StatusCode)
	require.Equal(t, "Insufficient stock for Gel Pen. Available: 2", resp.Msg)
}

func TestConcatMappedErrors(t *testing.T) {
	merged := ConcatMappedErrors(ProductValidationRules, nil, []MappedError{{Target: service.ErrNotFound}})
	require.Len(t, merged, len(ProductValidationRules)+1)
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string][2]int{
		"/":                         {1, 20},
		"/?page=3&page_size=50":     {3, 50},
		"/?page=-2&page_size=500":   {1, 100},
		"/?page=abc&page_size=oops": {1, 20},
	}
	for target, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		page, size := ParsePagination(c)
		require.Equal(t, want, [2]int{page, size}, target)
	}
}

func TestGetUserIDRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(c)
	require.False(t, ok)
	require.Contains(t, w.Body.String(), `"status_code":401`)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", uint(7))
	id, ok := GetUserID(c)
	require.True(t, ok)
	require.Equal(t, uint(7), id)
}

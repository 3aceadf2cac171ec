package shared

import (
	"strconv"

	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetUserID 当前登录用户；鉴权中间件未写入时响应 401 并返回 false
func GetUserID(c *gin.Context) (uint, bool) {
	if id := c.GetUint(constants.ContextKeyUserID); id > 0 {
		return id, true
	}
	RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	return 0, false
}

func GetUserRole(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserRole)
}

// ParseIDParam 路径参数必须是正整数，否则响应 400
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

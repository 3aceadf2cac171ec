package shared

import "github.com/gin-gonic/gin"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type pageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ParsePagination page 从 1 开始，page_size 限制在 [1, 100]，非法值取默认
func ParsePagination(c *gin.Context) (page, pageSize int) {
	var q pageQuery
	_ = c.ShouldBindQuery(&q)
	page, pageSize = q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}

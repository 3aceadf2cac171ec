package admin

import (
	handlershared "github.com/stationery-next/internal/http/handlers/shared"
	"github.com/stationery-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAuthzMe 获取当前用户角色与生效策略
func (h *Handler) GetAuthzMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	role := handlershared.GetUserRole(c)
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":  uid,
		"role":     role,
		"policies": policies,
	})
}

// GetAuthzRoles 预置角色及策略矩阵
func (h *Handler) GetAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRolePolicies()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

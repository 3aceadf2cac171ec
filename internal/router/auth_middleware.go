package router

import (
	"strings"

	"github.com/stationery-next/internal/authz"
	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/i18n"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
)

// bearerToken 取 Authorization: Bearer <token>，scheme 不区分大小写
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserAuthMiddleware 校验令牌并从数据库加载用户，角色变更即时生效
func UserAuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "error.auth_header_missing")
			return
		}
		token, ok := bearerToken(header)
		if !ok {
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}

		claims, err := authService.ParseJWT(token)
		if err != nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		user, err := authService.GetUser(claims.UserID)
		if err != nil || user == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUsername, user.Username)
		c.Set(constants.ContextKeyUserRole, user.Role)
		c.Next()
	}
}

// AdminRBACMiddleware 以路由模板（如 /admin/products/:id）为对象做 casbin 判定
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := strings.TrimSpace(c.GetString(constants.ContextKeyUserRole))
		if authzService == nil || role == "" {
			if authzService == nil {
				logger.Errorw("admin_rbac_service_unavailable")
			}
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		object := c.FullPath()
		if object == "" {
			object = c.Request.URL.Path
		}
		log := logger.SW("role", role, "method", c.Request.Method, "object", authz.NormalizeObject(object))

		allowed, err := authzService.EnforceRole(role, object, c.Request.Method)
		switch {
		case err != nil:
			log.Errorw("admin_rbac_enforce_failed", "error", err)
			abortUnauthorized(c, "error.unauthorized")
		case !allowed:
			log.Warnw("admin_rbac_permission_denied", "user_id", c.GetUint(constants.ContextKeyUserID))
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
		default:
			c.Next()
		}
	}
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

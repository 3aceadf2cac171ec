package router

import (
	"fmt"
	"strings"

	"github.com/stationery-next/internal/cache"
	"github.com/stationery-next/internal/config"
	adminhandlers "github.com/stationery-next/internal/http/handlers/admin"
	publichandlers "github.com/stationery-next/internal/http/handlers/public"
	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "st"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}
	registerRule := loginRule
	registerRule.Prefix = fmt.Sprintf("%s:rate:register", redisPrefix)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开目录
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.ListCategories)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(cache.Client(), registerRule, KeyByIP), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		}

		// 顾客接口（需登录）
		user := apiV1.Group("")
		user.Use(UserAuthMiddleware(c.AuthService))
		{
			user.GET("/me", publicHandler.GetCurrentUser)

			user.GET("/cart", publicHandler.GetCart)
			user.GET("/cart/validate", publicHandler.ValidateCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PATCH("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		admin.Use(UserAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/products", adminHandler.GetProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.PATCH("/products/:id/visibility", adminHandler.ToggleVisibility)
			admin.PATCH("/products/:id/stock", adminHandler.UpdateStock)

			admin.GET("/stock", adminHandler.GetStockManagement)
			admin.GET("/stock/alerts", adminHandler.GetStockAlerts)

			admin.GET("/reports/daily", adminHandler.GetDailyReport)
			admin.GET("/reports/daily/export", adminHandler.ExportDailyReport)

			admin.POST("/inventory/ingest", adminHandler.IngestInventory)
			admin.POST("/inventory/import", adminHandler.ImportInventory)

			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.GetAuthzRoles)
			admin.GET("/authz/permissions", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

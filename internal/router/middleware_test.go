package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stationery-next/internal/authz"
	"github.com/stationery-next/internal/config"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBuildCORSConfig(t *testing.T) {
	cfg := buildCORSConfig(config.CORSConfig{AllowedOrigins: []string{"*"}})
	require.True(t, cfg.AllowAllOrigins)
	require.Contains(t, cfg.AllowMethods, "PATCH")
	require.Contains(t, cfg.ExposeHeaders, requestIDHeader)

	cfg = buildCORSConfig(config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true})
	require.False(t, cfg.AllowAllOrigins)
	require.NotNil(t, cfg.AllowOriginFunc)
	require.True(t, cfg.AllowOriginFunc("https://shop.example.com"))

	cfg = buildCORSConfig(config.CORSConfig{AllowedOrigins: []string{" https://a.example.com ", ""}, MaxAge: 600})
	require.False(t, cfg.AllowAllOrigins)
	require.Equal(t, []string{"https://a.example.com"}, cfg.AllowOrigins)
	require.Equal(t, float64(600), cfg.MaxAge.Seconds())
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString(requestIDKey)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "req-123", w.Header().Get(requestIDHeader))
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "req-123", resp["request_id"])

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NotEmpty(t, w2.Header().Get(requestIDHeader))

	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req3.Header.Set(requestIDHeader, "<script>alert(1)</script>")
	r.ServeHTTP(w3, req3)
	require.NotContains(t, w3.Header().Get(requestIDHeader), "<")
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc.def")
	require.True(t, ok)
	require.Equal(t, "abc.def", token)

	_, ok = bearerToken("Bearer   ")
	require.False(t, ok)
	_, ok = bearerToken("Token abc")
	require.False(t, ok)
}

type authFixture struct {
	auth  *service.AuthService
	authz *authz.Service
	users map[string]*models.User
}

func setupAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	authzService, err := authz.NewService(db)
	require.NoError(t, err)
	require.NoError(t, authzService.BootstrapBuiltinRoles())

	userRepo := repository.NewUserRepository(db)
	fixture := &authFixture{
		auth:  service.NewAuthService(config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1}, 6, userRepo),
		authz: authzService,
		users: map[string]*models.User{},
	}
	for _, role := range []string{models.RoleCustomer, models.RoleStaff, models.RoleAdmin, "readonly_auditor"} {
		user := &models.User{Username: "u_" + role, PasswordHash: "x", Role: role}
		require.NoError(t, userRepo.Create(user))
		fixture.users[role] = user
	}
	return fixture
}

func (f *authFixture) token(t *testing.T, role string) string {
	t.Helper()
	token, _, err := f.auth.GenerateJWT(f.users[role])
	require.NoError(t, err)
	return token
}

func (f *authFixture) engine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "data": gin.H{"role": c.GetString("user_role")}})
	}
	r.GET("/api/v1/me", UserAuthMiddleware(f.auth), ok)
	admin := r.Group("/api/v1/admin")
	admin.Use(UserAuthMiddleware(f.auth), AdminRBACMiddleware(f.authz))
	admin.GET("/stock", ok)
	admin.PATCH("/products/:id/stock", ok)
	admin.POST("/inventory/ingest", ok)
	admin.GET("/reports/daily", ok)
	return r
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestUserAuthMiddleware(t *testing.T) {
	fixture := setupAuthFixture(t)
	r := fixture.engine()

	resp := decodeEnvelope(t, serve(r, http.MethodGet, "/api/v1/me", ""))
	require.Equal(t, 401, resp.StatusCode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	require.Equal(t, 401, decodeEnvelope(t, w).StatusCode)

	resp = decodeEnvelope(t, serve(r, http.MethodGet, "/api/v1/me", "not-a-jwt"))
	require.Equal(t, 401, resp.StatusCode)

	resp = decodeEnvelope(t, serve(r, http.MethodGet, "/api/v1/me", fixture.token(t, models.RoleCustomer)))
	require.Equal(t, 0, resp.StatusCode)
	require.JSONEq(t, `{"role":"customer"}`, string(resp.Data))
}

func TestUserAuthMiddlewareWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", UserAuthMiddleware(nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := serve(r, http.MethodGet, "/me", "anything")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 401, decodeEnvelope(t, w).StatusCode)
}

func TestAdminRBACMiddleware(t *testing.T) {
	fixture := setupAuthFixture(t)
	r := fixture.engine()

	cases := []struct {
		name   string
		role   string
		method string
		path   string
		want   int
	}{
		{name: "customer denied", role: models.RoleCustomer, method: http.MethodGet, path: "/api/v1/admin/stock", want: 403},
		{name: "auditor reads", role: "readonly_auditor", method: http.MethodGet, path: "/api/v1/admin/reports/daily", want: 0},
		{name: "auditor cannot ingest", role: "readonly_auditor", method: http.MethodPost, path: "/api/v1/admin/inventory/ingest", want: 403},
		{name: "staff adjusts stock", role: models.RoleStaff, method: http.MethodPatch, path: "/api/v1/admin/products/3/stock", want: 0},
		{name: "staff ingests", role: models.RoleStaff, method: http.MethodPost, path: "/api/v1/admin/inventory/ingest", want: 0},
		{name: "admin reads", role: models.RoleAdmin, method: http.MethodGet, path: "/api/v1/admin/stock", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := decodeEnvelope(t, serve(r, tc.method, tc.path, fixture.token(t, tc.role)))
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

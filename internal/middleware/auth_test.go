package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attendly/config"
	"attendly/internal/auth"
	"attendly/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "attendly-test",
	}
}

func authTestRouter(cfg *config.JWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	r.GET("/admin", AuthRequired(cfg), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func getWithToken(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingOrMalformedHeader(t *testing.T) {
	r := authTestRouter(testJWTConfig())

	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "/me", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "/me", "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "/me", "Bearer not-a-token").Code)
}

func TestAuthRequiredStoresSessionIdentity(t *testing.T) {
	cfg := testJWTConfig()
	r := authTestRouter(cfg)
	token, err := auth.GenerateAccessToken(cfg, 7, "hr@attendly.local", domain.RoleHR)
	require.NoError(t, err)

	w := getWithToken(r, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"HR"}`, w.Body.String())
}

func TestAdminRequiredGatesByRole(t *testing.T) {
	cfg := testJWTConfig()
	r := authTestRouter(cfg)

	staffToken, err := auth.GenerateAccessToken(cfg, 1, "staff@attendly.local", domain.RoleStaff)
	require.NoError(t, err)
	adminToken, err := auth.GenerateAccessToken(cfg, 2, "admin@attendly.local", domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, getWithToken(r, "/admin", "Bearer "+staffToken).Code)
	assert.Equal(t, http.StatusOK, getWithToken(r, "/admin", "Bearer "+adminToken).Code)
}

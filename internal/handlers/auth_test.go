package handlers

import (
	"net/http"
	"testing"

	"github.com/OrlanTero/newAttendance-sub000/internal/middleware"
	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}).Error)

	h := NewAuthHandler(db, testSecret)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/protected", middleware.AuthRequired(testSecret), func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(200, gin.H{"success": true, "role": role})
	})
	r.GET("/admin-only", middleware.AuthRequired(testSecret), middleware.RequireAdmin(), func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})
	return r
}

func TestLoginSuccess(t *testing.T) {
	r := setupAuthRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/auth/login", `{"username":"admin","password":"s3cret-pass"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, models.RoleAdmin, data["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupAuthRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestLoginUnknownUser(t *testing.T) {
	r := setupAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/auth/login", `{"username":"ghost","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r := setupAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithToken(t *testing.T) {
	r := setupAuthRouter(t)

	_, login := doJSON(t, r, http.MethodPost, "/auth/login", `{"username":"admin","password":"s3cret-pass"}`)
	token := login["data"].(map[string]any)["token"].(string)

	w, resp := doJSONAuth(t, r, http.MethodGet, "/protected", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleAdmin, resp["role"])

	w, _ = doJSONAuth(t, r, http.MethodGet, "/admin-only", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRouteRejectsGarbageToken(t *testing.T) {
	r := setupAuthRouter(t)

	w, _ := doJSONAuth(t, r, http.MethodGet, "/admin-only", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

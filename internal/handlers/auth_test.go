package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mohi-devhub/genie/internal/config"
	"github.com/mohi-devhub/genie/internal/handlers"
	"github.com/mohi-devhub/genie/internal/middleware"
)

func authRouter(db *gorm.DB) (*gin.Engine, *middleware.Auth) {
	cfg := config.New()
	cfg.JWT.Secret = "test-secret"
	auth := middleware.NewAuth(cfg)

	r := gin.New()
	h := handlers.NewAuthHandler(db, auth)
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	r.GET("/api/me", auth.RequireAuth(), h.GetMe)
	return r, auth
}

func TestRegisterLoginAndMe(t *testing.T) {
	db := setupDB(t)
	r, _ := authRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username": "dana",
		"email":    "dana@test.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	registered := decodeBody[map[string]any](t, w)
	require.NotEmpty(t, registered["token"])

	// password is hashed, never stored in the clear
	var stored struct{ Password string }
	require.NoError(t, db.Table("users").Where("email = ?", "dana@test.com").Take(&stored).Error)
	assert.NotEqual(t, "hunter22", stored.Password)

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email":    "dana@test.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)
	loggedIn := decodeBody[map[string]any](t, w)
	token := loggedIn["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "dana", me["username"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	r, _ := authRouter(db)

	doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username": "dana",
		"email":    "dana@test.com",
		"password": "hunter22",
	})

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email":    "dana@test.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupDB(t)
	r, _ := authRouter(db)

	doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username": "dana",
		"email":    "dana@test.com",
		"password": "hunter22",
	})
	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username": "dana",
		"email":    "other@test.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeRequiresToken(t *testing.T) {
	db := setupDB(t)
	r, _ := authRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

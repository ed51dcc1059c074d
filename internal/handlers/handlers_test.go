package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mohi-devhub/genie/internal/database"
	"github.com/mohi-devhub/genie/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupDB opens an isolated in-memory SQLite database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// seedFixtures inserts deterministic users, tags, and one prompt:
//   - alice (1) authored the prompt, bob (2) and carol (3) are voters
//   - categories: Coding, Writing; models: Claude 3 Opus, GPT-4
func seedFixtures(t *testing.T, db *gorm.DB) models.Prompt {
	t.Helper()

	users := []models.User{
		{ID: 1, Username: "alice", Email: "alice@test.com", Password: "x", AuthProvider: "email"},
		{ID: 2, Username: "bob", Email: "bob@test.com", Password: "x", AuthProvider: "email"},
		{ID: 3, Username: "carol", Email: "carol@test.com", Password: "x", AuthProvider: "email"},
	}
	require.NoError(t, db.Create(&users).Error)

	categories := []models.Category{
		{ID: 1, Name: "Coding"},
		{ID: 2, Name: "Writing"},
	}
	require.NoError(t, db.Create(&categories).Error)

	aiModels := []models.AIModel{
		{ID: 1, Name: "Claude 3 Opus"},
		{ID: 2, Name: "GPT-4"},
	}
	require.NoError(t, db.Create(&aiModels).Error)

	prompt := models.Prompt{
		ID:         1,
		Title:      "Code Review Assistant",
		PromptText: "Review the following code for best practices and potential bugs.",
		AuthorID:   1,
		CategoryID: 1,
		ModelID:    1,
	}
	require.NoError(t, db.Create(&prompt).Error)
	return prompt
}

// asUser injects an authenticated user the way the JWT middleware would.
func asUser(userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

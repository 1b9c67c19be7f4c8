package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"authorsheaven/config"
	"authorsheaven/global"
	"authorsheaven/router"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires the router to a fresh in-memory database. Redis and
// RabbitMQ stay nil, which the handlers treat as "not configured".
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// a single connection keeps every query on the same :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	global.Db = db
	global.RedisDB = nil
	global.RabbitConn = nil
	global.RabbitChannel = nil

	return router.SetupRouter()
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, w.Body.String())
	}
	return payload
}

func registerUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"user": map[string]interface{}{
			"username": username,
			"email":    fmt.Sprintf("%s@test.com", username),
			"password": "testing123",
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: got status %d: %s", username, w.Code, w.Body.String())
	}
	payload := decodeBody(t, w)
	user := payload["user"].(map[string]interface{})
	token, _ := user["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response", username)
	}
	return token
}

func createArticle(t *testing.T, r *gin.Engine, token, title string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/articles", token, map[string]interface{}{
		"article": map[string]interface{}{
			"title":       title,
			"description": "This is test description",
			"body":        "This is a test body",
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create article %q: got status %d: %s", title, w.Code, w.Body.String())
	}
	payload := decodeBody(t, w)
	article := payload["article"].(map[string]interface{})
	slug, _ := article["slug"].(string)
	if slug == "" {
		t.Fatalf("create article %q: no slug in response", title)
	}
	return slug
}

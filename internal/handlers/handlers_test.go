package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkpress-dev/inkpress/db"
	"github.com/inkpress-dev/inkpress/internal/auth"
	"github.com/inkpress-dev/inkpress/internal/router"
	"github.com/inkpress-dev/inkpress/internal/types"
)

var testDBCounter int64

// setupTestRouter opens a fresh in-memory SQLite database (foreign keys
// on, so the cascade/restrict policies are live) and builds the real
// router against it.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	if err := auth.InitJWT("test-secret", "inkpress-test", "inkpress-test-client"); err != nil {
		t.Fatalf("Failed to initialize JWT: %v", err)
	}

	name := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared&_foreign_keys=on", name)

	if err := db.ConnectSQLite(dsn); err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return router.NewRouter()
}

// doRequest runs one request through the router. A non-empty token goes
// out as a Bearer credential; a non-nil body is sent as JSON.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

// registerUser registers a fresh account and returns its token and DTO.
func registerUser(t *testing.T, r *gin.Engine, email, displayName, password string) types.AuthResponse {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":       email,
		"displayName": displayName,
		"password":    password,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Register %s returned %d: %s", email, w.Code, w.Body.String())
	}

	var resp types.AuthResponse
	decodeJSON(t, w, &resp)

	if resp.AccessToken == "" {
		t.Fatal("Register did not return an access token")
	}

	return resp
}

// createPost creates a post for the given token and returns its DTO.
func createPost(t *testing.T, r *gin.Engine, token, title, content string) types.PostDetail {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/posts", token, map[string]string{
		"title":   title,
		"content": content,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Create post returned %d: %s", w.Code, w.Body.String())
	}

	var post types.PostDetail
	decodeJSON(t, w, &post)

	return post
}

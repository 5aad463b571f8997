package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"sheharfix-be/controllers"
	"sheharfix-be/middlewares"
	"sheharfix-be/routes"
	"sheharfix-be/store"
	"sheharfix-be/uploads"
)

// newTestServer wires the full route table over the in-memory store and a
// temp-dir disk uploader.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	r := gin.New()

	uploader := uploads.NewDiskUploader(t.TempDir())
	authController := controllers.NewAuthController(st, uploader)
	issueController := controllers.NewIssueController(st, uploader)
	ngoController := controllers.NewNGOController(st)
	analyticsController := controllers.NewAnalyticsController(st)

	routes.AuthRoutes(r, authController)
	routes.IssueRoutes(r, issueController, ngoController, middlewares.IssueRateLimiter(nil, 0))
	routes.NGORoutes(r, ngoController)
	routes.AnalyticsRoutes(r, analyticsController)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
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

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates a user and returns its id and a bearer token.
func registerAndLogin(t *testing.T, r *gin.Engine, username, password, role string) (string, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": username, "password": password, "role": role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", username, w.Body.String())
	id, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": username, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", username, w.Body.String())
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	return id, token
}

// createIssue posts a minimal issue and returns its id.
func createIssue(t *testing.T, r *gin.Engine, title, token string, extra gin.H) string {
	t.Helper()

	body := gin.H{"title": title}
	for k, v := range extra {
		body[k] = v
	}
	w := doJSON(t, r, http.MethodPost, "/api/issues", body, token)
	require.Equal(t, http.StatusCreated, w.Code, "create issue: %s", w.Body.String())
	id, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func issuePath(id string) string {
	return fmt.Sprintf("/api/issues/%s", id)
}

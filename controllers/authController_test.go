package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authUtils "sheharfix-be/utils"
)

func TestRegisterThenLogin(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "citizen", body["role"])
	assert.NotEmpty(t, body["id"])
	assert.Nil(t, body["passwordHash"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	identity, err := authUtils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "citizen", string(identity.Role))

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
}

func TestRegisterAdminRole(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "root", "password": "secret123", "role": "admin",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "admin", decodeBody(t, w)["role"])

	// Unknown roles fall back to citizen rather than failing.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "weird", "password": "secret123", "role": "superuser",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "citizen", decodeBody(t, w)["role"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := newTestServer(t)
	registerAndLogin(t, r, "alice", "secret123", "")

	// Conflict regardless of password or role.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "password": "different", "role": "admin",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["error"])
}

func TestRegisterMissingFields(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{"username": "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{"password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := newTestServer(t)
	registerAndLogin(t, r, "alice", "secret123", "")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "nobody", "password": "secret123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadAvatar(t *testing.T) {
	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "alice", "secret123", "")

	w := doJSON(t, r, http.MethodPost, "/api/auth/avatar", gin.H{"media": fakePhoto}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/avatar", gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/avatar", gin.H{"media": "%%% not base64 %%%"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/avatar", gin.H{"media": fakePhoto}, token)
	require.Equal(t, http.StatusOK, w.Code)
	avatarURL, _ := decodeBody(t, w)["avatarUrl"].(string)
	assert.Contains(t, avatarURL, "/uploads/avatars/")

	// The saved avatar shows up on the profile and in creator projections.
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, avatarURL, decodeBody(t, w)["avatarUrl"])

	id := createIssue(t, r, "Pothole", token, nil)
	w = doJSON(t, r, http.MethodGet, issuePath(id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	createdBy, ok := decodeBody(t, w)["createdBy"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, avatarURL, createdBy["avatarUrl"])
}

func TestMe(t *testing.T) {
	r := newTestServer(t)
	id, token := registerAndLogin(t, r, "alice", "secret123", "")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "alice", body["username"])

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

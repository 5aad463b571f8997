package controllers_test

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakePhoto = base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

func TestCreateIssueAnonymous(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/issues", gin.H{"title": "Pothole"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Pothole", body["title"])
	assert.Equal(t, "submitted", body["status"])
	assert.Equal(t, "medium", body["priority"])
	assert.Nil(t, body["createdBy"])
}

func TestCreateIssueAttributed(t *testing.T) {
	r := newTestServer(t)
	aliceID, token := registerAndLogin(t, r, "alice", "secret123", "")

	id := createIssue(t, r, "Pothole", token, nil)

	w := doJSON(t, r, http.MethodGet, issuePath(id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	createdBy, ok := decodeBody(t, w)["createdBy"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, aliceID, createdBy["id"])
	assert.Equal(t, "alice", createdBy["username"])
}

func TestCreateIssueInvalidTokenIsAnonymous(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/issues", gin.H{"title": "Pothole"}, "garbage-token")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, decodeBody(t, w)["createdBy"])
}

func TestCreateIssueMissingTitle(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/issues", gin.H{"description": "no title"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIssueWithMedia(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/issues", gin.H{
		"title": "Pothole", "media": fakePhoto,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	mediaURL, _ := decodeBody(t, w)["mediaUrl"].(string)
	assert.Contains(t, mediaURL, "/uploads/sheharfix/")
}

func TestCreateIssueBadMediaProceedsWithoutIt(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/issues", gin.H{
		"title": "Pothole", "media": "%%% not base64 %%%",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, decodeBody(t, w)["mediaUrl"])
}

func TestListIssuesStatusFilter(t *testing.T) {
	r := newTestServer(t)
	first := createIssue(t, r, "First", "", nil)
	second := createIssue(t, r, "Second", "", nil)

	w := doJSON(t, r, http.MethodPatch, issuePath(first)+"/resolve", gin.H{"media": fakePhoto}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/issues?status=resolved", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0]["id"])

	// Unrecognized filter values are ignored, not rejected.
	w = doJSON(t, r, http.MethodGet, "/api/issues?status=bogus", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list = decodeList(t, w)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, second, list[0]["id"])
}

func TestUpdateIssue(t *testing.T) {
	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "alice", "secret123", "")
	id := createIssue(t, r, "Pothole", token, nil)

	w := doJSON(t, r, http.MethodPut, issuePath(id), gin.H{"priority": "urgent", "status": "acknowledged"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPut, issuePath(id), gin.H{"priority": "urgent", "status": "acknowledged"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "urgent", body["priority"])
	assert.Equal(t, "acknowledged", body["status"])

	w = doJSON(t, r, http.MethodPut, issuePath(id), gin.H{"status": "fixed"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, issuePath("missing"), gin.H{"title": "x"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveRequiresMedia(t *testing.T) {
	r := newTestServer(t)
	id := createIssue(t, r, "Pothole", "", nil)

	w := doJSON(t, r, http.MethodPatch, issuePath(id)+"/resolve", gin.H{"note": "done"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The failed resolve must not have touched the issue.
	w = doJSON(t, r, http.MethodGet, issuePath(id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "submitted", body["status"])
	assert.Nil(t, body["resolvedAt"])
}

func TestResolveRejectsUndecodableMedia(t *testing.T) {
	r := newTestServer(t)
	id := createIssue(t, r, "Pothole", "", nil)

	w := doJSON(t, r, http.MethodPatch, issuePath(id)+"/resolve", gin.H{"media": "%%% not base64 %%%"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A rejected resolve leaves the issue untouched; resolved always comes
	// with a photo URL.
	w = doJSON(t, r, http.MethodGet, issuePath(id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "submitted", body["status"])
	assert.Nil(t, body["resolvedAt"])
	assert.Nil(t, body["resolutionPhotoUrl"])
}

func TestResolveAnonymous(t *testing.T) {
	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "alice", "secret123", "")
	id := createIssue(t, r, "Pothole", token, nil)

	w := doJSON(t, r, http.MethodPatch, issuePath(id)+"/resolve", gin.H{
		"media": fakePhoto, "note": "filled in",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "resolved", body["status"])
	assert.NotEmpty(t, body["resolvedAt"])
	assert.Nil(t, body["resolvedBy"]) // resolve used no token
	photoURL, _ := body["resolutionPhotoUrl"].(string)
	assert.Contains(t, photoURL, "/uploads/sheharfix-resolutions/")
	assert.Equal(t, "filled in", body["resolutionNote"])

	// Repeated reads return the same resolved snapshot.
	w = doJSON(t, r, http.MethodGet, issuePath(id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	again := decodeBody(t, w)
	assert.Equal(t, "resolved", again["status"])
	assert.Equal(t, body["resolvedAt"], again["resolvedAt"])
	assert.Equal(t, photoURL, again["resolutionPhotoUrl"])
}

func TestResolveAttributed(t *testing.T) {
	r := newTestServer(t)
	bobID, token := registerAndLogin(t, r, "bob", "secret123", "")
	id := createIssue(t, r, "Pothole", "", nil)

	w := doJSON(t, r, http.MethodPatch, issuePath(id)+"/resolve", gin.H{"media": fakePhoto}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, bobID, decodeBody(t, w)["resolvedBy"])
}

func TestResolveNotFound(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPatch, "/api/issues/missing/resolve", gin.H{"media": fakePhoto}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIssueOwnerOnly(t *testing.T) {
	r := newTestServer(t)
	_, aliceToken := registerAndLogin(t, r, "alice", "secret123", "")
	_, bobToken := registerAndLogin(t, r, "bob", "secret123", "")
	_, adminToken := registerAndLogin(t, r, "root", "secret123", "admin")
	id := createIssue(t, r, "Pothole", aliceToken, nil)

	w := doJSON(t, r, http.MethodDelete, issuePath(id), nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A non-owner cannot delete.
	w = doJSON(t, r, http.MethodDelete, issuePath(id), nil, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins cannot delete either, even their own.
	w = doJSON(t, r, http.MethodDelete, issuePath(id), nil, adminToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, issuePath(id), nil, aliceToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, issuePath(id), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnonymousIssueForbiddenForEveryone(t *testing.T) {
	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "alice", "secret123", "")
	id := createIssue(t, r, "Orphan", "", nil)

	// No owner recorded, so the owner check fails for every caller.
	w := doJSON(t, r, http.MethodDelete, issuePath(id), nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteIssueNotFound(t *testing.T) {
	r := newTestServer(t)
	_, token := registerAndLogin(t, r, "alice", "secret123", "")

	w := doJSON(t, r, http.MethodDelete, issuePath("missing"), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHeatmap(t *testing.T) {
	r := newTestServer(t)
	lat, lng := 12.9716, 77.5946
	withCoords := createIssue(t, r, "Mapped", "", gin.H{
		"location": gin.H{"lat": lat, "lng": lng, "address": "MG Road"},
	})
	createIssue(t, r, "Unmapped", "", nil)

	w := doJSON(t, r, http.MethodGet, "/api/issues/heatmap", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	points := decodeList(t, w)
	require.Len(t, points, 1)
	assert.Equal(t, withCoords, points[0]["id"])
	assert.Equal(t, lat, points[0]["lat"])
	assert.Equal(t, lng, points[0]["lng"])
}

package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createNGO(t *testing.T, r *gin.Engine, name, adminToken string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/ngos", gin.H{"name": name}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "create ngo: %s", w.Body.String())
	id, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateNGORequiresAdmin(t *testing.T) {
	r := newTestServer(t)
	_, citizenToken := registerAndLogin(t, r, "alice", "secret123", "")

	w := doJSON(t, r, http.MethodPost, "/api/ngos", gin.H{"name": "Green City Trust"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/ngos", gin.H{"name": "Green City Trust"}, citizenToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateNGOValidation(t *testing.T) {
	r := newTestServer(t)
	_, adminToken := registerAndLogin(t, r, "root", "secret123", "admin")

	w := doJSON(t, r, http.MethodPost, "/api/ngos", gin.H{"name": "   "}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	createNGO(t, r, "Green City Trust", adminToken)
	w = doJSON(t, r, http.MethodPost, "/api/ngos", gin.H{"name": "Green City Trust"}, adminToken)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListAndGetNGO(t *testing.T) {
	r := newTestServer(t)
	_, adminToken := registerAndLogin(t, r, "root", "secret123", "admin")
	id := createNGO(t, r, "Green City Trust", adminToken)

	w := doJSON(t, r, http.MethodGet, "/api/ngos", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeList(t, w), 1)

	w = doJSON(t, r, http.MethodGet, "/api/ngos/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Green City Trust", decodeBody(t, w)["name"])

	w = doJSON(t, r, http.MethodGet, "/api/ngos/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateNGO(t *testing.T) {
	r := newTestServer(t)
	_, adminToken := registerAndLogin(t, r, "root", "secret123", "admin")
	id := createNGO(t, r, "Green City Trust", adminToken)
	createNGO(t, r, "LightUp Initiative", adminToken)

	w := doJSON(t, r, http.MethodPatch, "/api/ngos/"+id, gin.H{"phone": "+91-90000-11111"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+91-90000-11111", decodeBody(t, w)["phone"])

	// No recognized field supplied.
	w = doJSON(t, r, http.MethodPatch, "/api/ngos/"+id, gin.H{"bogus": "x"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Renaming onto an existing name conflicts.
	w = doJSON(t, r, http.MethodPatch, "/api/ngos/"+id, gin.H{"name": "LightUp Initiative"}, adminToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/ngos/missing", gin.H{"phone": "x"}, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteNGO(t *testing.T) {
	r := newTestServer(t)
	_, adminToken := registerAndLogin(t, r, "root", "secret123", "admin")
	id := createNGO(t, r, "Green City Trust", adminToken)

	w := doJSON(t, r, http.MethodDelete, "/api/ngos/"+id, nil, adminToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/ngos/"+id, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignmentLifecycle(t *testing.T) {
	r := newTestServer(t)
	_, adminToken := registerAndLogin(t, r, "root", "secret123", "admin")
	issueID := createIssue(t, r, "Pothole", "", nil)
	ngoID := createNGO(t, r, "Green City Trust", adminToken)

	w := doJSON(t, r, http.MethodPost, issuePath(issueID)+"/ngos", gin.H{"ngoId": ngoID}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate assignment is a silent no-op.
	w = doJSON(t, r, http.MethodPost, issuePath(issueID)+"/ngos", gin.H{"ngoId": ngoID, "role": "partner"}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, issuePath(issueID)+"/ngos", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assignments := decodeList(t, w)
	require.Len(t, assignments, 1)
	assert.Equal(t, ngoID, assignments[0]["ngoId"])
	assert.Equal(t, "assigned", assignments[0]["role"])

	// The single-issue view carries the assigned NGO detail.
	w = doJSON(t, r, http.MethodGet, issuePath(issueID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	ngos, ok := body["ngos"].([]interface{})
	require.True(t, ok)
	require.Len(t, ngos, 1)

	w = doJSON(t, r, http.MethodDelete, issuePath(issueID)+"/ngos/"+ngoID, nil, adminToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The pair no longer exists.
	w = doJSON(t, r, http.MethodDelete, issuePath(issueID)+"/ngos/"+ngoID, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignUnknownTargets(t *testing.T) {
	r := newTestServer(t)
	_, adminToken := registerAndLogin(t, r, "root", "secret123", "admin")
	issueID := createIssue(t, r, "Pothole", "", nil)

	w := doJSON(t, r, http.MethodPost, issuePath(issueID)+"/ngos", gin.H{"ngoId": "missing"}, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/issues/missing/ngos", gin.H{"ngoId": "missing"}, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, issuePath(issueID)+"/ngos", gin.H{"role": "partner"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignmentRequiresAdmin(t *testing.T) {
	r := newTestServer(t)
	_, citizenToken := registerAndLogin(t, r, "alice", "secret123", "")
	issueID := createIssue(t, r, "Pothole", "", nil)

	w := doJSON(t, r, http.MethodPost, issuePath(issueID)+"/ngos", gin.H{"ngoId": "x"}, citizenToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

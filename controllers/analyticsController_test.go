package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics(t *testing.T) {
	r := newTestServer(t)
	createIssue(t, r, "Pothole", "", gin.H{"category": "roads"})
	createIssue(t, r, "Another pothole", "", gin.H{"category": "roads"})
	toResolve := createIssue(t, r, "Dark street", "", nil)

	w := doJSON(t, r, http.MethodPatch, issuePath(toResolve)+"/resolve", gin.H{"media": fakePhoto}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/analytics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, float64(3), body["totalIssues"])
	assert.Equal(t, float64(2), body["openIssues"])
	assert.Equal(t, float64(1), body["resolvedIssues"])

	categories, ok := body["issuesByCategory"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, categories)
	// Largest bucket first.
	top := categories[0].(map[string]interface{})
	assert.Equal(t, "roads", top["name"])
	assert.Equal(t, float64(2), top["value"])

	days, ok := body["last7Days"].([]interface{})
	require.True(t, ok)
	require.Len(t, days, 7)
	today := days[6].(map[string]interface{})
	assert.Equal(t, float64(3), today["count"])
}

func TestLeaderboard(t *testing.T) {
	r := newTestServer(t)
	aliceID, aliceToken := registerAndLogin(t, r, "alice", "secret123", "")
	_, bobToken := registerAndLogin(t, r, "bob", "secret123", "")

	createIssue(t, r, "One", aliceToken, nil)
	resolved := createIssue(t, r, "Two", aliceToken, nil)
	createIssue(t, r, "Three", bobToken, nil)
	createIssue(t, r, "Anonymous", "", nil)

	w := doJSON(t, r, http.MethodPatch, issuePath(resolved)+"/resolve", gin.H{"media": fakePhoto}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/leaderboard", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeList(t, w)
	require.Len(t, entries, 2) // anonymous reports never rank

	assert.Equal(t, aliceID, entries[0]["userId"])
	assert.Equal(t, "alice", entries[0]["username"])
	assert.Equal(t, float64(2), entries[0]["reported"])
	assert.Equal(t, float64(1), entries[0]["resolved"])
	assert.Equal(t, "bob", entries[1]["username"])
}

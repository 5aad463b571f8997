package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authUtils "sheharfix-be/utils"
)

func TestIssueRateLimiterDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/issues", IssueRateLimiter(nil, 1), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	// With no redis client even a limit of 1 never trips.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestLimiterKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/issues", nil)
	assert.Equal(t, "issue_limit:192.0.2.1", limiterKey(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/issues", nil)
	c.Set(identityKey, &authUtils.Identity{ID: "u1"})
	assert.Equal(t, "issue_limit:u1", limiterKey(c))
}

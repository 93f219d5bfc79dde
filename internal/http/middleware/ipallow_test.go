package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func ipTestRouter(entries []string) *gin.Engine {
	router := gin.New()
	router.POST("/ingest", IPAllowlist(entries, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func ingestFrom(router *gin.Engine, remoteAddr string) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestIPAllowlist_EmptyListAllowsAll(t *testing.T) {
	router := ipTestRouter(nil)
	assert.Equal(t, http.StatusNoContent, ingestFrom(router, "203.0.113.7:1234"))
}

func TestIPAllowlist_ExactAddress(t *testing.T) {
	router := ipTestRouter([]string{"10.0.0.5"})

	assert.Equal(t, http.StatusNoContent, ingestFrom(router, "10.0.0.5:1234"))
	assert.Equal(t, http.StatusForbidden, ingestFrom(router, "10.0.0.6:1234"))
}

func TestIPAllowlist_CIDR(t *testing.T) {
	router := ipTestRouter([]string{"192.168.1.0/24"})

	assert.Equal(t, http.StatusNoContent, ingestFrom(router, "192.168.1.200:9999"))
	assert.Equal(t, http.StatusForbidden, ingestFrom(router, "192.168.2.1:9999"))
}

func TestIPAllowlist_InvalidEntriesSkipped(t *testing.T) {
	// An allowlist of only invalid entries degrades to an empty one.
	router := ipTestRouter([]string{"not-an-ip", "500.1.1.1/64"})
	assert.Equal(t, http.StatusNoContent, ingestFrom(router, "203.0.113.7:1234"))

	// A valid entry alongside invalid ones still enforces.
	router = ipTestRouter([]string{"not-an-ip", "10.0.0.5"})
	assert.Equal(t, http.StatusForbidden, ingestFrom(router, "203.0.113.7:1234"))
	assert.Equal(t, http.StatusNoContent, ingestFrom(router, "10.0.0.5:1234"))
}

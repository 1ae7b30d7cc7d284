package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/berryseed/327project-group10/internal/middleware"
	"github.com/berryseed/327project-group10/internal/models"
)

func newTestContext(t *testing.T, method, target string, body []byte, authenticated bool) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	if authenticated {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})
	}
	return c, w
}

package identity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubTokenizer struct {
	valid string
}

func (s *stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return s.valid, nil
}

func (s *stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != s.valid {
		return nil, errors.New("invalid token")
	}
	return map[string]interface{}{"sub": "tester"}, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", Authoriz(&stubTokenizer{valid: "good"}), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSubject))
	})
	return r
}

func TestAuthoriz(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "malformed header", header: "good", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", status: http.StatusOK, body: "tester"},
		{name: "scheme is case insensitive", header: "bearer good", status: http.StatusOK, body: "tester"},
	}

	r := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmvcalc/internal/metrics"
)

var secret = []byte("test-secret")

func signed(t *testing.T, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func newRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(secret, roles...), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	valid := signed(t, jwt.MapClaims{"sub": "user-1", "role": "staff", "exp": exp}, secret)

	tests := []struct {
		name   string
		roles  []string
		setup  func(r *http.Request)
		status int
		body   string
	}{
		{"missing", nil, func(r *http.Request) {}, http.StatusUnauthorized, ""},
		{"bad format", nil, func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, http.StatusUnauthorized, ""},
		{"wrong key", nil, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"sub": "x", "exp": exp}, []byte("other")))
		}, http.StatusUnauthorized, ""},
		{"expired", nil, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()}, secret))
		}, http.StatusUnauthorized, ""},
		{"no subject", nil, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"role": "staff", "exp": exp}, secret))
		}, http.StatusUnauthorized, ""},
		{"header", nil, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK, "user-1"},
		{"cookie", nil, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: valid}) }, http.StatusOK, "user-1"},
		{"role allowed", []string{"admin", "staff"}, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK, "user-1"},
		{"role denied", []string{"admin"}, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			newRouter(tt.roles...).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New(prometheus.NewRegistry())
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

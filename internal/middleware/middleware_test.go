package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/service"
)

const testSecret = "middleware-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		value, _ := c.Get(ContextUserKey)
		claims, _ := value.(*models.JWTClaims)
		if claims == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.UserID)
	})
	r.GET("/protected", handlers...)
	return r
}

func signedToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	tokens := service.NewTokenService(service.TokenConfig{Secret: testSecret})
	token, err := tokens.Sign(models.JWTClaims{UserID: "user-1", Role: role}, time.Hour)
	require.NoError(t, err)
	return token
}

func perform(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{Secret: testSecret})
	r := newRouter(JWT(tokens))

	assert.Equal(t, http.StatusUnauthorized, perform(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "Bearer not-a-jwt").Code)

	w := perform(r, "Bearer "+signedToken(t, models.RoleStudent))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestJWTMiddlewareHeaderForms(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{Secret: testSecret})
	r := newRouter(JWT(tokens))
	token := signedToken(t, models.RoleStudent)

	assert.Equal(t, http.StatusOK, perform(r, "bearer "+token).Code)
	assert.Equal(t, http.StatusOK, perform(r, "Bearer  "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "Bearer").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, token).Code)
}

func TestRequireRoles(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{Secret: testSecret})
	r := newRouter(JWT(tokens), RequireRoles(models.RoleStudent))

	assert.Equal(t, http.StatusOK, perform(r, "Bearer "+signedToken(t, models.RoleStudent)).Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "Bearer "+signedToken(t, models.RoleInstructor)).Code)

	bare := newRouter(RequireRoles(models.RoleStudent))
	assert.Equal(t, http.StatusUnauthorized, perform(bare, "").Code)
}

func TestMetricsMiddlewareRecordsRequests(t *testing.T) {
	metrics := service.NewMetricsService()
	r := newRouter(Metrics(metrics))

	perform(r, "")
	perform(r, "")

	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)
}

func TestMetricsMiddlewareSkipsAndCollapsesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics, "/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/does-not-exist/1", "/does-not-exist/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `course_portal_http_requests_total{method="GET",route="unmatched",status="404"} 2`)
	assert.NotContains(t, rec.Body.String(), "does-not-exist")
}

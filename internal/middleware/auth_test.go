package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/utils"
)

type fixture struct {
	router   *gin.Engine
	tokens   *utils.TokenManager
	sessions *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	f := &fixture{
		router:   gin.New(),
		tokens:   utils.NewTokenManager("test-secret", time.Hour),
		sessions: session.NewManager(session.NewMemoryStore(), "test", log),
	}
	f.router.Use(SessionMiddleware(f.tokens, f.sessions, log))

	f.router.GET("/flags", func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentFlags(c))
	})
	f.router.GET("/private", RequireAuth(log), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	f.router.GET("/doctor", RequireRole(session.RoleDoctor, log), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return f
}

func (f *fixture) login(t *testing.T, id string, role session.Role) string {
	t.Helper()
	require.NoError(t, f.sessions.Open(id).Login(context.Background(), role, "someone@example.com"))
	token, err := f.tokens.GenerateJWT(id, role.String(), "someone@example.com")
	require.NoError(t, err)
	return token
}

func (f *fixture) get(path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestExtractBearerToken(t *testing.T) {
	_, err := extractBearerToken("")
	assert.ErrorIs(t, err, ErrMissingAuthHeader)

	_, err = extractBearerToken("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidAuthFormat)

	_, err = extractBearerToken("Bearer   ")
	assert.ErrorIs(t, err, ErrEmptyToken)

	token, err := extractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)
}

func TestAnonymousRequests(t *testing.T) {
	f := newFixture(t)

	w := f.get("/flags", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isAuthenticated":false,"userRole":"patient","userEmail":""}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, f.get("/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.get("/private", "Bearer not-a-jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, f.get("/doctor", "").Code)
}

func TestAuthenticatedRequests(t *testing.T) {
	f := newFixture(t)
	token := f.login(t, "s1", session.RoleDoctor)

	w := f.get("/flags", "Bearer "+token)
	assert.JSONEq(t, `{"isAuthenticated":true,"userRole":"doctor","userEmail":"someone@example.com"}`, w.Body.String())

	assert.Equal(t, http.StatusNoContent, f.get("/private", "Bearer "+token).Code)
	assert.Equal(t, http.StatusNoContent, f.get("/doctor", "Bearer "+token).Code)
}

func TestWrongRoleIsForbidden(t *testing.T) {
	f := newFixture(t)
	token := f.login(t, "s2", session.RolePatient)

	w := f.get("/doctor", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Doctor access required"}`, w.Body.String())
}

func TestLoggedOutTokenIsUnauthorized(t *testing.T) {
	f := newFixture(t)
	token := f.login(t, "s3", session.RoleDoctor)
	require.NoError(t, f.sessions.Open("s3").Logout(context.Background()))

	assert.Equal(t, http.StatusUnauthorized, f.get("/private", "Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, f.get("/doctor", "Bearer "+token).Code)
}

func TestTokenFromOtherSecretIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.login(t, "s4", session.RoleAdmin)

	forged, err := utils.NewTokenManager("other-secret", time.Hour).GenerateJWT("s4", "admin", "x@y.z")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, f.get("/private", "Bearer "+forged).Code)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"path":"/ok"`)

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"status":500`)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/healthease-api/internal/middleware"
	"github.com/harentsoaR/healthease-api/internal/services"
	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/store"
	"github.com/harentsoaR/healthease-api/internal/utils"
)

var testNow = time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)

type fakeSender struct {
	mu   sync.Mutex
	sent []services.Notification
}

func (f *fakeSender) Send(_ context.Context, n services.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeSender) all() []services.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]services.Notification(nil), f.sent...)
}

var errStoreDown = errors.New("store unavailable")

// failingInserts wraps a collection so that every Insert fails.
type failingInserts[T store.Record] struct {
	store.Collection[T]
}

func (failingInserts[T]) Insert(context.Context, T) error { return errStoreDown }

type testServer struct {
	router   *gin.Engine
	handler  *Handler
	repos    *store.Repositories
	sessions *session.Manager
	tokens   *utils.TokenManager
	notifier *services.NotificationService
	sms      *fakeSender
	email    *fakeSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.HashCost = bcrypt.MinCost
	require.NoError(t, RegisterValidators())

	log := zerolog.Nop()
	ts := &testServer{
		repos:    store.NewMemoryRepositories(store.MockData(testNow)),
		sessions: session.NewManager(session.NewMemoryStore(), "test", log),
		tokens:   utils.NewTokenManager("test-secret", time.Hour),
		sms:      &fakeSender{},
		email:    &fakeSender{},
	}
	ts.notifier = services.NewNotificationService(ts.sms, ts.email, log)
	ts.handler = NewHandler(ts.repos, ts.sessions, ts.tokens, ts.notifier, log, "")
	ts.handler.now = func() time.Time { return testNow }

	ts.router = gin.New()
	ts.router.Use(middleware.SessionMiddleware(ts.tokens, ts.sessions, log))
	ts.handler.RegisterRoutes(ts.router)
	return ts
}

// do sends a JSON request. body may be nil; token may be empty.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// login goes through the login endpoint and returns the issued token.
func (ts *testServer) login(t *testing.T, role, email string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/auth/login/"+role, gin.H{"email": email, "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[AuthResponse](t, w).Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

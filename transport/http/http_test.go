package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
	"todolist/config"
	"todolist/infras/database/testdb"
	"todolist/infras/otel/mocks"
	authMocks "todolist/internal/domains/auth/mocks"
	taskMocks "todolist/internal/domains/task/mocks"
	authHandler "todolist/internal/handlers/auth"
	"todolist/internal/handlers/home"
	taskHandler "todolist/internal/handlers/task"
	cacheMocks "todolist/shared/cache/mocks"
	"todolist/transport/http/middleware"
	"todolist/transport/http/response"
	"todolist/transport/http/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T, env string) *HTTP {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = env
	cfg.Session.CookieName = "sessionid"

	ctrl := gomock.NewController(t)
	ot := mocks.NewOtel()

	app := middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(ctrl))
	auth := middleware.NewAuthMiddleware(authMocks.NewMockAuth(ctrl), ot, cfg)

	handlers := router.DomainHandlers{
		Home: home.New(ot),
		Auth: authHandler.New(authMocks.NewMockAuth(ctrl), auth, cfg, ot),
		Task: taskHandler.New(taskMocks.NewMockTaskService(ctrl), auth, ot),
	}

	return New(cfg, router.New(cfg, handlers, app, auth), testdb.SQLite(t), ot)
}

func TestHealth(t *testing.T) {
	server := newServer(t, "production")
	handler := server.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body response.Data[HealthResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Data)
	assert.Equal(t, HealthResponse{Status: "ok", DB: "sqlite"}, *body.Data)

	server.setState(ServerStateInGracePeriod)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVER PREPARING TO SHUT DOWN")
}

func TestHealth_DatabaseDown(t *testing.T) {
	server := newServer(t, "production")
	require.NoError(t, server.DB.Close())

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVER UNHEALTHY")
}

func TestRoutes(t *testing.T) {
	server := newServer(t, "production")

	tests := []struct {
		path     string
		wantCode int
		location string
	}{
		{path: "/", wantCode: http.StatusOK},
		{path: "/signup", wantCode: http.StatusOK},
		{path: "/login", wantCode: http.StatusOK},
		{path: "/current", wantCode: http.StatusSeeOther, location: "/login?next=%2Fcurrent"},
		{path: "/todo/abc", wantCode: http.StatusSeeOther, location: "/login?next=%2Ftodo%2Fabc"},
		{path: "/swagger/index.html", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
		})
	}
}

func TestSwagger_DevelopmentOnly(t *testing.T) {
	server := newServer(t, "development")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/todo/{id}/complete")
}

func TestServe_DrainsBeforeReturning(t *testing.T) {
	server := newServer(t, "production")
	server.Config.Server.Shutdown.GracePeriodSeconds = 0
	server.Config.Server.Shutdown.CleanupPeriodSeconds = 5

	started := make(chan struct{})

	var finished atomic.Bool

	server.Handler()
	server.mux.Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		time.Sleep(300 * time.Millisecond)
		finished.Store(true)
		w.WriteHeader(http.StatusOK)
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	signals := make(chan os.Signal, 1)
	served := make(chan struct{})

	go func() {
		server.serve(listener, signals)
		close(served)
	}()

	status := make(chan int, 1)

	go func() {
		res, err := http.Get("http://" + listener.Addr().String() + "/slow")
		if err != nil {
			status <- 0

			return
		}
		defer res.Body.Close()

		status <- res.StatusCode
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}

	signals <- syscall.SIGTERM

	select {
	case <-served:
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after SIGTERM")
	}

	assert.True(t, finished.Load(), "in-flight request finished before serve returned")
	assert.Equal(t, http.StatusOK, <-status)
	assert.Equal(t, ServerStateInCleanupPeriod, server.State())
	assert.Error(t, server.DB.Ping(context.Background()), "database is closed")
}

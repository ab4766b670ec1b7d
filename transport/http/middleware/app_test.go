package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"todolist/config"
	"todolist/infras/otel/mocks"
	cacheMocks "todolist/shared/cache/mocks"
	"todolist/shared/constant"
	"todolist/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mw := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(false), cacheMocks.NewMockRedisCache(ctrl))

		rec := httptest.NewRecorder()
		mw.RateLimit()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("counts per client address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		mw := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true), cache)

		key := "limiter:10.0.0.1"

		gomock.InOrder(
			cache.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(1), nil),
			cache.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(2), nil),
			cache.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(3), nil),
		)

		handler := mw.RateLimit()(ok)

		request := func(forwardedFor, userAgent string) *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:52100"
			req.Header.Set(constant.RequestHeaderForwardedFor, forwardedFor)
			req.Header.Set(constant.RequestHeaderUserAgent, userAgent)

			return req
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request("1.1.1.1", "agent-a"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, request("2.2.2.2", "agent-b"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, request("3.3.3.3", "agent-c"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, "rotating headers does not reset the window")
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
	})

	t.Run("cache failure lets request through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		mw := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true), cache)

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("redis down"))

		rec := httptest.NewRecorder()
		mw.RateLimit()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestTracingAndLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

	rec := httptest.NewRecorder()
	mw.Tracing(mw.Logger(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/current", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCORS(t *testing.T) {
	ctrl := gomock.NewController(t)

	disabled := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")

	rec := httptest.NewRecorder()
	disabled.CORS()(ok).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://example.com"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	enabled := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl))

	rec = httptest.NewRecorder()
	enabled.CORS()(ok).ServeHTTP(rec, req)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

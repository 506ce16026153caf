package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"roster-service/internal/app/config"
	"roster-service/internal/app/services/shared/ratelimiter"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{MaxRequests: 100, UploadRequestsPerMinute: 2, UploadBlockTimeInSeconds: 60},
		JWT: config.AppJWT{Secret: testSecret},
	}, nil)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
}

func TestRequireAdmin(t *testing.T) {
	m := newTestMiddlewares()

	var subject string
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = r.Context().Value(constvars.CONTEXT_ADMIN_SUBJECT_KEY).(string)
		okHandler(w, r)
	}))

	t.Run("Valid admin token", func(t *testing.T) {
		token, err := utils.GenerateAdminJWT("ops@roster", testSecret, 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/coverages/M08", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ops@roster", subject)
	})

	t.Run("Missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/coverages/M08", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		token, err := utils.GenerateAdminJWT("ops@roster", "other-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/coverages/M08", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()

	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
		okHandler(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "client-id-1", seen)
	assert.Equal(t, "client-id-1", rr.Header().Get(constvars.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Contains(t, seen, constvars.REQUEST_ID_PREFIX)
	assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
}

func TestErrorHandler(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestRateLimiter_BlocksAfterBudget(t *testing.T) {
	m := newTestMiddlewares()
	limiter := m.UploadRateLimiter()
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	handler := limiter.Limit(http.HandlerFunc(okHandler))

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/plans/expand", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))

	// still blocked after the bucket refilled
	now = now.Add(45 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))

	now = now.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
}

type counterRedis struct {
	mu       sync.Mutex
	counters map[string]int
	err      error
}

func (r *counterRedis) Delete(ctx context.Context, key string) error { return nil }

func (r *counterRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (r *counterRedis) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (r *counterRedis) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[key]++
	return r.counters[key], nil
}

func TestExportQuota(t *testing.T) {
	newHandler := func(redis *counterRedis) http.Handler {
		cfg := &config.InternalConfig{Export: config.AppExport{QuotaPerHour: 1}}
		m := NewMiddlewares(zap.NewNop(), cfg, ratelimiter.NewQuotaLimiter(redis, zap.NewNop()))
		return m.ExportQuota(http.HandlerFunc(okHandler))
	}
	send := func(handler http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/plans/export", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	t.Run("over quota", func(t *testing.T) {
		handler := newHandler(&counterRedis{counters: map[string]int{}})

		assert.Equal(t, http.StatusOK, send(handler).Code)
		rr := send(handler)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		retryAfter, err := strconv.Atoi(rr.Header().Get(constvars.HeaderRetryAfter))
		require.NoError(t, err)
		assert.True(t, retryAfter > 0 && retryAfter <= 3600)
	})

	t.Run("redis failure lets requests through", func(t *testing.T) {
		handler := newHandler(&counterRedis{err: errors.New("connection refused")})

		assert.Equal(t, http.StatusOK, send(handler).Code)
		assert.Equal(t, http.StatusOK, send(handler).Code)
	})

	t.Run("no limiter", func(t *testing.T) {
		handler := newTestMiddlewares().ExportQuota(http.HandlerFunc(okHandler))

		assert.Equal(t, http.StatusOK, send(handler).Code)
	})
}

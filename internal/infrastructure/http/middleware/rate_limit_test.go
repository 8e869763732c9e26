package middleware

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/call-assistant/errors"
	"github.com/johnquangdev/call-assistant/internal/infrastructure/cache"
)

func respondJSON(c echo.Context, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return c.JSON(appErr.HTTPCode, map[string]interface{}{"code": appErr.Code})
	}
	return c.NoContent(http.StatusInternalServerError)
}

func newServer(store cache.WindowStore, trustedProxies ...string) *echo.Echo {
	e := echo.New()
	e.IPExtractor = ClientIPExtractor(trustedProxies)
	g := e.Group("/call", RateLimit(store, nil, respondJSON))
	g.POST("/start", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func fire(e *echo.Echo, method, path, ip string) *httptest.ResponseRecorder {
	return fireForwarded(e, method, path, ip, "")
}

func fireForwarded(e *echo.Echo, method, path, ip, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":1234"
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
		req.Header.Set(echo.HeaderXRealIP, forwardedFor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_ThirtyFirstRequestIsRejected(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e := newServer(cache.NewMemoryWindowStore(ctx, 30, time.Minute))

	for i := 0; i < 30; i++ {
		rec := fire(e, http.MethodPost, "/call/start", "203.0.113.7")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := fire(e, http.MethodPost, "/call/start", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")

	assert.Equal(t, http.StatusOK, fire(e, http.MethodPost, "/call/start", "203.0.113.8").Code)
	assert.Equal(t, http.StatusOK, fire(e, http.MethodGet, "/health", "203.0.113.7").Code)
}

type brokenStore struct{}

func (brokenStore) Allow(context.Context, string) (bool, error) {
	return false, stdErrors.New("redis down")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e := newServer(brokenStore{})
	assert.Equal(t, http.StatusOK, fire(e, http.MethodPost, "/call/start", "203.0.113.7").Code)
}

func TestRateLimit_IgnoresForwardedHeadersByDefault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e := newServer(cache.NewMemoryWindowStore(ctx, 30, time.Minute))

	for i := 0; i < 30; i++ {
		rec := fireForwarded(e, http.MethodPost, "/call/start", "198.51.100.4", fmt.Sprintf("10.1.0.%d", i))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := fireForwarded(e, http.MethodPost, "/call/start", "198.51.100.4", "10.1.0.200")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_TrustedProxyForwardsClientAddress(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e := newServer(cache.NewMemoryWindowStore(ctx, 2, time.Minute), "192.0.2.0/24")

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, fireForwarded(e, http.MethodPost, "/call/start", "192.0.2.10", "203.0.113.1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, fireForwarded(e, http.MethodPost, "/call/start", "192.0.2.10", "203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, fireForwarded(e, http.MethodPost, "/call/start", "192.0.2.10", "203.0.113.2").Code)

	// an untrusted peer cannot pick its identity through the header
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, fireForwarded(e, http.MethodPost, "/call/start", "198.51.100.9", fmt.Sprintf("203.0.113.%d", 50+i)).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, fireForwarded(e, http.MethodPost, "/call/start", "198.51.100.9", "203.0.113.99").Code)
}

func TestClientIPExtractor_SkipsInvalidRanges(t *testing.T) {
	extract := ClientIPExtractor([]string{"not-a-cidr"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:1234"
	req.Header.Set(echo.HeaderXForwardedFor, "203.0.113.1")
	assert.Equal(t, "198.51.100.4", extract(req))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func rateLimitRequest(t *testing.T, mw echo.MiddlewareFunc, ip string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	return rec, mw(h)(c)
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 3})

	for i := 0; i < 3; i++ {
		_, err := rateLimitRequest(t, mw, "10.0.0.1")
		if err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i+1, err)
		}
	}
}

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	for i := 0; i < 2; i++ {
		if _, err := rateLimitRequest(t, mw, "10.0.0.2"); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i+1, err)
		}
	}

	rec, err := rateLimitRequest(t, mw, "10.0.0.2")
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", he.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on limited response")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("expected X-RateLimit-Remaining=0, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimit_BucketsArePerClient(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	if _, err := rateLimitRequest(t, mw, "10.0.0.3"); err != nil {
		t.Fatalf("first client unexpectedly limited: %v", err)
	}
	// Exhausting one client's bucket must not affect another client.
	if _, err := rateLimitRequest(t, mw, "10.0.0.4"); err != nil {
		t.Fatalf("second client unexpectedly limited: %v", err)
	}
	if _, err := rateLimitRequest(t, mw, "10.0.0.3"); err == nil {
		t.Error("expected first client to be limited after exhausting burst")
	}
}

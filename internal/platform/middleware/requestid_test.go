package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	if err := RequestID()(h)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rid := rec.Header().Get(RequestIDHeader)
	if rid == "" {
		t.Fatal("expected X-Request-ID response header")
	}
	if _, err := uuid.Parse(rid); err != nil {
		t.Errorf("generated request id is not a UUID: %q", rid)
	}
	if got, _ := c.Get("request_id").(string); got != rid {
		t.Errorf("context request_id = %q, want %q", got, rid)
	}
}

func TestRequestID_PreservesClientValue(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	if err := RequestID()(h)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("expected client request id to be preserved, got %q", got)
	}
}
